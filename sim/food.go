package sim

import "math/rand"

// placeFood draws a new food position uniformly over the playable area minus
// FoodMargin. With AvoidSnake set it retries up to MaxPlacementAttempts to
// stay off the snake and the existing food, then falls back as described on
// placeGridFood and placeContinuousFood. It never fails.
func placeFood(cfg Config, sp space, snake, food []Point, rng *rand.Rand) Point {
	if cfg.Model == Continuous {
		return placeContinuousFood(cfg, sp, snake, food, rng)
	}
	return placeGridFood(cfg, snake, food, rng)
}

// placeGridFood falls back to scanning the free area from a random offset,
// and accepts the last random cell only when the board is full.
func placeGridFood(cfg Config, snake, food []Point, rng *rand.Rand) Point {
	m := int(cfg.FoodMargin)
	cols, rows := cfg.Columns-2*m, cfg.Rows-2*m
	if cols <= 0 || rows <= 0 {
		m, cols, rows = 0, cfg.Columns, cfg.Rows
	}
	pick := func() Point {
		return Point{X: float64(m + rng.Intn(cols)), Y: float64(m + rng.Intn(rows))}
	}

	p := pick()
	if !cfg.AvoidSnake {
		return p
	}

	occupied := make(map[Point]bool, len(snake)+len(food))
	for _, s := range snake {
		occupied[s] = true
	}
	for _, f := range food {
		occupied[f] = true
	}

	for attempt := 0; attempt < cfg.MaxPlacementAttempts; attempt++ {
		if !occupied[p] {
			return p
		}
		p = pick()
	}

	total := cols * rows
	start := rng.Intn(total)
	for i := 0; i < total; i++ {
		k := (start + i) % total
		c := Point{X: float64(m + k%cols), Y: float64(m + k/cols)}
		if !occupied[c] {
			return c
		}
	}
	return p
}

// placeContinuousFood keeps new food out of eating range of the body and of
// other food. After MaxPlacementAttempts the last candidate is accepted.
func placeContinuousFood(cfg Config, sp space, snake, food []Point, rng *rand.Rand) Point {
	m := cfg.FoodMargin
	w, h := cfg.Width-2*m, cfg.Height-2*m
	if w <= 0 || h <= 0 {
		m, w, h = 0, cfg.Width, cfg.Height
	}
	pick := func() Point {
		return Point{X: m + rng.Float64()*w, Y: m + rng.Float64()*h}
	}

	p := pick()
	if !cfg.AvoidSnake || len(snake) == 0 {
		return p
	}

	body := indexSnake(cfg, sp, snake)
	for attempt := 0; attempt < cfg.MaxPlacementAttempts; attempt++ {
		if !body.Any(snake, p, cfg.EatRadius, 0) && !nearAny(sp, food, p, cfg.EatRadius) {
			return p
		}
		p = pick()
	}
	return p
}

func nearAny(sp space, pts []Point, p Point, radius float64) bool {
	r2 := radius * radius
	for _, q := range pts {
		if sp.dist2(q, p) < r2 {
			return true
		}
	}
	return false
}
