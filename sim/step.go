package sim

import "math/rand"

// Step advances st by one tick and returns the next state. st itself is not
// modified. Paused and finished states come back unchanged. The tick that
// ends the game only sets IsGameOver: snake, food and score stay as they were.
func Step(cfg Config, st State, in Input, rng *rand.Rand) State {
	if st.IsPaused || st.IsGameOver || len(st.Snake) == 0 {
		return st
	}

	next := st.Clone()
	if cfg.Model == Continuous {
		stepContinuous(cfg, &next, in, rng)
	} else {
		stepGrid(cfg, &next, in, rng)
	}

	if next.IsGameOver {
		st.IsGameOver = true
		return st
	}
	next.Tick++
	next.Level = cfg.levelFor(next.Score)
	return next
}

// stepGrid moves one cell, then eats, then either keeps or drops the tail.
func stepGrid(cfg Config, st *State, in Input, rng *rand.Rand) {
	// 1. Apply the queued turn unless it reverses into the neck
	if d := in.Direction; d != None && d != st.Direction.Opposite() {
		st.Direction = d
	}

	// 2. Move the head, wrapping or dying at the edge
	next := st.Head().Add(st.Direction.Delta())
	if cfg.WrapEdges {
		next = wrapCell(next, cfg.Columns, cfg.Rows)
	} else if !insideBoard(next, cfg.Columns, cfg.Rows) {
		st.IsGameOver = true
		return
	}

	// 3. Self collision against the pre-move body
	if hitsCell(st.Snake, next, st.PendingGrowth == 0) {
		st.IsGameOver = true
		return
	}
	st.Snake = append([]Point{next}, st.Snake...)

	// 4. Food on the new head cell
	for i, f := range st.Food {
		if f == next {
			st.Score += cfg.ScoreReward
			st.PendingGrowth += cfg.GrowthBatch
			st.Food[i] = placeFood(cfg, space{}, st.Snake, st.Food, rng)
			break
		}
	}

	// 5. Growth keeps the tail for one tick per pending unit
	if st.PendingGrowth > 0 {
		st.PendingGrowth--
	} else {
		st.Snake = st.Snake[:len(st.Snake)-1]
	}
}

// stepContinuous steers, moves the head, checks walls and self collision,
// drags the body, eats, then trims to the length cap.
func stepContinuous(cfg Config, st *State, in Input, rng *rand.Rand) {
	sp := newSpace(cfg)

	// 1. Heading and speed
	st.Velocity = throttle(cfg, steer(cfg, *st, in), in)
	if d := cardinal(st.Velocity); d != None {
		st.Direction = d
	}

	// 2. Head movement and edges
	head := st.Head().Add(st.Velocity)
	if !sp.contains(head) {
		st.IsGameOver = true
		return
	}
	head = sp.wrapPoint(head)

	// 3. Self collision against the pre-move body
	if selfCollides(cfg, sp, st.Snake, head) {
		st.IsGameOver = true
		return
	}

	// 4. Body follows
	st.Snake = follow(cfg, sp, st.Snake, head)

	// 5. Food within eating range
	for i := range st.Food {
		if sp.dist(head, st.Food[i]) < cfg.EatRadius {
			st.Score += cfg.ScoreReward
			st.Food[i] = placeFood(cfg, sp, st.Snake, st.Food, rng)
			st.Snake = growTail(st.Snake, cfg.GrowthBatch)
		}
	}

	// 6. Length cap
	if limit := cfg.lengthCap(st.Score); limit >= 0 && len(st.Snake) > limit {
		st.Snake = st.Snake[:limit]
	}
}
