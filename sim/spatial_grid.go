package sim

import "math"

// cellKey uniquely identifies a grid cell
type cellKey struct {
	cx, cy int
}

// spatialGrid is a hash grid of snake segment indices for proximity queries.
// On a wrapping space the cell coordinates fold modulo the torus so queries
// near one edge see segments near the opposite edge.
type spatialGrid struct {
	cells        map[cellKey][]int
	cellW, cellH float64
	sp           space
	nx, ny       int // cells per axis when wrapping, 0 otherwise
}

// newSpatialGrid uses cells of at most cellSize. A wrapping space is cut
// into whole cells per axis so cell nx-1 ends exactly on the seam.
func newSpatialGrid(cellSize float64, sp space) *spatialGrid {
	g := &spatialGrid{
		cells: make(map[cellKey][]int),
		cellW: cellSize,
		cellH: cellSize,
		sp:    sp,
	}
	if sp.wrap {
		g.nx = int(math.Ceil(sp.spanX / cellSize))
		g.ny = int(math.Ceil(sp.spanY / cellSize))
		g.cellW = sp.spanX / float64(g.nx)
		g.cellH = sp.spanY / float64(g.ny)
	}
	return g
}

// indexSnake builds a grid over every segment, sized for the larger of the
// eat and collision radii so a query touches at most 2x2 cells.
func indexSnake(cfg Config, sp space, segs []Point) *spatialGrid {
	size := 2 * math.Max(cfg.EatRadius, cfg.CollisionRadius)
	if size <= 0 {
		size = math.Max(cfg.SegmentSpacing, 1)
	}
	g := newSpatialGrid(size, sp)
	for i, p := range segs {
		g.Insert(i, p)
	}
	return g
}

func (g *spatialGrid) cell(cx, cy int) cellKey {
	if g.nx > 0 {
		cx = intMod(cx, g.nx)
		cy = intMod(cy, g.ny)
	}
	return cellKey{cx: cx, cy: cy}
}

func coord(v, min, size float64) int {
	return int(math.Floor((v - min) / size))
}

// Insert adds segment i at p
func (g *spatialGrid) Insert(i int, p Point) {
	k := g.cell(coord(p.X, g.sp.minX, g.cellW), coord(p.Y, g.sp.minY, g.cellH))
	g.cells[k] = append(g.cells[k], i)
}

// Any reports whether some segment with index >= minIdx is strictly within radius of p.
func (g *spatialGrid) Any(segs []Point, p Point, radius float64, minIdx int) bool {
	found := false
	g.visit(segs, p, radius, minIdx, func(int) bool {
		found = true
		return false
	})
	return found
}

func (g *spatialGrid) visit(segs []Point, p Point, radius float64, minIdx int, fn func(i int) bool) {
	minCX := coord(p.X-radius, g.sp.minX, g.cellW)
	maxCX := coord(p.X+radius, g.sp.minX, g.cellW)
	minCY := coord(p.Y-radius, g.sp.minY, g.cellH)
	maxCY := coord(p.Y+radius, g.sp.minY, g.cellH)

	r2 := radius * radius
	seen := make(map[cellKey]bool, 4)
	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			k := g.cell(cx, cy)
			if seen[k] {
				continue
			}
			seen[k] = true
			for _, i := range g.cells[k] {
				if i < minIdx {
					continue
				}
				if g.sp.dist2(segs[i], p) < r2 {
					if !fn(i) {
						return
					}
				}
			}
		}
	}
}
