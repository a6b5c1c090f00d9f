package sim

import "math"

// Point is a 2D coordinate. Grid mode keeps it on integral cell values.
type Point struct {
	X float64
	Y float64
}

// Vec is a 2D displacement, used for velocity.
type Vec struct {
	X float64
	Y float64
}

// Add returns p moved by v.
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Scale multiplies v by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Unit returns v scaled to length 1. The zero vector stays zero.
func (v Vec) Unit() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Angle returns the heading of v in radians. Screen coordinates: +Y points down.
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

func fromAngle(angle, length float64) Vec {
	return Vec{X: length * math.Cos(angle), Y: length * math.Sin(angle)}
}

// NormalizeAngle maps an angle in radians to [-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// space is the continuous playable area. When wrapping it is a torus whose
// period extends WrapMargin past every edge, so the head is fully off screen
// before it re-enters on the opposite side.
type space struct {
	wrap         bool
	width        float64
	height       float64
	minX, minY   float64
	spanX, spanY float64
}

func newSpace(cfg Config) space {
	sp := space{
		wrap:   cfg.WrapEdges,
		width:  cfg.Width,
		height: cfg.Height,
		spanX:  cfg.Width,
		spanY:  cfg.Height,
	}
	if sp.wrap {
		sp.minX, sp.minY = -cfg.WrapMargin, -cfg.WrapMargin
		sp.spanX += 2 * cfg.WrapMargin
		sp.spanY += 2 * cfg.WrapMargin
	}
	return sp
}

// delta returns the shortest vector from a to b.
func (sp space) delta(a, b Point) Vec {
	d := Vec{X: b.X - a.X, Y: b.Y - a.Y}
	if !sp.wrap {
		return d
	}
	if d.X > sp.spanX/2 {
		d.X -= sp.spanX
	} else if d.X < -sp.spanX/2 {
		d.X += sp.spanX
	}
	if d.Y > sp.spanY/2 {
		d.Y -= sp.spanY
	} else if d.Y < -sp.spanY/2 {
		d.Y += sp.spanY
	}
	return d
}

func (sp space) dist2(a, b Point) float64 {
	d := sp.delta(a, b)
	return d.X*d.X + d.Y*d.Y
}

func (sp space) dist(a, b Point) float64 {
	return math.Sqrt(sp.dist2(a, b))
}

// wrapPoint folds p back into [min, min+span). Unbounded spaces return p.
func (sp space) wrapPoint(p Point) Point {
	if !sp.wrap {
		return p
	}
	p.X = sp.minX + floorMod(p.X-sp.minX, sp.spanX)
	p.Y = sp.minY + floorMod(p.Y-sp.minY, sp.spanY)
	return p
}

// contains reports whether p is inside the walls. Wrapping spaces have none.
func (sp space) contains(p Point) bool {
	if sp.wrap {
		return true
	}
	return p.X >= 0 && p.X <= sp.width && p.Y >= 0 && p.Y <= sp.height
}

func floorMod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}

func intMod(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}
