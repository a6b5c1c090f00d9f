package sim

// reverseTolerance is how close to exactly opposite a continuous-mode
// instant turn must be before it is rejected as a reversal.
const reverseTolerance = 1e-9

// steer returns the velocity after directional input. No input keeps v.
// Angular steering is clamped to TurnRate/(1+len*TurnScale) radians, so
// bigger snakes arc wider.
func steer(cfg Config, st State, in Input) Vec {
	v := st.Velocity
	desired := in.Direction.Delta()
	if in.Direction == None {
		desired = in.Held.Resultant()
	}
	if desired == (Vec{}) {
		return v
	}

	speed := v.Len()
	switch cfg.Steering {
	case SteerAngular:
		maxTurn := cfg.TurnRate / (1.0 + float64(len(st.Snake))*cfg.TurnScale)
		heading := v.Angle()
		diff := clamp(NormalizeAngle(desired.Angle()-heading), -maxTurn, maxTurn)
		return fromAngle(heading+diff, speed)
	default:
		u := desired.Unit()
		if u.Dot(v.Unit()) < -1+reverseTolerance {
			return v
		}
		return u.Scale(speed)
	}
}

// throttle applies boost or brake, keeping speed within [MinSpeed, MaxSpeed].
func throttle(cfg Config, v Vec, in Input) Vec {
	if in.Boost == in.Brake {
		return v
	}
	speed := v.Len()
	if in.Boost {
		speed += cfg.Acceleration
	} else {
		speed -= cfg.Acceleration
	}
	return v.Unit().Scale(clamp(speed, cfg.MinSpeed, cfg.MaxSpeed))
}

// follow places head at index 0 and drags every other segment, head to
// tail, toward SegmentSpacing behind the one ahead of it. Each segment closes
// Smoothing of its excess; with Smoothing 1 the gap is exactly the spacing.
func follow(cfg Config, sp space, body []Point, head Point) []Point {
	out := make([]Point, len(body))
	out[0] = head
	for i := 1; i < len(body); i++ {
		ahead := out[i-1]
		cur := body[i]
		d := sp.delta(ahead, cur)
		dist := d.Len()
		if dist <= cfg.SegmentSpacing {
			out[i] = cur
			continue
		}
		target := ahead.Add(d.Scale(cfg.SegmentSpacing / dist))
		out[i] = sp.wrapPoint(cur.Add(sp.delta(cur, target).Scale(cfg.Smoothing)))
	}
	return out
}

// growTail appends n duplicates of the tail segment.
func growTail(body []Point, n int) []Point {
	if n <= 0 || len(body) == 0 {
		return body
	}
	tail := body[len(body)-1]
	for i := 0; i < n; i++ {
		body = append(body, tail)
	}
	return body
}

// selfCollides reports whether head is within CollisionRadius of a body
// segment at or beyond ExclusionIndex.
func selfCollides(cfg Config, sp space, body []Point, head Point) bool {
	if len(body) <= cfg.ExclusionIndex {
		return false
	}
	return indexSnake(cfg, sp, body).Any(body, head, cfg.CollisionRadius, cfg.ExclusionIndex)
}

// hitsCell reports whether p lands on a body cell. The tail cell is free
// when the tail moves away this tick.
func hitsCell(body []Point, p Point, tailMoves bool) bool {
	n := len(body)
	if tailMoves {
		n--
	}
	for i := 0; i < n; i++ {
		if body[i] == p {
			return true
		}
	}
	return false
}

// wrapCell folds a grid cell back onto a cols x rows torus.
func wrapCell(p Point, cols, rows int) Point {
	return Point{
		X: float64(intMod(int(p.X), cols)),
		Y: float64(intMod(int(p.Y), rows)),
	}
}

func insideBoard(p Point, cols, rows int) bool {
	return p.X >= 0 && p.X < float64(cols) && p.Y >= 0 && p.Y < float64(rows)
}
