package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
	"github.com/JunalChowdhuryG/Expo-Snake/stats"
	"github.com/google/uuid"
)

// botNames is the pool of names for autopilot sessions
var botNames = []string{
	"Viper", "Cobra", "Mamba", "Python", "Anaconda",
	"Sidewinder", "Boa", "Taipan", "Krait", "Adder",
}

// Autopilot is an input source that plays a single game. Rules are applied
// in priority order: walls, own body, food, then wandering.
type Autopilot struct {
	cfg sim.Config
	rng *rand.Rand

	wanderTicks int     // ticks remaining before picking a new wander direction
	targetAngle float64 // angle the bot is currently steering toward
	seekTicks   int     // ticks spent seeking the same food
	breakTicks  int     // ticks left wandering after a seek timeout
	lastScore   int     // score last tick, used to detect that food was eaten

	held     sim.DirectionSet // keys pressed by the last instant turn
	turnedAt int              // tick of the last instant turn
}

// NewAutopilot creates an autopilot for games played with cfg.
func NewAutopilot(cfg sim.Config, rng *rand.Rand) *Autopilot {
	return &Autopilot{
		cfg:         cfg,
		rng:         rng,
		wanderTicks: randomWanderDuration(rng),
	}
}

// Input decides the next input from the last snapshot.
func (a *Autopilot) Input(st sim.State) sim.Input {
	if st.IsGameOver || st.IsPaused || len(st.Snake) == 0 {
		a.seekTicks, a.lastScore, a.breakTicks = 0, 0, 0
		a.held, a.turnedAt = 0, 0
		return sim.Input{}
	}
	if a.cfg.Model == sim.Grid {
		return sim.Input{Direction: a.gridDirection(st)}
	}
	angle, boost, brake := a.decideAngle(st)
	held := heldToward(angle)
	if a.cfg.Steering == sim.SteerInstant {
		held = a.settle(st, held)
	}
	return sim.Input{Held: held, Boost: boost, Brake: brake}
}

// settle keeps the previous keys until the head has moved clear of the last
// instant turn, so back-to-back turns never fold the head onto the body.
func (a *Autopilot) settle(st sim.State, held sim.DirectionSet) sim.DirectionSet {
	if held == a.held {
		return held
	}
	travelled := float64(st.Tick-a.turnedAt) * st.Velocity.Len()
	if a.held != 0 && travelled < a.cfg.CollisionRadius+a.cfg.SegmentSpacing {
		return a.held
	}
	a.held, a.turnedAt = held, st.Tick
	return held
}

// gridDirection picks the safe move that gets closest to the nearest food.
// Ties keep the current heading. A boxed-in snake keeps going.
func (a *Autopilot) gridDirection(st sim.State) sim.Direction {
	head := st.Head()
	tailMoves := st.PendingGrowth == 0
	occupied := make(map[sim.Point]bool, len(st.Snake))
	for i, p := range st.Snake {
		if tailMoves && i == len(st.Snake)-1 {
			continue
		}
		occupied[p] = true
	}

	target, hasTarget := a.nearestGridFood(head, st.Food)
	best := sim.None
	bestScore := math.MaxFloat64
	for _, d := range []sim.Direction{st.Direction, sim.Up, sim.Right, sim.Down, sim.Left} {
		if d == st.Direction.Opposite() {
			continue
		}
		next, ok := a.gridNext(head, d)
		if !ok || occupied[next] {
			continue
		}
		score := 0.0
		if hasTarget {
			score = a.gridDist(next, target)
		}
		// Prefer cells with room to keep moving.
		score -= 0.5 * float64(a.gridFreeNeighbors(next, occupied))
		if score < bestScore {
			best, bestScore = d, score
		}
	}
	if best == sim.None {
		return st.Direction
	}
	return best
}

func (a *Autopilot) gridNext(p sim.Point, d sim.Direction) (sim.Point, bool) {
	v := d.Delta()
	next := sim.Point{X: p.X + v.X, Y: p.Y + v.Y}
	cols, rows := float64(a.cfg.Columns), float64(a.cfg.Rows)
	if next.X >= 0 && next.X < cols && next.Y >= 0 && next.Y < rows {
		return next, true
	}
	if !a.cfg.WrapEdges {
		return next, false
	}
	next.X = math.Mod(next.X+cols, cols)
	next.Y = math.Mod(next.Y+rows, rows)
	return next, true
}

func (a *Autopilot) gridFreeNeighbors(p sim.Point, occupied map[sim.Point]bool) int {
	n := 0
	for _, d := range []sim.Direction{sim.Up, sim.Down, sim.Left, sim.Right} {
		if q, ok := a.gridNext(p, d); ok && !occupied[q] {
			n++
		}
	}
	return n
}

// gridDist is the Manhattan distance, measured around the board when it wraps.
func (a *Autopilot) gridDist(p, q sim.Point) float64 {
	dx, dy := math.Abs(p.X-q.X), math.Abs(p.Y-q.Y)
	if a.cfg.WrapEdges {
		dx = math.Min(dx, float64(a.cfg.Columns)-dx)
		dy = math.Min(dy, float64(a.cfg.Rows)-dy)
	}
	return dx + dy
}

func (a *Autopilot) nearestGridFood(head sim.Point, food []sim.Point) (sim.Point, bool) {
	best, bestDist := sim.Point{}, math.MaxFloat64
	for _, f := range food {
		if d := a.gridDist(head, f); d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, len(food) > 0
}

// decideAngle applies the continuous-mode rules and returns the target
// heading with throttle requests.
func (a *Autopilot) decideAngle(st sim.State) (angle float64, boost, brake bool) {
	head := st.Head()
	currentAngle := math.Atan2(st.Velocity.Y, st.Velocity.X)

	// --- Priority 1: Boundary avoidance ---
	if !a.cfg.WrapEdges {
		b := BotBoundaryBuffer
		if head.X < b || head.Y < b || head.X > a.cfg.Width-b || head.Y > a.cfg.Height-b {
			a.targetAngle = math.Atan2(a.cfg.Height/2-head.Y, a.cfg.Width/2-head.X)
			a.wanderTicks = randomWanderDuration(a.rng)
			return a.reachable(currentAngle, a.targetAngle), false, true
		}
	}

	// --- Priority 2: Danger avoidance, own body segments ahead ---
	for i := a.cfg.ExclusionIndex; i < len(st.Snake); i++ {
		dx, dy := a.offset(head, st.Snake[i])
		if dx*dx+dy*dy >= BotDangerRadius*BotDangerRadius {
			continue
		}
		angleDiff := sim.NormalizeAngle(math.Atan2(dy, dx) - currentAngle)
		if math.Abs(angleDiff) < math.Pi/4 {
			// Turn 90° away from the side the segment is on
			if angleDiff >= 0 {
				a.targetAngle = currentAngle - math.Pi/2
			} else {
				a.targetAngle = currentAngle + math.Pi/2
			}
			a.wanderTicks = randomWanderDuration(a.rng)
			return a.targetAngle, false, true
		}
	}

	// --- Priority 3: Seek food, unless breaking out of an orbit ---
	if st.Score > a.lastScore {
		a.seekTicks = 0
	}
	a.lastScore = st.Score

	if a.breakTicks == 0 && len(st.Food) > 0 {
		if a.seekTicks < BotSeekTimeout {
			bestDist := math.MaxFloat64
			var bdx, bdy float64
			for _, f := range st.Food {
				fdx, fdy := a.offset(head, f)
				d := math.Hypot(fdx, fdy)
				// Prefer food in front, penalize food behind by 2x distance
				if math.Abs(sim.NormalizeAngle(math.Atan2(fdy, fdx)-currentAngle)) > math.Pi/2 {
					d *= 2.0
				}
				if d < bestDist {
					bestDist, bdx, bdy = d, fdx, fdy
				}
			}
			a.targetAngle = math.Atan2(bdy, bdx)
			a.seekTicks++
			onCourse := math.Abs(sim.NormalizeAngle(a.targetAngle-currentAngle)) < math.Pi/8
			return a.reachable(currentAngle, a.targetAngle), onCourse && bestDist > 4*a.cfg.EatRadius, false
		}
		// Seek timed out (circling), break the orbit with a wide turn
		a.seekTicks = 0
		a.targetAngle = currentAngle + math.Pi/2 + a.rng.Float64()*math.Pi/2
		a.breakTicks = randomWanderDuration(a.rng)
		a.wanderTicks = a.breakTicks
		return a.reachable(currentAngle, a.targetAngle), false, false
	}

	// --- Priority 4: Wander ---
	if a.breakTicks > 0 {
		a.breakTicks--
	}
	if a.wanderTicks <= 0 {
		a.targetAngle = a.rng.Float64() * 2 * math.Pi
		a.wanderTicks = randomWanderDuration(a.rng)
	}
	a.wanderTicks--
	return a.reachable(currentAngle, a.targetAngle), false, false
}

// reachable replaces a near-reversal with a quarter turn toward the target
// side when instant steering would drop the request.
func (a *Autopilot) reachable(current, target float64) float64 {
	if a.cfg.Steering != sim.SteerInstant {
		return target
	}
	diff := sim.NormalizeAngle(target - current)
	if math.Abs(diff) <= 3*math.Pi/4 {
		return target
	}
	if diff >= 0 {
		return current + math.Pi/2
	}
	return current - math.Pi/2
}

// offset returns q-p, taking the short way across the seams of a wrapping board.
func (a *Autopilot) offset(p, q sim.Point) (float64, float64) {
	dx, dy := q.X-p.X, q.Y-p.Y
	if a.cfg.WrapEdges {
		spanX := a.cfg.Width + 2*a.cfg.WrapMargin
		spanY := a.cfg.Height + 2*a.cfg.WrapMargin
		dx -= spanX * math.Round(dx/spanX)
		dy -= spanY * math.Round(dy/spanY)
	}
	return dx, dy
}

// heldToward quantizes angle to the nearest of the eight key combinations.
// Screen coordinates: +Y points down.
func heldToward(angle float64) sim.DirectionSet {
	sector := int(math.Round(angle/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	switch sector {
	case 0:
		return sim.Held(sim.Right)
	case 1:
		return sim.Held(sim.Right, sim.Down)
	case 2:
		return sim.Held(sim.Down)
	case 3:
		return sim.Held(sim.Down, sim.Left)
	case 4:
		return sim.Held(sim.Left)
	case 5:
		return sim.Held(sim.Left, sim.Up)
	case 6:
		return sim.Held(sim.Up)
	default:
		return sim.Held(sim.Up, sim.Right)
	}
}

// BotManager runs the autopilot sessions
type BotManager struct {
	cfg     Config
	hub     *Hub
	tracker *stats.Tracker
}

// NewBotManager creates a BotManager bound to the given hub
func NewBotManager(cfg Config, hub *Hub, tracker *stats.Tracker) *BotManager {
	return &BotManager{cfg: cfg, hub: hub, tracker: tracker}
}

// SpawnBot creates one autopilot session, registers it and runs it until
// ctx is cancelled. Finished games restart after BotRespawnTicks.
func (bm *BotManager) SpawnBot(ctx context.Context, n int) (*Session, error) {
	name := botNames[n%len(botNames)]
	if n >= len(botNames) {
		name = fmt.Sprintf("%s %d", name, n/len(botNames)+1)
	}
	simCfg, err := bm.cfg.SimConfig()
	if err != nil {
		return nil, err
	}
	pilot := NewAutopilot(simCfg, rand.New(rand.NewSource(rand.Int63())))

	s, err := NewSession("bot-"+uuid.NewString(), name, bm.cfg, bm.hub, bm.tracker, nil, pilot.Input)
	if err != nil {
		return nil, err
	}
	s.respawnAfter = bm.cfg.BotRespawnTicks
	if s.respawnAfter <= 0 {
		s.respawnAfter = 1
	}

	bm.hub.Add(s)
	go func() {
		defer bm.hub.Remove(s.ID)
		s.Run(ctx)
	}()
	return s, nil
}

// Start spawns the configured number of bots.
func (bm *BotManager) Start(ctx context.Context) error {
	for i := 0; i < bm.cfg.Bots; i++ {
		if _, err := bm.SpawnBot(ctx, i); err != nil {
			return err
		}
	}
	if bm.cfg.Bots > 0 {
		log.Printf("spawned %d bots", bm.cfg.Bots)
	}
	return nil
}

// --- helpers ---

// randomWanderDuration returns a tick count in [BotWanderMinTicks, BotWanderMaxTicks]
func randomWanderDuration(rng *rand.Rand) int {
	return BotWanderMinTicks + rng.Intn(BotWanderMaxTicks-BotWanderMinTicks+1)
}

