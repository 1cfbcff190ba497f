// Package layout positions graph nodes with a force-directed simulation.
// The simulation runs a fixed number of discrete steps and is then
// frozen; callers re-run it only on a full dataset change. Positions are
// returned as a derived map keyed by node ID so input records are never
// mutated.
package layout

import "math"

// Position is a node coordinate in viewport units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is the minimal node shape the simulation needs: an identity and
// the collision radius assigned by the diagram.
type Node struct {
	ID     string
	Radius float64
}

// Link connects two nodes by ID.
type Link struct {
	Source string
	Target string
}

// Config holds the simulation parameters.
type Config struct {
	Width  float64
	Height float64

	LinkDistance   float64 // target separation of linked nodes
	ChargeStrength float64 // pairwise repulsion, negative repels
	CollidePadding float64 // extra clearance between node circles
	AxisStrength   float64 // pull toward the center axes
	Steps          int     // discrete simulation steps before freezing
	Margin         float64 // clamp distance from the viewport bounds
}

// DefaultConfig returns the tuning the catalog cloud renders with.
func DefaultConfig() Config {
	return Config{
		Width:          1200,
		Height:         800,
		LinkDistance:   150,
		ChargeStrength: -25,
		CollidePadding: 9,
		AxisStrength:   0.05,
		Steps:          300,
		Margin:         30,
	}
}

const (
	initialRadius = 10
	velocityDecay = 0.6
	alphaMin      = 0.001
)

// golden angle, used for the deterministic phyllotaxis seeding
var initialAngle = math.Pi * (3 - math.Sqrt(5))

type body struct {
	x, y   float64
	vx, vy float64
	radius float64
	degree int
}

// Compute runs the simulation and returns final positions clamped to the
// configured margin. The result is deterministic for a given input.
func Compute(nodes []Node, links []Link, cfg Config) map[string]Position {
	n := len(nodes)
	positions := make(map[string]Position, n)
	if n == 0 {
		return positions
	}

	cx := cfg.Width / 2
	cy := cfg.Height / 2

	index := make(map[string]int, n)
	bodies := make([]body, n)
	for i, node := range nodes {
		// Deterministic spiral seeding, same scheme d3 initializes with.
		r := initialRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * initialAngle
		bodies[i] = body{
			x:      cx + r*math.Cos(a),
			y:      cy + r*math.Sin(a),
			radius: node.Radius,
		}
		index[node.ID] = i
	}

	edges := make([]struct{ s, t int }, 0, len(links))
	for _, link := range links {
		s, okS := index[link.Source]
		t, okT := index[link.Target]
		if !okS || !okT || s == t {
			continue
		}
		edges = append(edges, struct{ s, t int }{s, t})
		bodies[s].degree++
		bodies[t].degree++
	}

	alpha := 1.0
	alphaDecay := 1 - math.Pow(alphaMin, 1/float64(cfg.Steps))

	for step := 0; step < cfg.Steps; step++ {
		alpha += (0 - alpha) * alphaDecay

		applyLinkForce(bodies, edges, cfg.LinkDistance, alpha)
		applyChargeForce(bodies, cfg.ChargeStrength, alpha)
		applyAxisForce(bodies, cx, cy, cfg.AxisStrength, alpha)

		for i := range bodies {
			bodies[i].vx *= velocityDecay
			bodies[i].vy *= velocityDecay
			bodies[i].x += bodies[i].vx
			bodies[i].y += bodies[i].vy
		}

		applyCollideForce(bodies, cfg.CollidePadding)
		applyCenterForce(bodies, cx, cy)
	}

	for i, node := range nodes {
		positions[node.ID] = Position{
			X: clamp(bodies[i].x, cfg.Margin, cfg.Width-cfg.Margin),
			Y: clamp(bodies[i].y, cfg.Margin, cfg.Height-cfg.Margin),
		}
	}
	return positions
}

// applyLinkForce pulls linked nodes toward the target separation. The
// strength and bias per edge follow the degree weighting d3's link force
// uses, so hubs move less than leaves.
func applyLinkForce(bodies []body, edges []struct{ s, t int }, distance, alpha float64) {
	for _, e := range edges {
		src, tgt := &bodies[e.s], &bodies[e.t]

		dx := tgt.x + tgt.vx - src.x - src.vx
		dy := tgt.y + tgt.vy - src.y - src.vy
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dist = 1e-6
			dx = 1e-6
		}

		strength := 1 / float64(min(src.degree, tgt.degree))
		l := (dist - distance) / dist * alpha * strength
		bias := float64(src.degree) / float64(src.degree+tgt.degree)

		tgt.vx -= dx * l * bias
		tgt.vy -= dy * l * bias
		src.vx += dx * l * (1 - bias)
		src.vy += dy * l * (1 - bias)
	}
}

// applyChargeForce repels every node pair. Datasets are small, so the
// exact O(n^2) sum is cheaper than maintaining a quadtree.
func applyChargeForce(bodies []body, strength, alpha float64) {
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			dx := bodies[j].x - bodies[i].x
			dy := bodies[j].y - bodies[i].y
			d2 := dx*dx + dy*dy
			if d2 == 0 {
				d2 = 1e-6
				dx = 1e-3
			}

			w := strength * alpha / d2
			bodies[j].vx += dx * w
			bodies[j].vy += dy * w
			bodies[i].vx -= dx * w
			bodies[i].vy -= dy * w
		}
	}
}

// applyAxisForce adds the weak positional springs toward the horizontal
// and vertical center axes that keep the cloud from drifting.
func applyAxisForce(bodies []body, cx, cy, strength, alpha float64) {
	for i := range bodies {
		bodies[i].vx += (cx - bodies[i].x) * strength * alpha
		bodies[i].vy += (cy - bodies[i].y) * strength * alpha
	}
}

// applyCollideForce separates overlapping node circles, honoring the
// configured padding. Positions are adjusted directly, half per side.
func applyCollideForce(bodies []body, padding float64) {
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			minDist := bodies[i].radius + bodies[j].radius + padding
			dx := bodies[j].x - bodies[i].x
			dy := bodies[j].y - bodies[i].y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				dist = 1e-6
				dx = 1e-6
			}

			push := (minDist - dist) / dist / 2
			bodies[j].x += dx * push
			bodies[j].y += dy * push
			bodies[i].x -= dx * push
			bodies[i].y -= dy * push
		}
	}
}

// applyCenterForce translates the whole layout so its centroid sits at
// the viewport center.
func applyCenterForce(bodies []body, cx, cy float64) {
	var sx, sy float64
	for i := range bodies {
		sx += bodies[i].x
		sy += bodies[i].y
	}
	sx = sx/float64(len(bodies)) - cx
	sy = sy/float64(len(bodies)) - cy
	for i := range bodies {
		bodies[i].x -= sx
		bodies[i].y -= sy
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// min over edge endpoint degrees; every endpoint of an edge has degree
// at least one.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
