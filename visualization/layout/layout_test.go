package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNodes(n int) []Node {
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i] = Node{ID: fmt.Sprintf("n%d", i), Radius: 25}
	}
	return nodes
}

func ringLinks(n int) []Link {
	links := make([]Link, 0, n)
	for i := 0; i < n; i++ {
		links = append(links, Link{
			Source: fmt.Sprintf("n%d", i),
			Target: fmt.Sprintf("n%d", (i+1)%n),
		})
	}
	return links
}

func TestComputeEmpty(t *testing.T) {
	positions := Compute(nil, nil, DefaultConfig())
	assert.Empty(t, positions)
}

func TestComputeIsDeterministic(t *testing.T) {
	nodes := testNodes(12)
	links := ringLinks(12)
	cfg := DefaultConfig()

	first := Compute(nodes, links, cfg)
	second := Compute(nodes, links, cfg)

	require.Len(t, first, 12)
	assert.Equal(t, first, second)
}

func TestComputeClampsToMargin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Height = 150

	// Strong repulsion on a small canvas pushes nodes into the clamp.
	nodes := testNodes(20)
	positions := Compute(nodes, nil, cfg)

	for id, p := range positions {
		assert.GreaterOrEqual(t, p.X, cfg.Margin, "node %s x", id)
		assert.LessOrEqual(t, p.X, cfg.Width-cfg.Margin, "node %s x", id)
		assert.GreaterOrEqual(t, p.Y, cfg.Margin, "node %s y", id)
		assert.LessOrEqual(t, p.Y, cfg.Height-cfg.Margin, "node %s y", id)
	}
}

func TestComputeSingleNodeCenters(t *testing.T) {
	cfg := DefaultConfig()
	positions := Compute(testNodes(1), nil, cfg)

	p := positions["n0"]
	assert.InDelta(t, cfg.Width/2, p.X, 1)
	assert.InDelta(t, cfg.Height/2, p.Y, 1)
}

func TestComputeSeparatesOverlappingNodes(t *testing.T) {
	cfg := DefaultConfig()
	nodes := testNodes(6)
	positions := Compute(nodes, nil, cfg)

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a := positions[nodes[i].ID]
			b := positions[nodes[j].ID]
			dist := math.Hypot(b.X-a.X, b.Y-a.Y)
			// Collision keeps circles apart unless clamping squeezed them.
			assert.Greater(t, dist, 1.0, "nodes %d and %d overlap", i, j)
		}
	}
}

func TestComputeLinkedNodesSitCloser(t *testing.T) {
	cfg := DefaultConfig()
	nodes := testNodes(10)
	links := []Link{{Source: "n0", Target: "n1"}}

	positions := Compute(nodes, links, cfg)

	a := positions["n0"]
	b := positions["n1"]
	linked := math.Hypot(b.X-a.X, b.Y-a.Y)

	// Average distance of n0 to unlinked nodes.
	var sum float64
	for i := 2; i < 10; i++ {
		p := positions[nodes[i].ID]
		sum += math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	assert.Less(t, linked, sum/8)
}

func TestComputeIgnoresUnknownAndSelfLinks(t *testing.T) {
	nodes := testNodes(3)
	links := []Link{
		{Source: "n0", Target: "ghost"},
		{Source: "n1", Target: "n1"},
	}

	positions := Compute(nodes, links, DefaultConfig())
	assert.Len(t, positions, 3)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 150.0, cfg.LinkDistance)
	assert.Equal(t, -25.0, cfg.ChargeStrength)
	assert.Equal(t, 9.0, cfg.CollidePadding)
	assert.Equal(t, 0.05, cfg.AxisStrength)
	assert.Equal(t, 300, cfg.Steps)
	assert.Equal(t, 30.0, cfg.Margin)
}
