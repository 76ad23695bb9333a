package simulation

import (
	"fmt"
	"math"

	"netcoverage-sim/internal/common"
)

// Node represents one network device: a coverage radius and a fixed position.
// Nodes are created by a Sampler once per trial and never modified.
type Node struct {
	Radius float64
	X      float64
	Y      float64
}

// Position returns the node position as a vector.
func (n Node) Position() common.Vector {
	return common.Vector{n.X, n.Y}
}

// DistanceTo returns the Euclidean distance between two nodes.
func (n Node) DistanceTo(other Node) float64 {
	return math.Hypot(n.X-other.X, n.Y-other.Y)
}

// String representation for logging
func (n Node) String() string {
	return fmt.Sprintf("Node Pos: %s Radius: %.2f", n.Position(), n.Radius)
}
