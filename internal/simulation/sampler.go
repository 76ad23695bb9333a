package simulation

import (
	"math"
	"math/rand/v2"
	"time"

	"netcoverage-sim/internal/common"

	"gonum.org/v1/gonum/stat/distuv"
)

// MaxRejections caps the rejection loop of a single position draw.
// Acceptance probability is 1/2 per draw, so the cap is only reached with a broken source.
const MaxRejections = 1 << 20

// Sampler draws random nodes inside a Region from an injected random source.
type Sampler struct {
	region        Region
	src           rand.Source
	maxRejections int
}

// NewSampler creates a sampler for region. A nil src is replaced with a clock-seeded PCG.
func NewSampler(region Region, src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), 0)
	}
	return &Sampler{
		region:        region,
		src:           src,
		maxRejections: MaxRejections,
	}
}

// Region returns the region the sampler draws positions from.
func (s *Sampler) Region() Region {
	return s.region
}

// GenerateNodes draws n nodes. Each radius is max(0, Normal(mu, sigma)) and each
// position is rejection-sampled from the diamond.
//
// sigma must be non-negative; it is handed to the normal distribution as is.
func (s *Sampler) GenerateNodes(n int, mu, sigma float64) []Node {
	if n <= 0 {
		return []Node{}
	}
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i] = s.RandomNode(mu, sigma)
	}
	return nodes
}

// RandomNode draws a single node. The radius is drawn before the position.
func (s *Sampler) RandomNode(mu, sigma float64) Node {
	radius := distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}.Rand()
	pos := s.RandomPosition()
	return Node{Radius: math.Max(0, radius), X: pos[0], Y: pos[1]}
}

// RandomPosition draws uniformly from the bounding square until the candidate
// falls strictly inside the diamond. After maxRejections failed draws the last
// candidate is clamped into the region.
func (s *Sampler) RandomPosition() common.Vector {
	bounds := s.region.Bounds()
	var candidate common.Vector
	for attempt := 0; attempt < s.maxRejections; attempt++ {
		// bounds always has 4 elements for dimension 2, the error is unreachable.
		candidate, _ = common.NewRandomVector(2, bounds, s.src)
		if s.region.Contains(candidate) {
			return candidate
		}
	}
	return s.region.Clamp(candidate)
}
