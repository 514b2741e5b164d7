// Package checkpoint builds L1 soundness checkpoints: rolling Keccak-256
// commitments over the header roots of a sampled window of recent blocks.
// The checkpoint is consumed downstream as a public input to proof systems
// or as a lightweight integrity anchor, so the sampling rule and the
// transcript encoding are fixed byte-for-byte and must be reproducible by
// independent implementations.
package checkpoint

import "fmt"

// Plan fixes the exact set and order of block numbers sampled for one
// checkpoint. It is a pure function of (head, blocksRequested, step); no
// network access is involved.
type Plan struct {
	Head            uint64
	Start           uint64
	BlocksRequested uint64
	Step            uint64
}

// NewPlan derives a sampling plan for the window of blocksRequested blocks
// ending at head, sampled every step blocks. The window start is clamped to
// genesis, so near the chain tip of a young chain the plan may cover fewer
// blocks than requested.
func NewPlan(head, blocksRequested, step uint64) (Plan, error) {
	if blocksRequested < 1 {
		return Plan{}, fmt.Errorf("%w: blocks requested must be >= 1, got %d", ErrInvalidParameter, blocksRequested)
	}
	if step < 1 {
		return Plan{}, fmt.Errorf("%w: step must be >= 1, got %d", ErrInvalidParameter, step)
	}

	var start uint64
	if head >= blocksRequested {
		start = head - blocksRequested + 1
	}
	return Plan{
		Head:            head,
		Start:           start,
		BlocksRequested: blocksRequested,
		Step:            step,
	}, nil
}

// Numbers returns the sampled block numbers: head, head-step, head-2*step,
// and so on, stopping before a value would fall below Start. The sequence is
// strictly descending and always contains Head. Transcript folding must
// consume the blocks in exactly this order.
func (p Plan) Numbers() []uint64 {
	nums := make([]uint64, 0, p.SampledBlocks())
	for n := p.Head; ; n -= p.Step {
		nums = append(nums, n)
		if n-p.Start < p.Step {
			break
		}
	}
	return nums
}

// SampledBlocks returns the length of the sequence produced by Numbers
// without materializing it. This is not simply BlocksRequested/Step: the
// window may be truncated at genesis.
func (p Plan) SampledBlocks() uint64 {
	return (p.Head-p.Start)/p.Step + 1
}
