package community

import "github.com/arolim/hcp-mcmc/internal/bitpack"

// HCG returns the highest common group of two masks: the largest group
// index whose bit is set in both. Bit 0 (the universal group) is always
// set, so the result is never negative.
func (m *Model) HCG(maskU, maskV uint64) int {
	groupMask := lowMask(m.numGroups)
	return bitpack.HighestSetBit(maskU & maskV & groupMask)
}

// HCGWithPrior computes HCG using oldMask in place of u's current mask.
// Used during incremental counter updates, where u's new mask has already
// been written but the bucket a pair previously occupied is still needed.
func (m *Model) HCGWithPrior(oldMask, maskV uint64) int {
	groupMask := lowMask(m.numGroups)
	return bitpack.HighestSetBit(oldMask & maskV & groupMask)
}

func lowMask(numGroups int) uint64 {
	if numGroups >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(numGroups)) - 1
}
