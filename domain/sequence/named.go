package sequence

import (
	"seqentropy/domain/core"
)

// Named pairs a sequence with the key it was read or submitted under
type Named struct {
	Key   core.SequenceKey `json:"key"`
	Codes Sequence         `json:"codes"`
}

// Fingerprint hashes the codes of the sequence
func (n Named) Fingerprint() core.SequenceHash {
	return core.ComputeSequenceHash(n.Codes)
}
