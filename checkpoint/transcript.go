package checkpoint

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/l1sound/l1sound/chain"
	"github.com/l1sound/l1sound/crypto"
)

// transcriptSeed is the initial accumulator value: 32 zero bytes. It is part
// of the cross-implementation contract; changing it changes every checkpoint
// ever produced.
var transcriptSeed = common.Hash{}

// Transcript folds block records into a single rolling Keccak-256
// accumulator. Each update hashes the previous accumulator together with the
// new record, so the digest commits to the record contents and to the exact
// processing order.
type Transcript struct {
	acc common.Hash
	n   uint64
}

// NewTranscript returns a transcript initialized to the fixed seed.
func NewTranscript() *Transcript {
	return &Transcript{acc: transcriptSeed}
}

// Absorb folds one block record into the accumulator.
//
// The per-step message is the concatenation, in this fixed field order, of
// the current accumulator (32 bytes), the block number as a 32-byte
// big-endian unsigned integer, and the state, transactions and receipts
// roots (32 bytes each). The 32-byte big-endian number encoding is pinned:
// any verifier recomputing the checkpoint must use the same width and
// endianness or the digests silently diverge.
func (t *Transcript) Absorb(rec chain.BlockRecord) {
	num := uint256.NewInt(rec.Number).Bytes32()
	t.acc = crypto.Keccak256Hash(
		t.acc[:],
		num[:],
		rec.StateRoot[:],
		rec.TransactionsRoot[:],
		rec.ReceiptsRoot[:],
	)
	t.n++
}

// Absorbed returns the number of records folded so far.
func (t *Transcript) Absorbed() uint64 {
	return t.n
}

// Sum returns the current accumulator value.
func (t *Transcript) Sum() common.Hash {
	return t.acc
}

// Hex returns the checkpoint rendering of the accumulator: lowercase,
// 0x-prefixed, 64 hex digits.
func (t *Transcript) Hex() string {
	return t.acc.Hex()
}
