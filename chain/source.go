// Package chain provides read access to block header data from an
// EVM-compatible chain over JSON-RPC. It exposes only what checkpoint
// construction needs: the chain identity, the current head, and the three
// header roots of individual blocks.
package chain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrConnection indicates the RPC endpoint is unreachable or a
	// chain-info query failed.
	ErrConnection = errors.New("chain: rpc endpoint unreachable")
	// ErrBlockFetch indicates a requested block does not exist or its
	// header omits a required root field.
	ErrBlockFetch = errors.New("chain: block missing or malformed")
)

// BlockRecord is an immutable snapshot of one block's header roots. All
// three roots are always exactly 32 bytes; a header that omits any of them
// never produces a BlockRecord.
type BlockRecord struct {
	Number           uint64
	StateRoot        common.Hash
	TransactionsRoot common.Hash
	ReceiptsRoot     common.Hash
}

// Info describes the chain behind a Source at the time of the query.
type Info struct {
	ChainID uint64
	Network string
	Head    uint64
}

// Source supplies chain metadata and per-block header roots. Implementations
// must either deliver the requested block or fail explicitly; silently
// substituting a different block would corrupt any transcript built on top.
type Source interface {
	// ChainInfo resolves the chain id, its human-readable network name and
	// the current head block number.
	ChainInfo(ctx context.Context) (Info, error)

	// BlockRoots fetches the header roots of the block at the given height.
	BlockRoots(ctx context.Context, number uint64) (BlockRecord, error)
}
