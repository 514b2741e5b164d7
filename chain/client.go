package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/l1sound/l1sound/log"
)

// dialTimeout bounds the initial connection attempt to the endpoint.
const dialTimeout = 25 * time.Second

// Client is a Source backed by an EVM JSON-RPC endpoint.
type Client struct {
	c      *rpc.Client
	logger *log.Logger
}

// Dial connects to the given JSON-RPC endpoint URL (http, https, ws or a
// local IPC path). The returned client is safe for sequential use by one
// checkpoint run; call Close when done.
func Dial(ctx context.Context, url string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return &Client{
		c:      c,
		logger: log.Default().Module("chain"),
	}, nil
}

// Close tears down the underlying transport connection.
func (cl *Client) Close() {
	cl.c.Close()
}

// rpcHeader is the subset of an execution block header needed for checkpoint
// construction. Root fields are pointers so that a header omitting one of
// them is detectable rather than silently decoding to the zero hash.
type rpcHeader struct {
	Number           *hexutil.Big `json:"number"`
	StateRoot        *common.Hash `json:"stateRoot"`
	TransactionsRoot *common.Hash `json:"transactionsRoot"`
	ReceiptsRoot     *common.Hash `json:"receiptsRoot"`
}

// toRecord validates the decoded header and converts it to a BlockRecord.
func (h *rpcHeader) toRecord(number uint64) (BlockRecord, error) {
	if h == nil {
		return BlockRecord{}, fmt.Errorf("%w: block %d not found", ErrBlockFetch, number)
	}
	if h.StateRoot == nil || h.TransactionsRoot == nil || h.ReceiptsRoot == nil {
		return BlockRecord{}, fmt.Errorf("%w: block %d header omits a root field", ErrBlockFetch, number)
	}
	return BlockRecord{
		Number:           number,
		StateRoot:        *h.StateRoot,
		TransactionsRoot: *h.TransactionsRoot,
		ReceiptsRoot:     *h.ReceiptsRoot,
	}, nil
}

// ChainInfo implements Source.
func (cl *Client) ChainInfo(ctx context.Context) (Info, error) {
	var chainID hexutil.Big
	if err := cl.c.CallContext(ctx, &chainID, "eth_chainId"); err != nil {
		return Info{}, fmt.Errorf("%w: eth_chainId: %v", ErrConnection, err)
	}
	var head hexutil.Uint64
	if err := cl.c.CallContext(ctx, &head, "eth_blockNumber"); err != nil {
		return Info{}, fmt.Errorf("%w: eth_blockNumber: %v", ErrConnection, err)
	}

	id := chainID.ToInt().Uint64()
	cl.logger.Debug("resolved chain info", "chainId", id, "head", uint64(head))
	return Info{
		ChainID: id,
		Network: NetworkName(id),
		Head:    uint64(head),
	}, nil
}

// BlockRoots implements Source. Transaction bodies are never requested; only
// the header fields are decoded.
func (cl *Client) BlockRoots(ctx context.Context, number uint64) (BlockRecord, error) {
	var hdr *rpcHeader
	err := cl.c.CallContext(ctx, &hdr, "eth_getBlockByNumber", hexutil.Uint64(number).String(), false)
	if err != nil {
		return BlockRecord{}, fmt.Errorf("%w: block %d: %v", ErrBlockFetch, number, err)
	}
	return hdr.toRecord(number)
}
