package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/l1sound/l1sound/checkpoint"
)

// jsonEnvelope is the machine-readable output document. Data carries the
// checkpoint result verbatim; Mode and GeneratedAtUtc identify and timestamp
// the run for downstream consumers.
type jsonEnvelope struct {
	Mode           string            `json:"mode"`
	GeneratedAtUtc string            `json:"generatedAtUtc"`
	Data           checkpoint.Result `json:"data"`
}

// renderJSON writes the machine-readable output document.
func renderJSON(w io.Writer, result checkpoint.Result) error {
	env := jsonEnvelope{
		Mode:           "l1_soundness_checkpoint",
		GeneratedAtUtc: time.Now().UTC().Format(time.RFC3339),
		Data:           result,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// renderText writes the human-readable summary. The checkpoint line label is
// part of the output contract; scripts grep for it.
func renderText(w io.Writer, result checkpoint.Result) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Network: %s (chainId %d)\n", result.Network, result.ChainID)
	fmt.Fprintf(w, "Window: head=%d start=%d (blocksRequested=%d step=%d)\n",
		result.Head, result.Start, result.BlocksRequested, result.Step)
	fmt.Fprintf(w, "Sampled blocks: %d  (elapsed=%.2fs)\n", result.SampledBlocks, result.ElapsedSec)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "L1 Soundness Checkpoint (Keccak-256 hex):")
	fmt.Fprintf(w, "   %s\n", result.CheckpointHex)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This checkpoint is a rolling commitment over (blockNumber, stateRoot,")
	fmt.Fprintln(w, "transactionsRoot, receiptsRoot) for the sampled blocks. It can be used as a")
	fmt.Fprintln(w, "public input for ZK circuits, rollups, or soundness verification jobs.")
}
