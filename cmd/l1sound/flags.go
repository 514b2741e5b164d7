package main

import (
	"flag"
	"os"
	"strconv"
)

// Defaults for the sampling knobs, overridable via environment and flags.
const (
	defaultRPC    = "http://localhost:8545"
	defaultBlocks = 128
	defaultStep   = 4
)

// largeWindow is the requested window size beyond which a slow-run warning
// is emitted. The run still proceeds.
const largeWindow = 200_000

// config holds the resolved CLI configuration for one run.
type config struct {
	RPCURL    string
	Blocks    uint64
	Step      uint64
	JSON      bool
	Verbosity int
}

// defaultConfig resolves defaults from the environment: RPC_URL,
// SOUNDNESS_BLOCKS and SOUNDNESS_STEP. Malformed numeric values are ignored
// in favour of the built-in defaults; the flags can still override.
func defaultConfig() config {
	cfg := config{
		RPCURL:    defaultRPC,
		Blocks:    defaultBlocks,
		Step:      defaultStep,
		Verbosity: 3,
	}
	if v := os.Getenv("RPC_URL"); v != "" {
		cfg.RPCURL = v
	}
	if v := os.Getenv("SOUNDNESS_BLOCKS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Blocks = n
		}
	}
	if v := os.Getenv("SOUNDNESS_STEP"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Step = n
		}
	}
	return cfg
}

// newFlagSet registers the run flags over cfg. Short and long spellings
// share the same variable, so either may be used.
func newFlagSet(cfg *config) *flag.FlagSet {
	fs := flag.NewFlagSet("l1sound", flag.ContinueOnError)
	fs.StringVar(&cfg.RPCURL, "rpc", cfg.RPCURL, "RPC endpoint URL (default from RPC_URL env)")
	fs.Uint64Var(&cfg.Blocks, "blocks", cfg.Blocks, "how many recent blocks to include in the checkpoint")
	fs.Uint64Var(&cfg.Blocks, "b", cfg.Blocks, "shorthand for -blocks")
	fs.Uint64Var(&cfg.Step, "step", cfg.Step, "sample every Nth block (speed vs. security margin)")
	fs.Uint64Var(&cfg.Step, "s", cfg.Step, "shorthand for -step")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print JSON only (machine-readable output)")
	fs.IntVar(&cfg.Verbosity, "verbosity", cfg.Verbosity, "log level 0-5 (0=silent, 5=trace)")
	return fs
}
