// Command l1sound generates an L1 soundness checkpoint: a rolling Keccak-256
// commitment over the (blockNumber, stateRoot, transactionsRoot,
// receiptsRoot) tuples of a sampled window of recent blocks. The digest is
// usable as a public input for ZK circuits, rollups, or soundness
// verification jobs.
//
// Usage:
//
//	l1sound [flags]
//
// Flags:
//
//	--rpc          RPC endpoint URL (default from RPC_URL env)
//	-b, --blocks   How many recent blocks to include (default: 128)
//	-s, --step     Sample every Nth block (default: 4)
//	--json         Print JSON only (machine-readable output)
//	--verbosity    Log level 0-5 (default: 3)
//	--version      Print version and exit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/l1sound/l1sound/chain"
	"github.com/l1sound/l1sound/checkpoint"
	ilog "github.com/l1sound/l1sound/log"
	"github.com/l1sound/l1sound/metrics"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) and the output writer so it can be
// tested in isolation. Exit codes: 0 success, 1 parameter or connection
// error, 2 checkpoint build failure.
func run(args []string, stdout io.Writer) int {
	cfg := defaultConfig()
	fs := newFlagSet(&cfg)
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "l1sound %s (commit %s)\n", version, commit)
		return 0
	}

	setupLogging(cfg.Verbosity)

	if cfg.Blocks == 0 || cfg.Step == 0 {
		fmt.Fprintln(os.Stderr, "Error: -blocks and -step must be > 0")
		return 1
	}
	if cfg.Blocks > largeWindow {
		log.Warn("Large block window requested; this may take a long time", "blocks", cfg.Blocks)
	}

	log.Info("Starting checkpoint run",
		"version", version,
		"rpc", cfg.RPCURL,
		"blocks", cfg.Blocks,
		"step", cfg.Step,
	)

	// SIGINT/SIGTERM abort the whole run; a partial checkpoint is
	// meaningless.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dialStart := time.Now()
	client, err := chain.Dial(ctx, cfg.RPCURL)
	if err != nil {
		log.Error("Failed to connect to RPC endpoint", "rpc", cfg.RPCURL, "err", err)
		return 1
	}
	defer client.Close()

	info, err := client.ChainInfo(ctx)
	if err != nil {
		log.Error("Failed to resolve chain info", "err", err)
		return 1
	}
	latency := time.Since(dialStart)
	log.Info("Connected",
		"network", info.Network,
		"chainId", info.ChainID,
		"tip", info.Head,
		"latency", latency.Round(10*time.Millisecond),
	)

	collector := metrics.NewCollector()
	collector.Record("rpc.connect_sec", latency.Seconds())

	builder := checkpoint.NewBuilder(client).WithCollector(collector)
	result, err := builder.Build(ctx, checkpoint.Params{
		BlocksRequested: cfg.Blocks,
		Step:            cfg.Step,
	})
	if err != nil {
		log.Error("Failed to build checkpoint", "err", err)
		if errors.Is(err, checkpoint.ErrInvalidParameter) || errors.Is(err, checkpoint.ErrAborted) {
			return 1
		}
		return 2
	}

	log.Debug("Fetch timing",
		"count", collector.Count("fetch.duration_ms"),
		"p50_ms", collector.Percentile("fetch.duration_ms", 50),
		"p95_ms", collector.Percentile("fetch.duration_ms", 95),
	)

	if cfg.JSON {
		if err := renderJSON(stdout, result); err != nil {
			log.Error("Failed to encode result", "err", err)
			return 2
		}
		return 0
	}
	renderText(stdout, result)
	return 0
}

// setupLogging routes both go-ethereum's logger and the internal module
// loggers through one terminal handler at the requested verbosity.
func setupLogging(verbosity int) {
	lvl := ilog.VerbosityToLevel(verbosity)
	if verbosity >= 5 {
		lvl = log.LevelTrace
	}
	h := log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true)
	log.SetDefault(log.NewLogger(h))
	ilog.SetDefault(ilog.NewWithHandler(h))
}
