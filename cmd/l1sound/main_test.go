package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/l1sound/l1sound/checkpoint"
)

func TestDefaultConfigBuiltins(t *testing.T) {
	t.Setenv("RPC_URL", "")
	t.Setenv("SOUNDNESS_BLOCKS", "")
	t.Setenv("SOUNDNESS_STEP", "")

	cfg := defaultConfig()
	if cfg.RPCURL != defaultRPC {
		t.Fatalf("rpc = %q, want %q", cfg.RPCURL, defaultRPC)
	}
	if cfg.Blocks != 128 || cfg.Step != 4 {
		t.Fatalf("blocks/step = %d/%d, want 128/4", cfg.Blocks, cfg.Step)
	}
	if cfg.Verbosity != 3 {
		t.Fatalf("verbosity = %d, want 3", cfg.Verbosity)
	}
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("RPC_URL", "https://rpc.example.org")
	t.Setenv("SOUNDNESS_BLOCKS", "256")
	t.Setenv("SOUNDNESS_STEP", "8")

	cfg := defaultConfig()
	if cfg.RPCURL != "https://rpc.example.org" {
		t.Fatalf("rpc = %q", cfg.RPCURL)
	}
	if cfg.Blocks != 256 || cfg.Step != 8 {
		t.Fatalf("blocks/step = %d/%d, want 256/8", cfg.Blocks, cfg.Step)
	}
}

func TestDefaultConfigIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("SOUNDNESS_BLOCKS", "lots")
	t.Setenv("SOUNDNESS_STEP", "-4")

	cfg := defaultConfig()
	if cfg.Blocks != 128 || cfg.Step != 4 {
		t.Fatalf("blocks/step = %d/%d, want builtin defaults", cfg.Blocks, cfg.Step)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SOUNDNESS_BLOCKS", "256")

	cfg := defaultConfig()
	fs := newFlagSet(&cfg)
	if err := fs.Parse([]string{"-b", "32", "-s", "2", "-json"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Blocks != 32 || cfg.Step != 2 {
		t.Fatalf("blocks/step = %d/%d, want 32/2", cfg.Blocks, cfg.Step)
	}
	if !cfg.JSON {
		t.Fatal("json flag not set")
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"-version"}, &out); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(out.String(), "l1sound ") {
		t.Fatalf("version output = %q", out.String())
	}
}

func TestRunRejectsZeroParams(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"-b", "0"}, &out); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if code := run([]string{"-s", "0"}, &out); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunBadFlag(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"-no-such-flag"}, &out); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func sampleResult() checkpoint.Result {
	return checkpoint.Result{
		ChainID:         1,
		Network:         "Ethereum Mainnet",
		Head:            19_000_000,
		Start:           18_999_873,
		BlocksRequested: 128,
		Step:            4,
		SampledBlocks:   32,
		ElapsedSec:      1.23,
		CheckpointHex:   "0x" + strings.Repeat("ab", 32),
	}
}

func TestRenderJSONContract(t *testing.T) {
	var out bytes.Buffer
	if err := renderJSON(&out, sampleResult()); err != nil {
		t.Fatalf("renderJSON: %v", err)
	}

	var doc struct {
		Mode           string                     `json:"mode"`
		GeneratedAtUtc string                     `json:"generatedAtUtc"`
		Data           map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if doc.Mode != "l1_soundness_checkpoint" {
		t.Fatalf("mode = %q", doc.Mode)
	}
	if _, err := time.Parse(time.RFC3339, doc.GeneratedAtUtc); err != nil {
		t.Fatalf("generatedAtUtc = %q: %v", doc.GeneratedAtUtc, err)
	}

	want := []string{
		"chainId", "network", "head", "start", "blocksRequested",
		"step", "sampledBlocks", "elapsedSec", "checkpointHex",
	}
	if len(doc.Data) != len(want) {
		t.Fatalf("data has %d fields, want %d: %v", len(doc.Data), len(want), doc.Data)
	}
	for _, field := range want {
		if _, ok := doc.Data[field]; !ok {
			t.Fatalf("data missing field %q", field)
		}
	}
}

func TestRenderTextCheckpointLabel(t *testing.T) {
	var out bytes.Buffer
	res := sampleResult()
	renderText(&out, res)

	text := out.String()
	label := "L1 Soundness Checkpoint (Keccak-256 hex):"
	idx := strings.Index(text, label)
	if idx < 0 {
		t.Fatalf("output missing checkpoint label:\n%s", text)
	}
	rest := text[idx+len(label):]
	if !strings.Contains(rest, res.CheckpointHex) {
		t.Fatalf("digest does not follow label:\n%s", text)
	}
	if !strings.Contains(text, "head=19000000 start=18999873") {
		t.Fatalf("window line missing:\n%s", text)
	}
}
