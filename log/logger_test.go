package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pithecene-io/hallmark/types"
)

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	meta := types.NewStreamMeta([]byte{0x00}, 32, "sha256")
	logger := NewLogger(meta).WithOutput(&buf)

	logger.Info("traversal started", map[string]any{"bits": 8})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["seed_digest"] != meta.SeedDigest {
		t.Errorf("seed_digest = %v, want %v", entry["seed_digest"], meta.SeedDigest)
	}
	if entry["item_length"] != float64(32) {
		t.Errorf("item_length = %v, want 32", entry["item_length"])
	}
	if entry["evaluator"] != "sha256" {
		t.Errorf("evaluator = %v, want sha256", entry["evaluator"])
	}
	if entry["message"] != "traversal started" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestLogger_RawSeedNeverLogged(t *testing.T) {
	var buf bytes.Buffer
	seed := []byte("super-secret-seed")
	meta := types.NewStreamMeta(seed, 16, "")
	logger := NewLogger(meta).WithOutput(&buf)

	logger.Warn("check", nil)

	if strings.Contains(buf.String(), "super-secret-seed") {
		t.Error("raw seed leaked into log output")
	}
	if len(meta.SeedDigest) != 8 {
		t.Errorf("seed digest length = %d, want 8 hex chars", len(meta.SeedDigest))
	}
}

func TestLogger_EvaluatorOmittedWhenUnknown(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(types.NewStreamMeta(nil, 8, "")).WithOutput(&buf)

	logger.Debug("probe", nil)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, present := entry["evaluator"]; present {
		t.Error("evaluator field should be omitted when unknown")
	}
}

func TestSugaredLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(types.NewStreamMeta(nil, 8, "md5")).WithOutput(&buf)

	logger.Sugar().Infof("probed %d bits", 12)

	if !strings.Contains(buf.String(), "probed 12 bits") {
		t.Errorf("missing formatted message: %s", buf.String())
	}
}
