package refvec

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"testing"

	"github.com/pithecene-io/hallmark/metrics"
	"github.com/pithecene-io/hallmark/stream"
	"github.com/pithecene-io/hallmark/types"
)

var (
	md5Eval = EvaluatorFunc(func(in []byte) ([]byte, error) {
		sum := md5.Sum(in)
		return sum[:], nil
	})
	sha256Eval = EvaluatorFunc(func(in []byte) ([]byte, error) {
		sum := sha256.Sum256(in)
		return sum[:], nil
	})
	sha512Eval = EvaluatorFunc(func(in []byte) ([]byte, error) {
		sum := sha512.Sum512(in)
		return sum[:], nil
	})
	identityEval = EvaluatorFunc(func(in []byte) ([]byte, error) {
		out := make([]byte, len(in))
		copy(out, in)
		return out, nil
	})
)

// Golden reference vectors for seed 0x00, k=32, n=8, generated from an
// independent reference implementation.
func TestGenerate_GoldenVectors(t *testing.T) {
	seed := []byte{0x00}
	cases := []struct {
		name string
		f    Evaluator
		hex  string
	}{
		{"md5", md5Eval, "be"},
		{"sha512", sha512Eval, "9b"},
		{"sha256", sha256Eval, "38"},
	}

	for _, tc := range cases {
		vec, err := Generate(context.Background(), seed, 32, tc.f, 8)
		if err != nil {
			t.Fatalf("%s: Generate failed: %v", tc.name, err)
		}
		if got := vec.Hex(); got != tc.hex {
			t.Errorf("%s: vector = %s (bits %s), want %s", tc.name, got, vec, tc.hex)
		}
	}
}

func TestGenerate_IdentityCyclesBitPosition(t *testing.T) {
	// With k=1 every output is a single byte, so the probed position is
	// i mod 8 and the vector walks each item's bits MSB-first.
	vec, err := Generate(context.Background(), []byte{0x00}, 1, identityEval, 12)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got := vec.Hex(); got != "3cf0" {
		t.Errorf("vector = %s (bits %s), want 3cf0", got, vec)
	}
}

func TestConfirm_SelfConfirmationAllTrue(t *testing.T) {
	ctx := context.Background()
	seed := []byte("self")

	for _, f := range []Evaluator{md5Eval, sha256Eval, identityEval} {
		ref, err := Generate(ctx, seed, 16, f, 64)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		result, err := Confirm(ctx, seed, 16, f, ref)
		if err != nil {
			t.Fatalf("Confirm failed: %v", err)
		}
		if len(result) != 64 {
			t.Fatalf("result length = %d, want 64", len(result))
		}
		for i, ok := range result {
			if !ok {
				t.Errorf("self-confirmation false at position %d", i)
			}
		}
	}
}

func TestConfirm_DistinguishesFunctions(t *testing.T) {
	// Confirm sha512 against md5's reference vector; the two must diverge.
	ctx := context.Background()
	seed := []byte{0x00}

	ref, err := Generate(ctx, seed, 32, md5Eval, 8)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	result, err := Confirm(ctx, seed, 32, sha512Eval, ref)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	// md5 be = 10111110, sha512 9b = 10011011: mismatch at 2, 5, 6, 7.
	mismatches := 0
	for _, ok := range result {
		if !ok {
			mismatches++
		}
	}
	if mismatches != 4 {
		t.Errorf("mismatches = %d, want 4 (result %v)", mismatches, result)
	}

	// Mismatches are data: Confirm must not have errored.
	if result[0] != true || result[2] != false {
		t.Errorf("unexpected per-position results: %v", result)
	}
}

func TestGenerate_InvalidArguments(t *testing.T) {
	ctx := context.Background()

	if _, err := Generate(ctx, nil, 4, md5Eval, 0); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("n=0 error = %v, want ErrInvalidCount", err)
	}
	if _, err := Generate(ctx, nil, 4, md5Eval, -3); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("n=-3 error = %v, want ErrInvalidCount", err)
	}
	if _, err := Generate(ctx, nil, 0, md5Eval, 8); !errors.Is(err, stream.ErrInvalidLength) {
		t.Errorf("k=0 error = %v, want stream.ErrInvalidLength", err)
	}
}

func TestConfirm_EmptyReferenceVector(t *testing.T) {
	var empty types.BitVector
	if _, err := Confirm(context.Background(), nil, 4, md5Eval, empty); !errors.Is(err, ErrEmptyVector) {
		t.Errorf("error = %v, want ErrEmptyVector", err)
	}
}

func TestGenerate_EvalErrorCarriesIndex(t *testing.T) {
	boom := errors.New("boom")
	failing := EvaluatorFunc(func(in []byte) ([]byte, error) {
		return nil, boom
	})

	_, err := Generate(context.Background(), []byte{0x01}, 4, failing, 8)
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error = %v, want *EvalError", err)
	}
	if evalErr.Index != 0 {
		t.Errorf("Index = %d, want 0", evalErr.Index)
	}
	if !errors.Is(err, boom) {
		t.Error("EvalError should unwrap to the underlying error")
	}
}

func TestGenerate_FailsFastAtFailingIndex(t *testing.T) {
	calls := 0
	failAtThree := EvaluatorFunc(func(in []byte) ([]byte, error) {
		calls++
		if calls == 4 {
			return nil, errors.New("transient")
		}
		return []byte{0xff}, nil
	})

	_, err := Generate(context.Background(), []byte{0x01}, 4, failAtThree, 100)
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error = %v, want *EvalError", err)
	}
	if evalErr.Index != 3 {
		t.Errorf("Index = %d, want 3", evalErr.Index)
	}
	if calls != 4 {
		t.Errorf("evaluator called %d times, want 4 (fail fast)", calls)
	}
}

func TestGenerate_DegenerateOutputError(t *testing.T) {
	empty := EvaluatorFunc(func(in []byte) ([]byte, error) {
		return []byte{}, nil
	})

	_, err := Generate(context.Background(), []byte{0x01}, 4, empty, 8)
	var degenErr *DegenerateOutputError
	if !errors.As(err, &degenErr) {
		t.Fatalf("error = %v, want *DegenerateOutputError", err)
	}
	if degenErr.Index != 0 {
		t.Errorf("Index = %d, want 0", degenErr.Index)
	}
}

func TestEngine_ParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	seed := []byte("parallel")

	sequential := NewEngine(Config{Workers: 1})
	parallel := NewEngine(Config{Workers: 8})

	want, err := sequential.Generate(ctx, seed, 32, sha256Eval, 256)
	if err != nil {
		t.Fatalf("sequential Generate failed: %v", err)
	}
	got, err := parallel.Generate(ctx, seed, 32, sha256Eval, 256)
	if err != nil {
		t.Fatalf("parallel Generate failed: %v", err)
	}
	if !got.Equal(want) {
		t.Error("parallel vector differs from sequential vector")
	}

	seqResult, err := sequential.Confirm(ctx, seed, 32, sha256Eval, want)
	if err != nil {
		t.Fatalf("sequential Confirm failed: %v", err)
	}
	parResult, err := parallel.Confirm(ctx, seed, 32, sha256Eval, want)
	if err != nil {
		t.Fatalf("parallel Confirm failed: %v", err)
	}
	for i := range seqResult {
		if seqResult[i] != parResult[i] {
			t.Fatalf("parallel confirm differs at position %d", i)
		}
	}
}

func TestEngine_ParallelPropagatesEvalError(t *testing.T) {
	failing := EvaluatorFunc(func(in []byte) ([]byte, error) {
		return nil, errors.New("always")
	})

	e := NewEngine(Config{Workers: 4})
	_, err := e.Generate(context.Background(), []byte{0x01}, 4, failing, 64)
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error = %v, want *EvalError", err)
	}
}

func TestGenerate_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, []byte{0x01}, 4, sha256Eval, 8)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestEngine_MetricsRecorded(t *testing.T) {
	c := metrics.NewCollector("sha256", "test")
	e := NewEngine(Config{Metrics: c})
	ctx := context.Background()
	seed := []byte("metrics")

	ref, err := e.Generate(ctx, seed, 8, sha256Eval, 10)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := e.Confirm(ctx, seed, 8, sha256Eval, ref); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	s := c.Snapshot()
	if s.Evaluations != 20 {
		t.Errorf("Evaluations = %d, want 20", s.Evaluations)
	}
	if s.BitsMatched != 10 || s.BitsMismatched != 0 {
		t.Errorf("bit counters = %d/%d, want 10/0", s.BitsMatched, s.BitsMismatched)
	}
}

func TestProbeBit_MatchesGenerate(t *testing.T) {
	ctx := context.Background()
	seed := []byte("probe")

	vec, err := Generate(ctx, seed, 16, md5Eval, 24)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i := 0; i < 24; i++ {
		bit, err := ProbeBit(ctx, seed, 16, md5Eval, uint64(i))
		if err != nil {
			t.Fatalf("ProbeBit(%d) failed: %v", i, err)
		}
		if bit != vec.Bit(i) {
			t.Errorf("ProbeBit(%d) = %v, vector bit = %v", i, bit, vec.Bit(i))
		}
	}
}
