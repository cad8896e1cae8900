package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/hallmark/cli/render"
	"github.com/pithecene-io/hallmark/log"
	"github.com/pithecene-io/hallmark/metrics"
	"github.com/pithecene-io/hallmark/refvec"
	"github.com/pithecene-io/hallmark/stream"
	"github.com/pithecene-io/hallmark/types"
)

// GenerateResponse is the response for the generate command.
type GenerateResponse struct {
	Seed        string `json:"seed" yaml:"seed"`
	ItemLength  int    `json:"item_length" yaml:"item_length"`
	Bits        int    `json:"bits" yaml:"bits"`
	Evaluator   string `json:"evaluator" yaml:"evaluator"`
	Vector      string `json:"vector" yaml:"vector"`
	Evaluations int64  `json:"evaluations" yaml:"evaluations"`
	Stored      string `json:"stored,omitempty" yaml:"stored,omitempty"`
}

// GenerateCommand returns the generate command.
// It builds a candidate's reference vector and optionally persists it as a
// fingerprint record.
func GenerateCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "bits",
			Aliases: []string{"n"},
			Usage:   "Reference vector length in bits",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Record name to store the fingerprint under",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log traversal progress to stderr",
		},
	}
	flags = append(flags, AgreementFlags()...)
	flags = append(flags, EvaluatorFlags()...)
	flags = append(flags, StoreFlags()...)
	flags = append(flags, RenderFlags()...)

	return &cli.Command{
		Name:   "generate",
		Usage:  "Generate a candidate function's reference vector",
		Flags:  flags,
		Action: generateAction,
	}
}

func generateAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for generate", exitUsage)
	}

	a, err := resolveAgreement(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if err := a.validate(); err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	choice, err := resolveEvaluator(c, a)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	bits := a.cfg.Bits
	if c.IsSet("bits") {
		bits = c.Int("bits")
	}

	meta := types.NewStreamMeta(a.seed, a.k, choice.name)
	collector := metrics.NewCollector(choice.name, meta.SeedDigest)
	engine := refvec.NewEngine(refvec.Config{
		Workers: a.workers,
		Metrics: collector,
		Logger:  traversalLogger(c, meta),
	})

	vec, err := engine.Generate(c.Context, a.seed, a.k, choice.fn, bits)
	if err != nil {
		return exitForEngineError(err)
	}

	resp := GenerateResponse{
		Seed:        a.seedHex,
		ItemLength:  a.k,
		Bits:        vec.Len(),
		Evaluator:   choice.name,
		Vector:      vec.Hex(),
		Evaluations: collector.Snapshot().Evaluations,
	}

	if name := c.String("out"); name != "" {
		st, err := resolveStore(c, a, collector)
		if err != nil {
			return cli.Exit(err.Error(), exitUsage)
		}
		if st == nil {
			return cli.Exit("--out requires a store path (--store-path or config store.path)", exitUsage)
		}
		fp := types.NewFingerprint(a.seed, a.k, choice.name, vec)
		if err := st.Save(c.Context, name, fp); err != nil {
			return fmt.Errorf("store fingerprint: %w", err)
		}
		resp.Stored = name
	}

	return r.Render(resp)
}

// traversalLogger returns an engine logger when --verbose is set.
func traversalLogger(c *cli.Context, meta *types.StreamMeta) *log.Logger {
	if !c.Bool("verbose") {
		return nil
	}
	return log.NewLogger(meta)
}

// exitForEngineError maps engine failures to exit codes. Candidate failures
// and degenerate outputs are evaluation errors; argument problems are usage.
func exitForEngineError(err error) error {
	var evalErr *refvec.EvalError
	var degenErr *refvec.DegenerateOutputError
	switch {
	case errors.As(err, &evalErr), errors.As(err, &degenErr):
		return cli.Exit(err.Error(), exitEvalError)
	case errors.Is(err, refvec.ErrInvalidCount),
		errors.Is(err, refvec.ErrEmptyVector),
		errors.Is(err, stream.ErrInvalidLength):
		return cli.Exit(err.Error(), exitUsage)
	default:
		return err
	}
}
