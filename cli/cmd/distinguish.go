package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/hallmark/cli/render"
	"github.com/pithecene-io/hallmark/digest"
	"github.com/pithecene-io/hallmark/distinguish"
	"github.com/pithecene-io/hallmark/types"
)

// DistinguishResponse is the response for the distinguish command.
type DistinguishResponse struct {
	Seed       string            `json:"seed" yaml:"seed"`
	ItemLength int               `json:"item_length" yaml:"item_length"`
	MinLength  int               `json:"min_length" yaml:"min_length"`
	Vectors    map[string]string `json:"vectors" yaml:"vectors"`
}

// DistinguishCommand returns the distinguish command.
// Arguments are built-in evaluator names; the command reports the smallest
// vector length at which all of them produce distinct vectors.
func DistinguishCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:  "ceiling",
			Usage: "Largest vector length to try",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log search progress to stderr",
		},
	}
	flags = append(flags, AgreementFlags()...)
	flags = append(flags, RenderFlags()...)

	return &cli.Command{
		Name:      "distinguish",
		Usage:     "Find the minimum vector length separating evaluators",
		ArgsUsage: "EVALUATOR [EVALUATOR...]",
		Flags:     flags,
		Action:    distinguishAction,
	}
}

func distinguishAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for distinguish", exitUsage)
	}

	a, err := resolveAgreement(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if err := a.validate(); err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	names := c.Args().Slice()
	if len(names) == 0 {
		return cli.Exit("at least one evaluator name is required", exitUsage)
	}

	candidates := make([]distinguish.Candidate, 0, len(names))
	for _, name := range names {
		f, err := digest.Lookup(name)
		if err != nil {
			return cli.Exit(err.Error(), exitUsage)
		}
		candidates = append(candidates, distinguish.Candidate{Name: f.Name(), Fn: f})
	}

	ceiling := a.cfg.Ceiling
	if c.IsSet("ceiling") {
		ceiling = c.Int("ceiling")
	}

	cfg := distinguish.Config{
		Seed:       a.seed,
		ItemLength: a.k,
		Ceiling:    ceiling,
		Logger:     traversalLogger(c, types.NewStreamMeta(a.seed, a.k, "")),
	}
	report, err := distinguish.Run(c.Context, cfg, candidates)
	if err != nil {
		switch {
		case errors.Is(err, distinguish.ErrNotDistinguishable):
			return cli.Exit(err.Error(), exitMismatch)
		case errors.Is(err, distinguish.ErrDuplicateName), errors.Is(err, distinguish.ErrNoCandidates):
			return cli.Exit(err.Error(), exitUsage)
		default:
			return exitForEngineError(fmt.Errorf("distinguish: %w", err))
		}
	}

	resp := DistinguishResponse{
		Seed:       a.seedHex,
		ItemLength: a.k,
		MinLength:  report.MinLength,
		Vectors:    make(map[string]string, len(report.Vectors)),
	}
	for name, vec := range report.Vectors {
		resp.Vectors[name] = vec.Hex()
	}

	return r.Render(resp)
}
