package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/hallmark/cli/render"
	"github.com/pithecene-io/hallmark/cli/tui"
	"github.com/pithecene-io/hallmark/metrics"
	"github.com/pithecene-io/hallmark/refvec"
	"github.com/pithecene-io/hallmark/types"
)

// ConfirmResponse is the response for the confirm command.
type ConfirmResponse struct {
	Seed       string `json:"seed" yaml:"seed"`
	ItemLength int    `json:"item_length" yaml:"item_length"`
	Bits       int    `json:"bits" yaml:"bits"`
	Evaluator  string `json:"evaluator" yaml:"evaluator"`
	Confirmed  bool   `json:"confirmed" yaml:"confirmed"`
	Mismatches []int  `json:"mismatches" yaml:"mismatches"`
}

// ConfirmCommand returns the confirm command.
// It re-derives a candidate's vector and compares it position by position
// against a reference taken from --ref or a stored fingerprint record.
func ConfirmCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "ref",
			Usage: "Reference vector as packed hex (requires --bits)",
		},
		&cli.IntFlag{
			Name:    "bits",
			Aliases: []string{"n"},
			Usage:   "Reference vector length in bits (with --ref)",
		},
		&cli.StringFlag{
			Name:  "in",
			Usage: "Record name to load the fingerprint from the store",
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
		Name:   "confirm",
		Usage:  "Confirm a candidate function against a reference vector",
		Flags:  flags,
		Action: confirmAction,
	}
}

func confirmAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	a, err := resolveAgreement(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	ref, recorded, err := resolveReference(c, a)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	// Validated only now: a stored record supplies the agreement fields the
	// caller did not give explicitly.
	if err := a.validate(); err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	// A record's named evaluator is the default candidate under test.
	if recorded != "" && !c.IsSet("evaluator") && !c.IsSet("exec") {
		if err := c.Set("evaluator", recorded); err != nil {
			return err
		}
	}
	choice, err := resolveEvaluator(c, a)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	meta := types.NewStreamMeta(a.seed, a.k, choice.name)
	collector := metrics.NewCollector(choice.name, meta.SeedDigest)
	engine := refvec.NewEngine(refvec.Config{
		Workers: a.workers,
		Metrics: collector,
		Logger:  traversalLogger(c, meta),
	})

	result, err := engine.Confirm(c.Context, a.seed, a.k, choice.fn, ref)
	if err != nil {
		return exitForEngineError(err)
	}

	if c.Bool("tui") {
		return tui.RunConfirmTUI(tui.ConfirmView{
			Evaluator:  choice.name,
			SeedHex:    a.seedHex,
			ItemLength: a.k,
			Positions:  result,
		})
	}

	resp := ConfirmResponse{
		Seed:       a.seedHex,
		ItemLength: a.k,
		Bits:       len(result),
		Evaluator:  choice.name,
		Confirmed:  true,
		Mismatches: []int{},
	}
	for i, ok := range result {
		if !ok {
			resp.Confirmed = false
			resp.Mismatches = append(resp.Mismatches, i)
		}
	}

	if err := r.Render(resp); err != nil {
		return err
	}
	if !resp.Confirmed {
		return cli.Exit("", exitMismatch)
	}
	return nil
}

// resolveReference loads the reference vector from --ref or a stored
// record. A record also supplies the recorded evaluator name, and its
// agreement overrides flag-less defaults.
func resolveReference(c *cli.Context, a *agreement) (types.BitVector, string, error) {
	refHex := c.String("ref")
	name := c.String("in")

	switch {
	case refHex != "" && name != "":
		return types.BitVector{}, "", fmt.Errorf("--ref and --in are mutually exclusive")

	case refHex != "":
		bits := c.Int("bits")
		if bits <= 0 {
			return types.BitVector{}, "", fmt.Errorf("--ref requires --bits (the vector carries no length)")
		}
		vec, err := types.ParseHex(refHex, bits)
		if err != nil {
			return types.BitVector{}, "", err
		}
		return vec, "", nil

	case name != "":
		st, err := resolveStore(c, a, nil)
		if err != nil {
			return types.BitVector{}, "", err
		}
		if st == nil {
			return types.BitVector{}, "", fmt.Errorf("--in requires a store path (--store-path or config store.path)")
		}
		fp, err := st.Load(c.Context, name)
		if err != nil {
			return types.BitVector{}, "", err
		}
		vec, err := fp.BitVector()
		if err != nil {
			return types.BitVector{}, "", err
		}
		// The record's agreement wins unless flags explicitly override.
		if !c.IsSet("seed") {
			a.seed = fp.Seed
			a.seedHex = fmt.Sprintf("%x", fp.Seed)
		}
		if !c.IsSet("item-length") {
			a.k = fp.ItemLength
		}
		return vec, fp.Evaluator, nil

	default:
		return types.BitVector{}, "", fmt.Errorf("a reference is required (--ref or --in)")
	}
}
