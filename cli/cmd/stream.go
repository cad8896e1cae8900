package cmd

import (
	"encoding/hex"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/hallmark/cli/render"
	"github.com/pithecene-io/hallmark/stream"
)

// StreamItem is one row of the stream command output.
type StreamItem struct {
	Index uint64 `json:"index" yaml:"index"`
	Item  string `json:"item" yaml:"item"`
}

// StreamCommand returns the stream command.
// It exposes the deterministic item stream directly, mainly for wiring up
// external evaluators and debugging agreements.
func StreamCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of items to emit",
			Value:   1,
		},
		&cli.Uint64Flag{
			Name:  "start",
			Usage: "First item index",
		},
	}
	flags = append(flags, AgreementFlags()...)
	flags = append(flags, RenderFlags()...)

	return &cli.Command{
		Name:   "stream",
		Usage:  "Emit deterministic stream items as hex",
		Flags:  flags,
		Action: streamAction,
	}
}

func streamAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for stream", exitUsage)
	}

	a, err := resolveAgreement(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if err := a.validate(); err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	count := c.Int("count")
	if count <= 0 {
		return cli.Exit("count must be positive", exitUsage)
	}
	start := c.Uint64("start")

	items := make([]StreamItem, 0, count)
	for i := 0; i < count; i++ {
		idx := start + uint64(i)
		item, err := stream.Item(a.seed, a.k, idx)
		if err != nil {
			return cli.Exit(err.Error(), exitUsage)
		}
		items = append(items, StreamItem{Index: idx, Item: hex.EncodeToString(item)})
	}

	return r.Render(items)
}
