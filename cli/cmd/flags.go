// Package cmd provides CLI commands for the hallmark binary.
package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/hallmark/cli/config"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitMismatch  = 1
	exitEvalError = 2
	exitUsage     = 3
)

// Shared flags for output rendering.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	// Only valid for the confirm command.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (confirm only)",
	}

	// ConfigFlag points at a hallmark.yaml defaults file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to hallmark.yaml defaults file",
	}
)

// RenderFlags returns the shared output flags for all commands.
// Includes --tui so that unsupported commands can provide explicit error
// messages instead of generic "flag not defined" errors.
func RenderFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// AgreementFlags returns the flags that define the stream agreement shared
// by generate, confirm, stream and distinguish.
func AgreementFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		&cli.StringFlag{
			Name:  "seed",
			Usage: "Stream seed as hex (empty selects the fixed empty-seed stream)",
		},
		&cli.IntFlag{
			Name:    "item-length",
			Aliases: []string{"k"},
			Usage:   "Stream item length in bytes",
		},
	}
}

// agreement holds the resolved stream agreement for a command invocation.
// CLI flags override config file values.
type agreement struct {
	seed    []byte
	seedHex string
	k       int
	workers int
	cfg     *config.Config
}

// resolveAgreement merges the config file (if any) with command flags.
// The result may still be incomplete; callers check validate once every
// source (for confirm, including a stored record) has contributed.
func resolveAgreement(c *cli.Context) (*agreement, error) {
	cfg := &config.Config{}
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	seedHex := cfg.Seed
	seed, err := cfg.SeedBytes()
	if c.IsSet("seed") {
		seedHex = c.String("seed")
		seed, err = parseSeed(seedHex)
	}
	if err != nil {
		return nil, err
	}

	k := cfg.ItemLength
	if c.IsSet("item-length") {
		k = c.Int("item-length")
	}

	workers := cfg.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}

	return &agreement{
		seed:    seed,
		seedHex: seedHex,
		k:       k,
		workers: workers,
		cfg:     cfg,
	}, nil
}

// validate checks that the agreement is complete enough to address the
// stream.
func (a *agreement) validate() error {
	if a.k <= 0 {
		return fmt.Errorf("item length must be positive (use --item-length or config item_length)")
	}
	return nil
}

// parseSeed decodes a hex seed. Empty input is the empty seed, which is a
// valid agreement defining a fixed stream.
func parseSeed(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	seed, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid seed hex %q: %w", s, err)
	}
	return seed, nil
}
