package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/hallmark/digest"
	"github.com/pithecene-io/hallmark/metrics"
	"github.com/pithecene-io/hallmark/refvec"
	"github.com/pithecene-io/hallmark/store"
)

// EvaluatorFlags returns the flags selecting the candidate function.
func EvaluatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "evaluator",
			Aliases: []string{"e"},
			Usage:   "Built-in evaluator name (see 'hallmark evaluators')",
		},
		&cli.StringFlag{
			Name:  "exec",
			Usage: "External evaluator command (item on stdin, output on stdout)",
		},
		&cli.StringSliceFlag{
			Name:  "exec-arg",
			Usage: "Argument for the --exec command (repeatable)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Concurrent evaluation workers (default sequential)",
		},
	}
}

// StoreFlags returns the fingerprint store flags.
func StoreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "store-backend",
			Usage: "Fingerprint store backend: fs or s3",
		},
		&cli.StringFlag{
			Name:  "store-path",
			Usage: "Store path (fs: directory, s3: bucket/prefix)",
		},
		&cli.StringFlag{
			Name:  "store-region",
			Usage: "AWS region for S3 backend (optional, uses default chain)",
		},
		&cli.StringFlag{
			Name:  "store-endpoint",
			Usage: "Custom S3 endpoint URL (R2, MinIO)",
		},
		&cli.BoolFlag{
			Name:  "store-s3-path-style",
			Usage: "Force S3 path-style addressing",
		},
	}
}

// evaluatorChoice holds the resolved candidate function.
type evaluatorChoice struct {
	name string
	fn   refvec.Evaluator
}

// resolveEvaluator picks the candidate function from --evaluator or --exec.
// The flags are mutually exclusive; when neither is given the config file's
// evaluator serves as the default.
func resolveEvaluator(c *cli.Context, a *agreement) (*evaluatorChoice, error) {
	name := c.String("evaluator")
	command := c.String("exec")
	if name == "" && command == "" {
		name = a.cfg.Evaluator
	}

	switch {
	case name != "" && command != "":
		return nil, fmt.Errorf("--evaluator and --exec are mutually exclusive")
	case name != "":
		f, err := digest.Lookup(name)
		if err != nil {
			return nil, err
		}
		return &evaluatorChoice{name: f.Name(), fn: f}, nil
	case command != "":
		e := digest.NewExecEvaluator(c.Context, command, c.StringSlice("exec-arg")...)
		return &evaluatorChoice{name: e.Name(), fn: e}, nil
	default:
		return nil, fmt.Errorf("an evaluator is required (--evaluator, --exec or config evaluator)")
	}
}

// resolveStore builds the fingerprint store from flags and config defaults.
// Returns nil when no store path is configured.
func resolveStore(c *cli.Context, a *agreement, collector *metrics.Collector) (*store.Store, error) {
	sc := a.cfg.Store
	if c.IsSet("store-backend") {
		sc.Backend = c.String("store-backend")
	}
	if c.IsSet("store-path") {
		sc.Path = c.String("store-path")
	}
	if c.IsSet("store-region") {
		sc.Region = c.String("store-region")
	}
	if c.IsSet("store-endpoint") {
		sc.Endpoint = c.String("store-endpoint")
	}
	if c.IsSet("store-s3-path-style") {
		sc.S3PathStyle = c.Bool("store-s3-path-style")
	}

	if sc.Path == "" {
		return nil, nil
	}

	var backend store.Backend
	switch sc.Backend {
	case "fs", "":
		fs, err := store.NewFSBackend(sc.Path)
		if err != nil {
			return nil, err
		}
		backend = fs
	case "s3":
		bucket, prefix := store.ParseS3Path(sc.Path)
		s3b, err := store.NewS3Backend(c.Context, store.S3Config{
			Bucket:       bucket,
			Prefix:       prefix,
			Region:       sc.Region,
			Endpoint:     sc.Endpoint,
			UsePathStyle: sc.S3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		backend = s3b
	default:
		return nil, fmt.Errorf("invalid store backend: %s (must be fs or s3)", sc.Backend)
	}

	return store.New(backend, collector), nil
}
