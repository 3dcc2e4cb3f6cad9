package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/sammcj/pdfsection/internal/config"
	"github.com/sammcj/pdfsection/internal/registry"

	// Import all engine packages to register them
	_ "github.com/sammcj/pdfsection/internal/imports"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// parseLogLevel parses the LOG_LEVEL environment variable and returns the
// appropriate logrus level. Defaults to WarnLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		return logrus.WarnLevel // Default to warn
	}

	// Normalise to lowercase for comparison
	logLevelStr = strings.ToLower(strings.TrimSpace(logLevelStr))

	switch logLevelStr {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		// Invalid value, default to warn
		return logrus.WarnLevel
	}
}

func main() {
	// Create context with signal handling so a Ctrl-C mid-extraction kills
	// any external engine process cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Initialise the engine registry
	registry.Init(logger)

	app := &cli.App{
		Name:      "pdfsection",
		Usage:     "Extract PDF pages on bookmark boundaries",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		ArgsUsage: "<input.pdf>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: proposed from the bookmark title)",
			},
			&cli.StringFlag{
				Name:    "engine",
				Aliases: []string{"E"},
				Usage:   "Extraction engine (pdfcpu, pdftk, qpdf, custom)",
			},
			&cli.StringFlag{
				Name:  "engine-command",
				Usage: "Command template for the custom engine, e.g. 'pdfjam {input} {start}-{end} -o {output}'",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "Bookmark source (pdfcpu or pdftk, default: auto)",
			},
			&cli.StringFlag{
				Name:    "end-page-mode",
				Aliases: []string{"p"},
				Usage:   "How a section ends: 'less' ends at the next same-or-shallower bookmark, 'exact' only at the next same-level bookmark",
			},
			&cli.IntFlag{
				Name:    "max-level",
				Aliases: []string{"m"},
				Usage:   "Offer only bookmarks down to this level (levels start from 1)",
			},
			&cli.IntFlag{
				Name:    "exact-level",
				Aliases: []string{"e"},
				Usage:   "Offer only bookmarks at exactly this level (levels start from 1)",
			},
			&cli.IntFlag{
				Name:    "all-levels",
				Aliases: []string{"a"},
				Usage:   "Extract every bookmark at this level, no interaction",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Output filename prefix for --all-levels",
			},
			&cli.IntFlag{
				Name:  "select",
				Value: -1,
				Usage: "Pick the bookmark at this index in the offered list, no interaction",
			},
			&cli.StringFlag{
				Name:  "query",
				Usage: "Pick the single bookmark a fuzzy query identifies, no interaction",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept the proposed output filename without prompting",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable coloured output",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "Print the resolved sections as JSON and exit",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(c *cli.Context) error {
					fmt.Printf("pdfsection version %s\n", Version)
					fmt.Printf("Commit: %s\n", Commit)
					fmt.Printf("Built: %s\n", BuildDate)
					return nil
				},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one input PDF (got %d arguments)", c.NArg())
			}

			cfg, err := config.Load(logger)
			if err != nil {
				return err
			}
			applyFlags(c, &cfg)

			return run(c.Context, logger, cfg, options{
				inputPath:  c.Args().First(),
				outputPath: c.String("output"),
				maxLevel:   c.Int("max-level"),
				exactLevel: c.Int("exact-level"),
				allLevels:  c.Int("all-levels"),
				prefix:     c.String("prefix"),
				selectIdx:  c.Int("select"),
				query:      c.String("query"),
				yes:        c.Bool("yes"),
				list:       c.Bool("list"),
			})
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed).Sprint("Error:"), err)
		os.Exit(1)
	}
}

// applyFlags lets command-line flags override file and environment
// configuration.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("engine") {
		cfg.Engine = c.String("engine")
	}
	if c.IsSet("engine-command") {
		cfg.EngineCommand = c.String("engine-command")
	}
	if c.IsSet("source") {
		cfg.Source = c.String("source")
	}
	if c.IsSet("end-page-mode") {
		cfg.EndPageMode = c.String("end-page-mode")
	}
	if c.Bool("no-color") {
		cfg.NoColor = true
	}
	if cfg.NoColor {
		color.NoColor = true
	}
}
