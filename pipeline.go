package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/sammcj/pdfsection/internal/config"
	"github.com/sammcj/pdfsection/internal/engines/shellcmd"
	"github.com/sammcj/pdfsection/internal/extract"
	"github.com/sammcj/pdfsection/internal/history"
	"github.com/sammcj/pdfsection/internal/outline"
	"github.com/sammcj/pdfsection/internal/registry"
	"github.com/sammcj/pdfsection/internal/selector"
	"github.com/sammcj/pdfsection/internal/slug"
	"github.com/sammcj/pdfsection/internal/source"
)

// options carries the per-invocation flags that are not part of the
// persistent configuration.
type options struct {
	inputPath  string
	outputPath string
	maxLevel   int
	exactLevel int
	allLevels  int
	prefix     string
	selectIdx  int
	query      string
	yes        bool
	list       bool
}

// run is the pipeline: load outline, resolve sections, select, extract.
func run(ctx context.Context, logger *logrus.Logger, cfg config.Config, opts options) error {
	if err := validateLevelFlags(opts); err != nil {
		return err
	}

	kind, err := source.ParseKind(cfg.Source)
	if err != nil {
		return err
	}
	mode, err := outline.ParseEndMode(cfg.EndPageMode)
	if err != nil {
		return err
	}

	o, err := source.Load(ctx, logger, opts.inputPath, kind)
	if err != nil {
		return err
	}

	sections, err := o.Sections(mode)
	if err != nil {
		return err
	}
	base := o.BaseLevel()

	if opts.list {
		data, err := json.MarshalIndent(sections, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal sections: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	engine, err := resolveEngine(cfg)
	if err != nil {
		return err
	}
	logger.WithField("engine", engine.Name()).Debug("Extraction engine resolved")

	if opts.allLevels > 0 {
		return runBatch(ctx, logger, cfg, opts, engine, sections, base)
	}
	return runSingle(ctx, logger, cfg, opts, engine, sections, base)
}

// validateLevelFlags enforces the mutually exclusive level filters.
func validateLevelFlags(opts options) error {
	set := 0
	for _, v := range []int{opts.maxLevel, opts.exactLevel, opts.allLevels} {
		if v > 0 {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("--max-level, --exact-level and --all-levels are mutually exclusive")
	}
	if opts.prefix != "" && opts.allLevels <= 0 {
		return fmt.Errorf("--prefix only applies with --all-levels")
	}
	return nil
}

// resolveEngine registers the custom engine when a command template is
// configured, then resolves the requested engine by name.
func resolveEngine(cfg config.Config) (extract.Engine, error) {
	name := cfg.Engine
	if cfg.EngineCommand != "" {
		custom, err := shellcmd.New(cfg.EngineCommand)
		if err != nil {
			return nil, err
		}
		registry.Register(custom)
		if name == "" {
			name = custom.Name()
		}
	} else if name == "custom" {
		return nil, fmt.Errorf("the custom engine needs --engine-command")
	}
	return registry.Resolve(name)
}

// runSingle extracts one interactively or non-interactively selected
// section.
func runSingle(ctx context.Context, logger *logrus.Logger, cfg config.Config, opts options, engine extract.Engine, sections []outline.Section, base int) error {
	offered := sections
	if opts.maxLevel > 0 {
		offered = outline.FilterMaxLevel(offered, base, opts.maxLevel)
	}
	if opts.exactLevel > 0 {
		offered = outline.FilterExactLevel(offered, base, opts.exactLevel)
	}
	if len(offered) == 0 {
		return fmt.Errorf("no bookmarks left at the requested level")
	}

	stdin := bufio.NewReader(os.Stdin)
	interactive := opts.selectIdx < 0 && opts.query == ""

	var picked outline.Section
	var err error
	switch {
	case opts.selectIdx >= 0:
		picked, err = selector.ByIndex(offered, opts.selectIdx)
	case opts.query != "":
		picked, err = selector.ByQuery(offered, base, opts.query)
	default:
		p := &selector.Interactive{In: stdin, Out: os.Stdout, Colour: !cfg.NoColor && !color.NoColor}
		picked, err = p.Pick(offered, base)
	}
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"title": picked.Title,
		"pages": fmt.Sprintf("%d-%d", picked.Pages.Start, picked.Pages.End),
	}).Info("Bookmark selected")

	outputPath := opts.outputPath
	if outputPath == "" {
		proposal := filepath.Join(outputDir(logger, cfg), slug.FromTitle(picked.Title))
		if opts.yes || !interactive {
			outputPath = proposal
		} else {
			outputPath, err = promptOutputPath(stdin, proposal)
			if err != nil {
				return err
			}
		}
	}

	if err := extractSection(ctx, logger, engine, opts.inputPath, outputPath, picked); err != nil {
		return err
	}

	rememberDir(logger, filepath.Dir(outputPath))
	return nil
}

// runBatch extracts every section at the requested level, numbering the
// output files.
func runBatch(ctx context.Context, logger *logrus.Logger, cfg config.Config, opts options, engine extract.Engine, sections []outline.Section, base int) error {
	targets := outline.FilterExactLevel(sections, base, opts.allLevels)
	if len(targets) == 0 {
		return fmt.Errorf("no bookmarks at level %d", opts.allLevels)
	}

	dir := outputDir(logger, cfg)
	for i, s := range targets {
		name := fmt.Sprintf("%s%02d_%s", opts.prefix, i, slug.FromTitle(s.Title))
		outputPath := filepath.Join(dir, name)
		if err := extractSection(ctx, logger, engine, opts.inputPath, outputPath, s); err != nil {
			return fmt.Errorf("failed on %q: %w", s.Title, err)
		}
	}

	rememberDir(logger, dir)
	return nil
}

// extractSection runs the engine for one section and reports the result.
func extractSection(ctx context.Context, logger *logrus.Logger, engine extract.Engine, inputPath, outputPath string, s outline.Section) error {
	req := extract.Request{
		InputPath:  inputPath,
		OutputPath: outputPath,
		StartPage:  s.Pages.Start,
		EndPage:    s.Pages.End,
	}
	if err := engine.Extract(ctx, logger, req); err != nil {
		return err
	}

	pages := req.EndPage - req.StartPage + 1
	fmt.Printf("%s %s (pages %s, %d page%s)\n",
		color.New(color.FgGreen).Sprint("Saved:"), outputPath, req.PageRange(), pages, plural(pages))
	return nil
}

// promptOutputPath offers the proposal and accepts a replacement. An empty
// reply (or EOF) takes the proposal.
func promptOutputPath(in *bufio.Reader, proposal string) (string, error) {
	fmt.Printf("Output file [%s]: ", proposal)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read output path: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return proposal, nil
	}
	return line, nil
}

// outputDir resolves where proposed outputs land: configured directory,
// then the last used one, then the working directory.
func outputDir(logger *logrus.Logger, cfg config.Config) string {
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	if last := history.Load(logger).LastOutputDir; last != "" {
		return last
	}
	return "."
}

// rememberDir stores the output directory for the next run.
func rememberDir(logger *logrus.Logger, dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return
	}
	history.Save(logger, history.State{LastOutputDir: abs})
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
