// Command docsimp strips formatting markup from DOCX files in cumulative
// levels, producing smaller documents for translation workflows.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/transkit/docsimp/core/rules"
	"github.com/transkit/docsimp/core/simplify"
	"github.com/transkit/docsimp/internal/fileutil"
	"github.com/transkit/docsimp/internal/logging"
	"github.com/transkit/docsimp/internal/validation"
)

const version = "1.0.0"

// CLI defines the command-line interface for docsimp.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" env:"DOCSIMP_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" env:"DOCSIMP_LOG_FORMAT"`

	Simplify SimplifyCmd `cmd:"" help:"Simplify a single DOCX file"`
	Batch    BatchCmd    `cmd:"" help:"Simplify multiple DOCX files concurrently"`
	Levels   LevelsCmd   `cmd:"" help:"List simplification levels and what each removes"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// SimplifyCmd simplifies one document at a chosen level.
type SimplifyCmd struct {
	Path     string `arg:"" help:"Path to DOCX file" type:"existingfile"`
	Level    int    `short:"l" default:"1" help:"Simplification level (0-8)"`
	Out      string `short:"o" help:"Output path (default: <name>_simplified_level<N>.docx)" type:"path"`
	Progress bool   `help:"Print progress while processing"`
	Stats    bool   `help:"Print timing statistics after the run"`
}

func (c *SimplifyCmd) Run() error {
	if err := validation.ValidateInputFile(c.Path); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	if !validation.HasDocxExtension(c.Path) {
		logging.Warn("input does not have a .docx extension", "path", c.Path)
	}

	outputPath := c.Out
	if outputPath == "" {
		outputPath = simplify.DefaultOutputPath(c.Path, c.Level)
	}
	if err := validation.ValidateOutputPath(c.Path, outputPath); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := simplify.Options{Level: c.Level, OutputPath: outputPath}
	if c.Progress {
		opts.Progress = func(message string, percent float64) {
			fmt.Printf("[%3.0f%%] %s\n", percent, message)
		}
	}

	outPath, stats, err := simplify.Simplify(ctx, c.Path, opts)
	if err != nil {
		return fmt.Errorf("simplification failed: %w", err)
	}

	fmt.Printf("Simplified: %s\n", c.Path)
	fmt.Printf("  Output: %s\n", outPath)
	fmt.Printf("  Level: %d\n", stats.Level)
	fmt.Printf("  Size: %s -> %s (%.1f%% smaller)\n",
		fileutil.FormatSize(stats.BytesIn), fileutil.FormatSize(stats.BytesOut), stats.Reduction()*100)
	fmt.Printf("  Elements removed: %d, modified: %d\n", stats.ElementsRemoved, stats.ElementsModified)
	if stats.RelationshipsPruned > 0 {
		fmt.Printf("  Relationships pruned: %d\n", stats.RelationshipsPruned)
	}

	if c.Stats {
		fmt.Printf("  Run ID: %s\n", stats.RunID)
		fmt.Printf("  Parts processed: %d\n", stats.PartsProcessed)
		fmt.Printf("  Parse: %s, transform: %s, write: %s (total %s)\n",
			stats.ParseTime, stats.TransformTime, stats.WriteTime, stats.Elapsed)
		fmt.Printf("  Input BLAKE3: %s\n", stats.InputDigest)
		fmt.Printf("  Output BLAKE3: %s\n", stats.OutputDigest)
	}
	return nil
}

// BatchCmd simplifies several documents, each in its own worker.
type BatchCmd struct {
	Paths []string `arg:"" help:"DOCX files to simplify" type:"existingfile"`
	Level int      `short:"l" default:"1" help:"Simplification level (0-8)"`
	Jobs  int      `short:"j" default:"0" help:"Concurrent files (default: number of CPUs)"`
}

func (c *BatchCmd) Run() error {
	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		mu     sync.Mutex
		failed int
		wg     sync.WaitGroup
		sem    = make(chan struct{}, jobs)
	)
	for _, path := range c.Paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outPath, stats, err := simplify.Simplify(ctx, path, simplify.Options{Level: c.Level})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
				return
			}
			fmt.Printf("OK   %s -> %s (%s -> %s)\n", path, outPath,
				fileutil.FormatSize(stats.BytesIn), fileutil.FormatSize(stats.BytesOut))
		}(path)
	}
	wg.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Paths))
	}
	fmt.Printf("Simplified %d files at level %d\n", len(c.Paths), c.Level)
	return nil
}

// LevelsCmd prints the level table.
type LevelsCmd struct{}

func (c *LevelsCmd) Run() error {
	fmt.Println("Simplification levels (each level includes all lower levels):")
	for level, desc := range rules.DescribeAll() {
		fmt.Printf("  %d: %s\n", level, desc)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("docsimp version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("docsimp"),
		kong.Description("Level-based DOCX formatting simplifier for translation workflows"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), format)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
