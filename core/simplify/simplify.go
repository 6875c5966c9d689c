// Package simplify orchestrates one document through the simplification
// pipeline: open the package, resolve the rule set for the requested
// level, transform each target part, prune invalidated relationships, and
// write the output archive.
//
// Runs are independent: a Simplifier may process many files concurrently
// from separate goroutines, and within one run the target parts are
// transformed in parallel with a fork-join barrier before pruning.
package simplify

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/google/uuid"

	"github.com/transkit/docsimp/core/errors"
	"github.com/transkit/docsimp/core/opc"
	"github.com/transkit/docsimp/core/rules"
	"github.com/transkit/docsimp/core/xmltree"
	"github.com/transkit/docsimp/internal/logging"
)

// ProgressFunc receives progress updates during a run. percent is 0-100
// and non-decreasing; the final call on success reports 100. It is never
// invoked for a run that fails before part processing begins.
type ProgressFunc func(message string, percent float64)

// Options configures one simplification run.
type Options struct {
	// Level selects the cumulative rule set, 0-8.
	Level int
	// OutputPath overrides the default output location. Empty derives
	// "<stem>_simplified_level<N><ext>" next to the input.
	OutputPath string
	// Progress receives progress events; nil is a no-op.
	Progress ProgressFunc
	// Workers bounds parallel part transformation; <=0 uses GOMAXPROCS.
	Workers int
}

// Simplifier runs documents through the pipeline and retains the stats of
// its most recent run.
type Simplifier struct {
	mu   sync.Mutex
	last Stats
}

// New returns a Simplifier.
func New() *Simplifier {
	return &Simplifier{}
}

// LastRunStats returns the performance record of the most recent completed
// run, or a zero Stats when none has completed.
func (s *Simplifier) LastRunStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// DefaultOutputPath derives the conventional output name for an input and
// level: report.docx at level 3 becomes report_simplified_level3.docx.
func DefaultOutputPath(inputPath string, level int) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return fmt.Sprintf("%s_simplified_level%d%s", stem, level, ext)
}

// Simplify runs one document through the pipeline using a throwaway
// Simplifier. Callers wanting LastRunStats should hold their own.
func Simplify(ctx context.Context, inputPath string, opts Options) (string, Stats, error) {
	return New().Simplify(ctx, inputPath, opts)
}

var commentRefPattern = xpath.MustCompile(`//w:commentReference`)

// partOutcome is what one part worker hands back across the join barrier.
type partOutcome struct {
	part      *opc.Part
	relIDs    []string
	result    rules.Result
	parse     time.Duration
	transform time.Duration
	err       error
}

// Simplify processes inputPath at the configured level and returns the
// output path and run stats. On any error the input is untouched and no
// output file exists at the destination.
func (s *Simplifier) Simplify(ctx context.Context, inputPath string, opts Options) (string, Stats, error) {
	start := time.Now()
	stats := Stats{RunID: uuid.New().String(), Level: opts.Level}

	// Configuration is validated before the package is opened.
	ruleset, err := rules.Resolve(opts.Level)
	if err != nil {
		return "", stats, err
	}
	stats.RulesResolved = len(ruleset)

	report := opts.Progress
	if report == nil {
		report = func(string, float64) {}
	}

	pkg, err := opc.Open(inputPath)
	if err != nil {
		return "", stats, err
	}
	stats.BytesIn = pkg.InputSize
	stats.InputDigest = pkg.InputDigest

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = DefaultOutputPath(inputPath, opts.Level)
	}

	logging.RunStarted(stats.RunID, inputPath, opts.Level)
	report("Starting simplification", 0)

	targets := pkg.TargetParts()
	delta := opc.NewDelta()

	outcomes, err := s.transformParts(ctx, targets, ruleset, opts.Workers, report)
	for _, out := range outcomes {
		stats.PartsProcessed++
		stats.RulesMatched += out.result.RulesMatched
		stats.ElementsRemoved += out.result.ElementsRemoved
		stats.ElementsModified += out.result.ElementsModified
		stats.ParseTime += out.parse
		stats.TransformTime += out.transform
		for _, id := range out.relIDs {
			delta.Mark(out.part.Name, id)
		}
	}
	if err != nil {
		logging.RunFailed(stats.RunID, inputPath, err)
		return "", stats, err
	}

	if err := ctx.Err(); err != nil {
		cancelErr := errors.Wrap(errors.ErrCancelled, "before write")
		logging.RunFailed(stats.RunID, inputPath, cancelErr)
		return "", stats, cancelErr
	}

	s.markOrphanedComments(pkg, targets, opts.Level, delta)
	stats.RelationshipsPruned = delta.Len()
	if err := opc.Prune(pkg, delta); err != nil {
		logging.RunFailed(stats.RunID, inputPath, err)
		return "", stats, err
	}

	writeStart := time.Now()
	res, err := opc.Write(pkg, outPath)
	if err != nil {
		logging.RunFailed(stats.RunID, inputPath, err)
		return "", stats, err
	}
	stats.WriteTime = time.Since(writeStart)
	stats.BytesOut = res.Size
	stats.OutputDigest = res.Digest
	stats.Elapsed = time.Since(start)

	report("Simplification complete", 100)
	logging.RunCompleted(stats.RunID, outPath, stats.PartsProcessed, stats.ElementsRemoved, stats.Elapsed)

	s.mu.Lock()
	s.last = stats
	s.mu.Unlock()

	return outPath, stats, nil
}

// transformParts fans the target parts out to workers and joins the
// results. Progress is reported from the collection side only, so the
// fraction is monotonic regardless of completion order. The returned
// outcomes cover every part that produced one, even when an error is also
// returned.
func (s *Simplifier) transformParts(ctx context.Context, targets []*opc.Part, ruleset []rules.Rule, workers int, report ProgressFunc) ([]partOutcome, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sem := make(chan struct{}, workers)
	results := make(chan partOutcome, len(targets))

	for _, part := range targets {
		go func(part *opc.Part) {
			// Cooperative cancellation: bail before starting a part.
			select {
			case <-ctx.Done():
				results <- partOutcome{part: part, err: ctx.Err()}
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()
			results <- transformPart(part, ruleset)
		}(part)
	}

	outcomes := make([]partOutcome, 0, len(targets))
	var firstErr error
	for i := 0; i < len(targets); i++ {
		out := <-results
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
			}
			continue
		}
		outcomes = append(outcomes, out)
		report(fmt.Sprintf("Processed %s", out.part.Name), float64(i+1)/float64(len(targets))*100)
		logging.PartProcessed(out.part.Name, out.part.Role.String(), out.result.ElementsRemoved)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcomes, errors.Wrap(errors.ErrCancelled, "during part processing")
	}
	return outcomes, firstErr
}

// transformPart parses one target part and applies the rule set, leaving
// the mutated tree on the part for serialization at write time.
func transformPart(part *opc.Part, ruleset []rules.Rule) partOutcome {
	out := partOutcome{part: part}

	parseStart := time.Now()
	tree, err := xmltree.Parse(part.Data)
	out.parse = time.Since(parseStart)
	if err != nil {
		out.err = errors.NewParse(part.Name, err)
		return out
	}

	transformStart := time.Now()
	out.result = rules.Apply(tree, ruleset, rules.SinkFunc(func(id string) {
		out.relIDs = append(out.relIDs, id)
	}))
	out.transform = time.Since(transformStart)

	part.Tree = tree
	return out
}

// markOrphanedComments extends the delta with the document's comments
// relationship once level 3 has removed every comment reference, so the
// now-unreachable comments part is pruned from the output package.
func (s *Simplifier) markOrphanedComments(pkg *opc.Package, targets []*opc.Part, level int, delta *opc.Delta) {
	if level < 3 {
		return
	}
	for _, part := range targets {
		if part.Tree != nil && len(xmlquery.QuerySelectorAll(part.Tree, commentRefPattern)) > 0 {
			return
		}
	}

	rels, err := pkg.RelationshipsFor(opc.DocumentPart)
	if err != nil || rels == nil {
		return
	}
	for _, rel := range rels.Rels {
		if strings.HasSuffix(rel.Type, "/comments") {
			delta.Mark(opc.DocumentPart, rel.ID)
		}
	}
}
