package worker

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/pressparse/internal/model"
)

// Processor turns one source (file path or URL) into a report
type Processor interface {
	Process(ctx context.Context, source string) (*model.Report, error)
}

// ParseJob processes one source
type ParseJob struct {
	Index     int
	Source    string
	Processor Processor
}

// Execute executes the parse job
func (j *ParseJob) Execute(ctx context.Context) Result {
	report, err := j.Processor.Process(ctx, j.Source)
	return &SourceResult{
		Index:  j.Index,
		Source: j.Source,
		Report: report,
		Error:  err,
	}
}

// SourceResult is the outcome for one source
type SourceResult struct {
	Index  int           `json:"-"`
	Source string        `json:"source"`
	Report *model.Report `json:"report,omitempty"`
	Error  error         `json:"-"`
	ErrMsg string        `json:"error,omitempty"`
}

// GetError returns the error from the parse result
func (r *SourceResult) GetError() error {
	return r.Error
}

// Summary aggregates a batch
type Summary struct {
	Total        int     `json:"total"`
	Accepted     int     `json:"accepted"`
	Rejected     int     `json:"rejected"`      // Parsed but scored below the reject threshold
	NotParseable int     `json:"not_parseable"` // Failed the technical gate
	Failed       int     `json:"failed"`        // Could not be read or fetched
	AverageScore float64 `json:"average_score"` // Over parsed releases only
}

// Batch is the outcome of one batch run
type Batch struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Summary    Summary         `json:"summary"`
	Results    []*SourceResult `json:"results"` // Input order
}

// BatchProcessor processes many sources concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
	logger      *slog.Logger
	now         func() time.Time
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int, logger *slog.Logger) *BatchProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}
}

// Process runs every source through the processor; results keep input order
func (b *BatchProcessor) Process(ctx context.Context, sources []string) *Batch {
	batch := &Batch{
		RunID:     uuid.NewString(),
		StartedAt: b.now().UTC(),
		Results:   make([]*SourceResult, len(sources)),
	}
	logger := b.logger.With("run_id", batch.RunID)
	logger.Info("batch started", "sources", len(sources), "workers", b.concurrency)

	if len(sources) > 0 {
		pool := NewPoolContext(ctx, b.concurrency)
		pool.Start()

		go func() {
			for i, source := range sources {
				if !pool.Submit(&ParseJob{Index: i, Source: source, Processor: b.processor}) {
					break
				}
			}
			pool.Close()
		}()

		for r := range pool.Results() {
			sr := r.(*SourceResult)
			if sr.Error != nil {
				logger.Warn("source failed", "source", sr.Source, "error", sr.Error)
			}
			batch.Results[sr.Index] = sr
		}
	}

	// Sources never run because ctx was cancelled
	for i, sr := range batch.Results {
		if sr == nil {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("not processed")
			}
			batch.Results[i] = &SourceResult{Index: i, Source: sources[i], Error: err}
		}
	}
	for _, sr := range batch.Results {
		if sr.Error != nil {
			sr.ErrMsg = sr.Error.Error()
		}
	}

	batch.FinishedAt = b.now().UTC()
	batch.Summary = Summarize(batch.Results)
	logger.Info("batch finished",
		"accepted", batch.Summary.Accepted,
		"rejected", batch.Summary.Rejected,
		"not_parseable", batch.Summary.NotParseable,
		"failed", batch.Summary.Failed)
	return batch
}

// Summarize counts outcomes across results
func Summarize(results []*SourceResult) Summary {
	s := Summary{Total: len(results)}
	scored, total := 0, 0
	for _, r := range results {
		switch {
		case r.Error != nil || r.Report == nil:
			s.Failed++
		case !r.Report.Technical.IsParseable:
			s.NotParseable++
		case r.Report.Accepted():
			s.Accepted++
		default:
			s.Rejected++
		}
		if r.Report != nil && r.Report.Validation != nil {
			scored++
			total += r.Report.Validation.QualityScore
		}
	}
	if scored > 0 {
		s.AverageScore = float64(total) / float64(scored)
	}
	return s
}

// releaseExtensions are the files picked up when a directory is given
var releaseExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".text": true,
}

// ExpandSources resolves arguments into sources: URLs pass through,
// directories expand to the release files they contain.
func ExpandSources(args []string) ([]string, error) {
	var sources []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			sources = append(sources, s)
		}
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			add(arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		var files []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && releaseExtensions[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
		sort.Strings(files)
		for _, f := range files {
			add(f)
		}
	}
	return sources, nil
}

// ReadSourcesFromFile reads sources from a file (one per line)
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
