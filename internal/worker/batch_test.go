package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/pressparse/internal/model"
)

// mockProcessor implements Processor; sources containing "fail" error,
// "short" are not parseable, "weak" score below the reject threshold
type mockProcessor struct{}

func (m *mockProcessor) Process(ctx context.Context, source string) (*model.Report, error) {
	time.Sleep(5 * time.Millisecond)
	switch {
	case strings.Contains(source, "fail"):
		return nil, errors.New("fetch error")
	case strings.Contains(source, "short"):
		return &model.Report{Source: source, Technical: model.TechnicalValidation{IsParseable: false}}, nil
	case strings.Contains(source, "weak"):
		return &model.Report{
			Source:     source,
			Technical:  model.TechnicalValidation{IsParseable: true},
			Validation: &model.ValidationResult{QualityScore: 20, ShouldReject: true},
		}, nil
	default:
		return &model.Report{
			Source:     source,
			Technical:  model.TechnicalValidation{IsParseable: true},
			Validation: &model.ValidationResult{QualityScore: 90},
		}, nil
	}
}

func TestBatchProcessor_Process(t *testing.T) {
	processor := NewBatchProcessor(&mockProcessor{}, 3, nil)

	sources := []string{"a.txt", "https://example.com/fail", "short.txt", "weak.txt", "b.txt"}
	batch := processor.Process(context.Background(), sources)

	if _, err := uuid.Parse(batch.RunID); err != nil {
		t.Errorf("expected UUID run id, got %q", batch.RunID)
	}
	if len(batch.Results) != len(sources) {
		t.Fatalf("expected %d results, got %d", len(sources), len(batch.Results))
	}
	for i, r := range batch.Results {
		if r.Source != sources[i] {
			t.Errorf("expected result %d to be %s, got %s", i, sources[i], r.Source)
		}
	}

	if batch.Results[1].Error == nil || batch.Results[1].ErrMsg != "fetch error" {
		t.Errorf("expected fetch error on failed source, got %v", batch.Results[1].Error)
	}

	want := Summary{Total: 5, Accepted: 2, Rejected: 1, NotParseable: 1, Failed: 1, AverageScore: (90 + 20 + 90) / 3.0}
	if batch.Summary != want {
		t.Errorf("expected summary %+v, got %+v", want, batch.Summary)
	}
	if batch.FinishedAt.Before(batch.StartedAt) {
		t.Error("expected FinishedAt after StartedAt")
	}
}

func TestBatchProcessor_Process_ManySources(t *testing.T) {
	processor := NewBatchProcessor(&mockProcessor{}, 2, nil)

	// More sources than the pool buffers
	var sources []string
	for i := 0; i < 40; i++ {
		sources = append(sources, filepath.Join("releases", string(rune('a'+i%26))+".txt"))
	}
	batch := processor.Process(context.Background(), sources)

	if batch.Summary.Total != 40 || batch.Summary.Accepted != 40 {
		t.Errorf("unexpected summary: %+v", batch.Summary)
	}
}

func TestBatchProcessor_Process_Empty(t *testing.T) {
	batch := NewBatchProcessor(&mockProcessor{}, 2, nil).Process(context.Background(), nil)
	if len(batch.Results) != 0 || batch.Summary.Total != 0 {
		t.Errorf("expected empty batch, got %+v", batch.Summary)
	}
}

func TestBatchProcessor_Process_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := NewBatchProcessor(&mockProcessor{}, 2, nil).Process(ctx, []string{"a.txt", "b.txt"})
	for _, r := range batch.Results {
		if !errors.Is(r.Error, context.Canceled) {
			t.Errorf("expected context.Canceled for %s, got %v", r.Source, r.Error)
		}
	}
	if batch.Summary.Failed != 2 {
		t.Errorf("expected 2 failures, got %d", batch.Summary.Failed)
	}
}

func TestSourceResult_GetError(t *testing.T) {
	r1 := &SourceResult{Source: "a.txt"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("read failed")
	r2 := &SourceResult{Source: "a.txt", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSourcesFromFile(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "sources", `http://example.com
# comment
releases/a.txt
   
http://example.com
http://prnewswire.com   `)

	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFromFile failed: %v", err)
	}

	expected := []string{"http://example.com", "releases/a.txt", "http://prnewswire.com"}
	if len(sources) != len(expected) {
		t.Fatalf("expected %d sources, got %v", len(expected), sources)
	}
	for i, s := range sources {
		if s != expected[i] {
			t.Errorf("expected source %s at index %d, got %s", expected[i], i, s)
		}
	}
}

func TestReadSourcesFromFile_NonExistent(t *testing.T) {
	if _, err := ReadSourcesFromFile("non_existent_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestExpandSources(t *testing.T) {
	dir := t.TempDir()
	b := writeTemp(t, dir, "releases/b.txt", "b")
	a := writeTemp(t, dir, "releases/a.md", "a")
	nested := writeTemp(t, dir, "releases/2025/c.txt", "c")
	writeTemp(t, dir, "releases/logo.png", "png")
	single := writeTemp(t, dir, "single.txt", "s")

	sources, err := ExpandSources([]string{
		"https://example.com/release",
		filepath.Join(dir, "releases"),
		single,
		b,
	})
	if err != nil {
		t.Fatalf("ExpandSources failed: %v", err)
	}

	expected := []string{"https://example.com/release", nested, a, b, single}
	if len(sources) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, sources)
	}
	for i := range expected {
		if sources[i] != expected[i] {
			t.Errorf("expected %s at index %d, got %s", expected[i], i, sources[i])
		}
	}
}

func TestExpandSources_Missing(t *testing.T) {
	if _, err := ExpandSources([]string{"does/not/exist.txt"}); err == nil {
		t.Error("expected error for missing path")
	}
}
