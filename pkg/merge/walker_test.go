package merge

import (
	"context"
	"io"
	"testing"

	"github.com/sdejongh/mergenorris/pkg/compare"
	"github.com/sdejongh/mergenorris/pkg/logging"
	"github.com/sdejongh/mergenorris/pkg/models"
	"github.com/sdejongh/mergenorris/pkg/output"
	"github.com/sdejongh/mergenorris/pkg/storage"
)

// collectFormatter records every update for assertions
type collectFormatter struct {
	updates []output.Update
}

func (f *collectFormatter) Start(out, errOut io.Writer) error  { return nil }
func (f *collectFormatter) Complete(r *models.RunReport) error { return nil }
func (f *collectFormatter) Name() string                       { return "collect" }

func (f *collectFormatter) Progress(update output.Update) error {
	f.updates = append(f.updates, update)
	return nil
}

// verbs returns the action verbs in emission order
func (f *collectFormatter) verbs() []string {
	var verbs []string
	for _, u := range f.updates {
		if u.Type == "action" {
			verbs = append(verbs, u.Verb)
		}
	}
	return verbs
}

type walkerFixture struct {
	walker    *Walker
	stats     *models.RunStats
	report    *models.RunReport
	formatter *collectFormatter
}

func newWalkerFixture(config *models.RunConfig) *walkerFixture {
	if config.BufferSize == 0 {
		config.BufferSize = 4096
	}

	fsys := storage.NewOS()
	stats := &models.RunStats{}
	report := &models.RunReport{}
	formatter := &collectFormatter{}
	logger := logging.NewNullLogger()

	comparator := compare.NewChecksumComparator(fsys, compare.NewCRC32Hasher(config.BufferSize))
	resolver := NewResolver(comparator, &stubConfirmer{}, config, stats)
	executor := NewExecutor(fsys, config, logger)

	return &walkerFixture{
		walker:    NewWalker(fsys, resolver, executor, formatter, logger, config, stats, report),
		stats:     stats,
		report:    report,
		formatter: formatter,
	}
}

func TestWalkerSourceClassification(t *testing.T) {
	ctx := context.Background()

	t.Run("InaccessibleSourceIsSkipped", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		fx := newWalkerFixture(&models.RunConfig{})

		if err := fx.walker.ProcessSource(ctx, h.Path("missing"), h.Path("dst")); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if fx.stats.Skipped != 1 {
			t.Errorf("Skipped = %d, want 1", fx.stats.Skipped)
		}
		if fx.stats.Errors != 0 {
			t.Errorf("Errors = %d, want 0", fx.stats.Errors)
		}
	})

	t.Run("FileIntoExistingDirectoryKeepsName", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		source := h.WriteFile("a.txt", "x")
		h.WriteFile("dst/placeholder", "")
		fx := newWalkerFixture(&models.RunConfig{})

		if err := fx.walker.ProcessSource(ctx, source, h.Path("dst")); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if !h.Exists(h.Path("dst/a.txt")) {
			t.Error("file not placed under destination directory with its own name")
		}
		if fx.stats.Moved != 1 {
			t.Errorf("Moved = %d, want 1", fx.stats.Moved)
		}
	})

	t.Run("FileToLiteralDestination", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		source := h.WriteFile("a.txt", "x")
		fx := newWalkerFixture(&models.RunConfig{})

		if err := fx.walker.ProcessSource(ctx, source, h.Path("renamed.txt")); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if !h.Exists(h.Path("renamed.txt")) {
			t.Error("file not moved to the literal destination path")
		}
	})

	t.Run("SingleFileIdenticalRemovalPrunesParents", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		source := h.WriteFile("a/b/file.txt", "same bytes")
		dest := h.WriteFile("dst/file.txt", "same bytes")
		h.WriteFile("keep.txt", "anchor") // ends the upward walk at the helper root
		fx := newWalkerFixture(&models.RunConfig{Compare: true, RemoveIdentical: true})

		if err := fx.walker.ProcessSource(ctx, source, dest); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if fx.stats.Removed != 1 {
			t.Errorf("Removed = %d, want 1", fx.stats.Removed)
		}
		for _, rel := range []string{"a/b/file.txt", "a/b", "a"} {
			if h.Exists(h.Path(rel)) {
				t.Errorf("%s still exists after single-file removal", rel)
			}
		}
		if got := h.ReadFile(dest); got != "same bytes" {
			t.Errorf("destination content = %q, want untouched %q", got, "same bytes")
		}
	})

	t.Run("DirectoryOntoFileIsAnError", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		h.WriteFile("src/a.txt", "x")
		dest := h.WriteFile("dst", "i am a file")
		fx := newWalkerFixture(&models.RunConfig{})

		if err := fx.walker.ProcessSource(ctx, h.Path("src"), dest); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if fx.stats.Errors != 1 {
			t.Errorf("Errors = %d, want 1", fx.stats.Errors)
		}
		if len(fx.report.Errors) != 1 {
			t.Fatalf("report errors = %d, want 1", len(fx.report.Errors))
		}
		if !h.Exists(h.Path("src/a.txt")) {
			t.Error("source mutated despite the classification error")
		}
	})

	t.Run("MissingDestinationWithoutCreateDest", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		h.WriteFile("src/a.txt", "x")
		fx := newWalkerFixture(&models.RunConfig{})

		if err := fx.walker.ProcessSource(ctx, h.Path("src"), h.Path("dst")); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if fx.stats.Errors != 1 {
			t.Errorf("Errors = %d, want 1", fx.stats.Errors)
		}
	})

	t.Run("MissingDestinationWithCreateDest", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		h.WriteFile("src/a.txt", "x")
		fx := newWalkerFixture(&models.RunConfig{CreateDest: true})

		if err := fx.walker.ProcessSource(ctx, h.Path("src"), h.Path("dst")); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if fx.stats.Errors != 0 {
			t.Errorf("Errors = %d, want 0", fx.stats.Errors)
		}
		if !h.Exists(h.Path("dst/a.txt")) {
			t.Error("file not merged into the created destination")
		}
	})
}

func TestWalkerDirectoryMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("ReRootsNestedFiles", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		h.WriteFile("src/a.txt", "a")
		h.WriteFile("src/sub/deep/b.txt", "b")
		h.WriteFile("dst/placeholder", "")
		fx := newWalkerFixture(&models.RunConfig{})

		if err := fx.walker.ProcessSource(ctx, h.Path("src"), h.Path("dst")); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if !h.Exists(h.Path("dst/a.txt")) || !h.Exists(h.Path("dst/sub/deep/b.txt")) {
			t.Error("files not re-rooted onto the destination")
		}
		if fx.stats.Moved != 2 {
			t.Errorf("Moved = %d, want 2", fx.stats.Moved)
		}
		if h.Exists(h.Path("src")) {
			t.Error("emptied source root not removed")
		}
	})

	t.Run("SkippedFilePreventsPruning", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		h.WriteFile("src/sub/conflict.txt", "source version")
		h.WriteFile("dst/sub/conflict.txt", "dest version")
		fx := newWalkerFixture(&models.RunConfig{})

		if err := fx.walker.ProcessSource(ctx, h.Path("src"), h.Path("dst")); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if fx.stats.Skipped != 1 {
			t.Errorf("Skipped = %d, want 1", fx.stats.Skipped)
		}
		if !h.Exists(h.Path("src/sub/conflict.txt")) {
			t.Error("skipped source file removed")
		}
		if got := h.ReadFile(h.Path("dst/sub/conflict.txt")); got != "dest version" {
			t.Errorf("destination content = %q, want untouched %q", got, "dest version")
		}
	})

	t.Run("DryRunLeavesTreeIntact", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		h.WriteFile("src/a.txt", "a")
		h.WriteFile("src/sub/b.txt", "b")
		h.WriteFile("dst/placeholder", "")
		fx := newWalkerFixture(&models.RunConfig{DryRun: true})

		if err := fx.walker.ProcessSource(ctx, h.Path("src"), h.Path("dst")); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if fx.stats.Moved != 2 {
			t.Errorf("dry-run Moved = %d, want 2 (same counters as a real run)", fx.stats.Moved)
		}
		if !h.Exists(h.Path("src/a.txt")) || !h.Exists(h.Path("src/sub/b.txt")) {
			t.Error("dry-run mutated the source tree")
		}
		if h.Exists(h.Path("dst/a.txt")) {
			t.Error("dry-run wrote to the destination")
		}

		for _, u := range fx.formatter.updates {
			if u.Type == "action" && !u.DryRun {
				t.Errorf("action update for %s not marked dry-run", u.SourcePath)
			}
		}
	})

	t.Run("FileOntoDirectoryCollisionIsAnError", func(t *testing.T) {
		h := NewExecutorTestHelper(t)
		h.WriteFile("src/name", "i am a file")
		h.WriteFile("dst/name/inner.txt", "i make name a directory")
		fx := newWalkerFixture(&models.RunConfig{Force: true})

		if err := fx.walker.ProcessSource(ctx, h.Path("src"), h.Path("dst")); err != nil {
			t.Fatalf("ProcessSource() error = %v", err)
		}

		if fx.stats.Errors != 1 {
			t.Errorf("Errors = %d, want 1", fx.stats.Errors)
		}
		if !h.Exists(h.Path("dst/name/inner.txt")) {
			t.Error("destination directory content lost")
		}
	})
}

func TestWalkerVerbOrder(t *testing.T) {
	// Sorted enumeration keeps verbose output deterministic
	h := NewExecutorTestHelper(t)
	h.WriteFile("src/a.txt", "a")
	h.WriteFile("src/b.txt", "b")
	h.WriteFile("src/c.txt", "c")
	h.WriteFile("dst/placeholder", "")
	fx := newWalkerFixture(&models.RunConfig{})

	if err := fx.walker.ProcessSource(context.Background(), h.Path("src"), h.Path("dst")); err != nil {
		t.Fatalf("ProcessSource() error = %v", err)
	}

	var sources []string
	for _, u := range fx.formatter.updates {
		if u.Type == "action" {
			sources = append(sources, u.SourcePath)
		}
	}
	if len(sources) != 3 {
		t.Fatalf("action updates = %d, want 3", len(sources))
	}
	for i := 1; i < len(sources); i++ {
		if sources[i-1] >= sources[i] {
			t.Errorf("entries out of order: %q before %q", sources[i-1], sources[i])
		}
	}
	if got := fx.formatter.verbs(); len(got) != 3 || got[0] != "move" {
		t.Errorf("verbs = %v, want three move actions", got)
	}
}
