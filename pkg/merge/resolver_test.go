package merge

import (
	"errors"
	"testing"

	"github.com/sdejongh/mergenorris/pkg/compare"
	"github.com/sdejongh/mergenorris/pkg/models"
)

// stubComparator returns a canned comparison and counts invocations
type stubComparator struct {
	result compare.Result
	err    error
	calls  int
}

func (s *stubComparator) Compare(sourcePath, destPath string) (*compare.Comparison, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &compare.Comparison{
		SourcePath: sourcePath,
		DestPath:   destPath,
		Result:     s.result,
	}, nil
}

// stubConfirmer answers every prompt the same way
type stubConfirmer struct {
	answer bool
	err    error
	calls  int
}

func (s *stubConfirmer) Confirm(sourcePath, destPath string) (bool, error) {
	s.calls++
	return s.answer, s.err
}

var testEntry = models.TransferEntry{
	SourcePath: "/src/file.txt",
	DestPath:   "/dst/file.txt",
}

func TestResolveNoDestination(t *testing.T) {
	comparator := &stubComparator{result: compare.Identical}
	stats := &models.RunStats{}
	resolver := NewResolver(comparator, &stubConfirmer{}, &models.RunConfig{Compare: true}, stats)

	decision := resolver.Resolve(testEntry, false)

	if decision.Action != models.ActionProceed {
		t.Errorf("Action = %v, want %v", decision.Action, models.ActionProceed)
	}
	if comparator.calls != 0 {
		t.Errorf("comparator called %d times for absent destination, want 0", comparator.calls)
	}
	if stats.Compared != 0 {
		t.Errorf("Compared = %d, want 0", stats.Compared)
	}
}

func TestResolveIdentical(t *testing.T) {
	t.Run("RemoveIdenticalSet", func(t *testing.T) {
		stats := &models.RunStats{}
		resolver := NewResolver(
			&stubComparator{result: compare.Identical},
			&stubConfirmer{},
			&models.RunConfig{Compare: true, RemoveIdentical: true},
			stats,
		)

		decision := resolver.Resolve(testEntry, true)

		if decision.Action != models.ActionRemoveSource {
			t.Errorf("Action = %v, want %v", decision.Action, models.ActionRemoveSource)
		}
		if stats.Compared != 1 {
			t.Errorf("Compared = %d, want 1", stats.Compared)
		}
	})

	t.Run("RemoveIdenticalUnset", func(t *testing.T) {
		resolver := NewResolver(
			&stubComparator{result: compare.Identical},
			&stubConfirmer{},
			&models.RunConfig{Compare: true},
			&models.RunStats{},
		)

		decision := resolver.Resolve(testEntry, true)

		if decision.Action != models.ActionSkipIdentical {
			t.Errorf("Action = %v, want %v", decision.Action, models.ActionSkipIdentical)
		}
	})

	t.Run("IdenticalWinsOverForce", func(t *testing.T) {
		// Force never rewrites bytes proven identical
		resolver := NewResolver(
			&stubComparator{result: compare.Identical},
			&stubConfirmer{},
			&models.RunConfig{Compare: true, Force: true, RemoveIdentical: true},
			&models.RunStats{},
		)

		decision := resolver.Resolve(testEntry, true)

		if decision.Action != models.ActionRemoveSource {
			t.Errorf("Action = %v, want %v (force must not override comparison)", decision.Action, models.ActionRemoveSource)
		}
	})

	t.Run("IdenticalWinsOverInteractive", func(t *testing.T) {
		confirmer := &stubConfirmer{answer: true}
		resolver := NewResolver(
			&stubComparator{result: compare.Identical},
			confirmer,
			&models.RunConfig{Compare: true, Interactive: true},
			&models.RunStats{},
		)

		decision := resolver.Resolve(testEntry, true)

		if decision.Action != models.ActionSkipIdentical {
			t.Errorf("Action = %v, want %v", decision.Action, models.ActionSkipIdentical)
		}
		if confirmer.calls != 0 {
			t.Errorf("confirmer called %d times for identical files, want 0", confirmer.calls)
		}
	})
}

func TestResolveConflict(t *testing.T) {
	t.Run("ForceProceeds", func(t *testing.T) {
		resolver := NewResolver(
			&stubComparator{result: compare.Different},
			&stubConfirmer{},
			&models.RunConfig{Compare: true, Force: true},
			&models.RunStats{},
		)

		if decision := resolver.Resolve(testEntry, true); decision.Action != models.ActionProceed {
			t.Errorf("Action = %v, want %v", decision.Action, models.ActionProceed)
		}
	})

	t.Run("DefaultSkips", func(t *testing.T) {
		comparator := &stubComparator{}
		resolver := NewResolver(comparator, &stubConfirmer{}, &models.RunConfig{}, &models.RunStats{})

		decision := resolver.Resolve(testEntry, true)

		if decision.Action != models.ActionSkipNoForce {
			t.Errorf("Action = %v, want %v", decision.Action, models.ActionSkipNoForce)
		}
		if comparator.calls != 0 {
			t.Errorf("comparator called %d times with comparison disabled, want 0", comparator.calls)
		}
	})

	t.Run("InteractiveApproved", func(t *testing.T) {
		confirmer := &stubConfirmer{answer: true}
		resolver := NewResolver(
			&stubComparator{result: compare.Different},
			confirmer,
			&models.RunConfig{Compare: true, Interactive: true},
			&models.RunStats{},
		)

		if decision := resolver.Resolve(testEntry, true); decision.Action != models.ActionProceed {
			t.Errorf("Action = %v, want %v", decision.Action, models.ActionProceed)
		}
		if confirmer.calls != 1 {
			t.Errorf("confirmer called %d times, want 1", confirmer.calls)
		}
	})

	t.Run("InteractiveDeclined", func(t *testing.T) {
		resolver := NewResolver(
			&stubComparator{result: compare.Different},
			&stubConfirmer{answer: false},
			&models.RunConfig{Compare: true, Interactive: true},
			&models.RunStats{},
		)

		if decision := resolver.Resolve(testEntry, true); decision.Action != models.ActionSkipDeclined {
			t.Errorf("Action = %v, want %v", decision.Action, models.ActionSkipDeclined)
		}
	})

	t.Run("ForceWinsOverInteractive", func(t *testing.T) {
		confirmer := &stubConfirmer{answer: false}
		resolver := NewResolver(
			&stubComparator{result: compare.Different},
			confirmer,
			&models.RunConfig{Compare: true, Force: true, Interactive: true},
			&models.RunStats{},
		)

		if decision := resolver.Resolve(testEntry, true); decision.Action != models.ActionProceed {
			t.Errorf("Action = %v, want %v", decision.Action, models.ActionProceed)
		}
		if confirmer.calls != 0 {
			t.Errorf("confirmer called %d times with force set, want 0", confirmer.calls)
		}
	})
}

func TestResolveComparisonFailure(t *testing.T) {
	comparator := &stubComparator{err: errors.New("read error")}
	stats := &models.RunStats{}
	resolver := NewResolver(
		comparator,
		&stubConfirmer{},
		&models.RunConfig{Compare: true, Force: true, RemoveIdentical: true},
		stats,
	)

	decision := resolver.Resolve(testEntry, true)

	if decision.Action != models.ActionError {
		t.Errorf("Action = %v, want %v (unresolved comparison must not proceed)", decision.Action, models.ActionError)
	}
	if decision.Err == nil {
		t.Error("Decision.Err is nil, want wrapped comparison error")
	}
	if stats.Compared != 1 {
		t.Errorf("Compared = %d, want 1 (counted even on failure)", stats.Compared)
	}
}

func TestResolveRemoveIdenticalWithoutCompare(t *testing.T) {
	// Removal is gated strictly behind a successful identical comparison;
	// removeIdentical alone never deletes anything.
	resolver := NewResolver(
		&stubComparator{result: compare.Identical},
		&stubConfirmer{},
		&models.RunConfig{RemoveIdentical: true},
		&models.RunStats{},
	)

	decision := resolver.Resolve(testEntry, true)

	if decision.Action == models.ActionRemoveSource {
		t.Error("RemoveIdentical without Compare must never remove a source")
	}
	if decision.Action != models.ActionSkipNoForce {
		t.Errorf("Action = %v, want %v", decision.Action, models.ActionSkipNoForce)
	}
}
