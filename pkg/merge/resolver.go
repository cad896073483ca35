package merge

import (
	"fmt"

	"github.com/sdejongh/mergenorris/pkg/compare"
	"github.com/sdejongh/mergenorris/pkg/models"
)

// Comparator decides whether two files hold identical content
type Comparator interface {
	Compare(sourcePath, destPath string) (*compare.Comparison, error)
}

// Decision is the resolver's verdict for one transfer entry
type Decision struct {
	Action     models.Action
	Comparison *compare.Comparison
	Err        error
}

// Resolver applies the per-entry decision rules: existence, content
// comparison, and the force/interactive conflict policy.
type Resolver struct {
	comparator Comparator
	confirmer  Confirmer
	config     *models.RunConfig
	stats      *models.RunStats
}

// NewResolver creates a resolver for one run
func NewResolver(comparator Comparator, confirmer Confirmer, config *models.RunConfig, stats *models.RunStats) *Resolver {
	return &Resolver{
		comparator: comparator,
		confirmer:  confirmer,
		config:     config,
		stats:      stats,
	}
}

// Resolve decides what to do with one entry whose destination existence is
// already known. Called exactly once per entry.
//
// Comparison takes precedence over the force/interactive policy: an entry
// proven identical is removed or skipped, never rewritten, even with force
// set. Rewriting identical bytes is wasted I/O.
func (r *Resolver) Resolve(entry models.TransferEntry, destExists bool) Decision {
	if !destExists {
		return Decision{Action: models.ActionProceed}
	}

	if r.config.Compare {
		cmp, err := r.comparator.Compare(entry.SourcePath, entry.DestPath)
		r.stats.Compared++
		if err != nil {
			// Identity could not be determined; never delete or overwrite
			// based on an unresolved comparison.
			return Decision{
				Action: models.ActionError,
				Err:    fmt.Errorf("comparison failed: %w", err),
			}
		}

		if cmp.Result == compare.Identical {
			if r.config.RemoveIdentical {
				return Decision{Action: models.ActionRemoveSource, Comparison: cmp}
			}
			return Decision{Action: models.ActionSkipIdentical, Comparison: cmp}
		}

		return r.resolveConflict(entry, cmp)
	}

	return r.resolveConflict(entry, nil)
}

// resolveConflict handles an existing destination that is not known to be
// identical: force overwrites, interactive asks, default skips.
func (r *Resolver) resolveConflict(entry models.TransferEntry, cmp *compare.Comparison) Decision {
	if r.config.Force {
		return Decision{Action: models.ActionProceed, Comparison: cmp}
	}

	if r.config.Interactive {
		approved, err := r.confirmer.Confirm(entry.SourcePath, entry.DestPath)
		if err != nil {
			return Decision{
				Action:     models.ActionError,
				Comparison: cmp,
				Err:        err,
			}
		}
		if approved {
			return Decision{Action: models.ActionProceed, Comparison: cmp}
		}
		return Decision{Action: models.ActionSkipDeclined, Comparison: cmp}
	}

	return Decision{Action: models.ActionSkipNoForce, Comparison: cmp}
}
