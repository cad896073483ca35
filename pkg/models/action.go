package models

// Action represents what the resolver decided to do with a transfer entry
type Action string

const (
	// ActionProceed moves or copies the source to the destination
	ActionProceed Action = "proceed"
	// ActionSkipNoForce skips because the destination exists and --force is off
	ActionSkipNoForce Action = "skip-no-force"
	// ActionSkipDeclined skips because the operator declined the overwrite prompt
	ActionSkipDeclined Action = "skip-declined"
	// ActionSkipIdentical skips because source and destination are identical
	ActionSkipIdentical Action = "skip-identical"
	// ActionRemoveSource deletes the source because it is identical to the destination
	ActionRemoveSource Action = "remove-source"
	// ActionError indicates the entry could not be resolved
	ActionError Action = "error"
)

// Outcome classifies what physically happened to a transfer entry.
// Exactly one outcome is recorded per entry.
type Outcome string

const (
	// OutcomeMoved indicates the source was moved to a new destination path
	OutcomeMoved Outcome = "moved"
	// OutcomeCopied indicates the source was copied to a new destination path
	OutcomeCopied Outcome = "copied"
	// OutcomeOverwritten indicates an existing destination was replaced
	OutcomeOverwritten Outcome = "overwritten"
	// OutcomeRemoved indicates the source was deleted (identical to destination)
	OutcomeRemoved Outcome = "removed"
	// OutcomeSkipped indicates no physical action was taken
	OutcomeSkipped Outcome = "skipped"
	// OutcomeError indicates the entry failed
	OutcomeError Outcome = "error"
)
