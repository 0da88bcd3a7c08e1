package domain

import "errors"

var (
	// Chart of accounts errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAccountMap = errors.New("invalid account role mapping")

	// Opening balance errors
	ErrSnapshotNotFound   = errors.New("opening balance not found")
	ErrSnapshotExists     = errors.New("opening balance already exists for this period")
	ErrSnapshotStale      = errors.New("opening balance changed since the edit started")
	ErrUnlockRequired     = errors.New("opening balance is locked: confirm unlock before editing")
	ErrReasonRequired     = errors.New("a correction reason is required")
	ErrWizardClosed       = errors.New("opening balance wizard is no longer active")
	ErrUnbalancedJournal  = errors.New("generated journal is not balanced")
	ErrAccountingEquation = errors.New("accounting equation does not hold")

	// Journal errors
	ErrJournalNotFound = errors.New("journal not found")

	// Storage errors
	ErrStorageUnavailable = errors.New("could not save data")
)
