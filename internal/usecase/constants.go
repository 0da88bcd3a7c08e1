package usecase

const (
	// ValidationStageFields is reported when snapshot field validation fails.
	ValidationStageFields = "fields"
	// ValidationStageBalance is reported when a generated journal does not balance.
	ValidationStageBalance = "balance"
	// ValidationStageEquation is reported when the chart fails the accounting equation.
	ValidationStageEquation = "equation"
	// ValidationStageUnlock is reported when a locked snapshot is edited without confirmation.
	ValidationStageUnlock = "unlock"
	// ValidationStageStale is reported when an edit targets an outdated snapshot revision.
	ValidationStageStale = "stale"

	// DefaultJournalPageSize is used when listing journals without a limit.
	DefaultJournalPageSize = 50
)
