package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/ledger"
)

// OpeningBalanceUseCase runs the create and edit flows of the opening balance
// and keeps the chart of accounts in step with the active snapshot.
type OpeningBalanceUseCase struct {
	engine       *ledger.Engine
	txManager    TransactionManager
	accountRepo  AccountRepository
	snapshotRepo SnapshotRepository
	journalRepo  JournalRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
	identity     IdentityProvider

	logger  zerolog.Logger
	metrics MetricsRecorder
	now     func() time.Time
}

// OpeningBalanceOption configures an OpeningBalanceUseCase.
type OpeningBalanceOption func(*OpeningBalanceUseCase)

// WithLogger sets the logger used for rejected and saved posts.
func WithLogger(logger zerolog.Logger) OpeningBalanceOption {
	return func(uc *OpeningBalanceUseCase) { uc.logger = logger }
}

// WithMetrics sets the recorder for posting outcomes.
func WithMetrics(m MetricsRecorder) OpeningBalanceOption {
	return func(uc *OpeningBalanceUseCase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) OpeningBalanceOption {
	return func(uc *OpeningBalanceUseCase) { uc.now = now }
}

// NewOpeningBalanceUseCase creates a new OpeningBalanceUseCase.
func NewOpeningBalanceUseCase(
	engine *ledger.Engine,
	txManager TransactionManager,
	accountRepo AccountRepository,
	snapshotRepo SnapshotRepository,
	journalRepo JournalRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	identity IdentityProvider,
	opts ...OpeningBalanceOption,
) *OpeningBalanceUseCase {
	uc := &OpeningBalanceUseCase{
		engine:       engine,
		txManager:    txManager,
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		journalRepo:  journalRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
		identity:     identity,
		logger:       zerolog.Nop(),
		metrics:      nopMetrics{},
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SubmitResult is what a successful Submit persisted.
type SubmitResult struct {
	Snapshot *domain.OpeningBalanceSnapshot
	// Journal is nil when an edit changed nothing above the tolerance.
	Journal  *domain.Journal
	Accounts []domain.Account
	Equation ledger.EquationResult
}

// Preview is the journal a wizard would post if submitted now.
type Preview struct {
	Kind    domain.JournalKind
	Entries []domain.JournalEntry
	Balance ledger.EntryBalance
}

// StartCreate opens a wizard for a new period.
func (uc *OpeningBalanceUseCase) StartCreate(_ context.Context) *Wizard {
	return newCreateWizard()
}

// StartEdit opens a wizard over the active snapshot. A locked snapshot must
// be confirmed with Wizard.ConfirmUnlock before any field can change.
func (uc *OpeningBalanceUseCase) StartEdit(ctx context.Context) (*Wizard, error) {
	current, err := uc.snapshotRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return newEditWizard(current), nil
}

// Abandon discards the wizard; nothing is written.
func (uc *OpeningBalanceUseCase) Abandon(w *Wizard) {
	if w.active() {
		w.state = FlowAborted
	}
}

// ValidateStep checks the fields of the wizard's current step.
func (uc *OpeningBalanceUseCase) ValidateStep(ctx context.Context, w *Wizard) error {
	if !w.active() {
		return domain.ErrWizardClosed
	}
	current, err := uc.snapshotRepo.Get(ctx)
	if err != nil {
		return err
	}
	history, err := uc.snapshotRepo.History(ctx)
	if err != nil {
		return err
	}

	return stepErrors(w.step, uc.fieldErrors(w, current, history)).Err()
}

// Advance validates the current step and moves to the next one.
func (uc *OpeningBalanceUseCase) Advance(ctx context.Context, w *Wizard) error {
	if w.RequiresUnlock() {
		uc.metrics.ValidationFailed(ValidationStageUnlock)
		return domain.ErrUnlockRequired
	}
	if err := uc.ValidateStep(ctx, w); err != nil {
		uc.metrics.ValidationFailed(ValidationStageFields)
		return err
	}

	w.next()
	if w.step == StepReview && w.mode == WizardModeEdit && strings.TrimSpace(w.reason) == "" {
		w.state = FlowRequireReason
	}
	return nil
}

// Preview generates the journal the wizard would post without writing anything.
func (uc *OpeningBalanceUseCase) Preview(ctx context.Context, w *Wizard) (*Preview, error) {
	if !w.active() {
		return nil, domain.ErrWizardClosed
	}

	p := &Preview{Kind: domain.JournalKindOpening}
	if w.mode == WizardModeEdit {
		coa, err := uc.accountRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		p.Kind = domain.JournalKindCorrection
		p.Entries = uc.engine.GenerateCorrectionJournal(w.previous, w.draft, coa)
	} else {
		p.Entries = uc.engine.GenerateOpeningJournal(w.draft)
	}
	p.Balance = ledger.ValidateEntryBalance(p.Entries)
	return p, nil
}

// Submit validates the whole snapshot, posts the opening or correction
// journal and persists snapshot, chart and journal together. Nothing is
// written unless every check passes.
func (uc *OpeningBalanceUseCase) Submit(ctx context.Context, w *Wizard) (*SubmitResult, error) {
	if !w.active() {
		return nil, domain.ErrWizardClosed
	}
	if w.RequiresUnlock() {
		uc.metrics.ValidationFailed(ValidationStageUnlock)
		return nil, domain.ErrUnlockRequired
	}

	w.state = FlowValidating

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		w.state = FlowCollecting
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	current, err := uc.snapshotRepo.GetTx(ctx, tx)
	if err != nil {
		w.state = FlowCollecting
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	history, err := uc.snapshotRepo.HistoryTx(ctx, tx)
	if err != nil {
		w.state = FlowCollecting
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	if w.mode == WizardModeEdit {
		if err := uc.checkEditTarget(w, current); err != nil {
			return nil, err
		}
	}

	if err := uc.validateSubmission(w, current, history); err != nil {
		return nil, err
	}

	w.state = FlowPosting

	coa, err := uc.accountRepo.ListTx(ctx, tx)
	if err != nil {
		w.state = FlowCollecting
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	kind := domain.JournalKindOpening
	var entries []domain.JournalEntry
	if w.mode == WizardModeEdit {
		kind = domain.JournalKindCorrection
		entries = uc.engine.GenerateCorrectionJournal(w.previous, w.draft, coa)
	} else {
		entries = uc.engine.GenerateOpeningJournal(w.draft)
		coa = uc.engine.EnsureAccounts(coa, entries)
	}

	if balance := ledger.ValidateEntryBalance(entries); !balance.IsValid {
		uc.metrics.ValidationFailed(ValidationStageBalance)
		uc.logger.Error().
			Str("kind", string(kind)).
			Str("total_debit", balance.TotalDebit.String()).
			Str("total_credit", balance.TotalCredit.String()).
			Msg("generated journal is not balanced")
		w.state = FlowAborted
		return nil, fmt.Errorf("%w: %s", domain.ErrUnbalancedJournal, balance.Message)
	}

	accounts := uc.engine.ApplySnapshot(coa, w.draft)
	equation := ledger.ValidateAccountingEquation(accounts)
	diff, _ := equation.Difference.Float64()
	uc.metrics.EquationChecked(equation.IsValid, diff)
	if !equation.IsValid {
		uc.metrics.ValidationFailed(ValidationStageEquation)
		uc.logger.Error().
			Str("total_asset", equation.TotalAsset.String()).
			Str("total_liability", equation.TotalLiability.String()).
			Str("total_equity", equation.TotalEquity.String()).
			Str("difference", equation.Difference.String()).
			Msg("accounting equation does not hold after applying opening balance")
		w.state = FlowAborted
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountingEquation, equation.Message)
	}

	now := uc.now()
	user := uc.identity.CurrentUserID(ctx)
	snapshot := uc.buildSnapshot(w, current, user, now)

	if w.mode == WizardModeCreate && current != nil {
		if err := uc.snapshotRepo.ArchiveTx(ctx, tx, current); err != nil {
			return nil, uc.writeFailed(w, err)
		}
	}

	var journal *domain.Journal
	if len(entries) > 0 {
		journal = &domain.Journal{
			ID:          uc.idGen.Generate(),
			Kind:        kind,
			Description: journalDescription(kind, snapshot.PeriodStartDate, w.reason),
			Date:        snapshot.PeriodStartDate,
			Reference:   snapshot.ID,
			Entries:     entries,
			CreatedBy:   user,
			CreatedAt:   now,
		}
		if err := uc.journalRepo.AppendTx(ctx, tx, journal); err != nil {
			return nil, uc.writeFailed(w, err)
		}
	}

	if err := uc.accountRepo.SaveTx(ctx, tx, accounts); err != nil {
		return nil, uc.writeFailed(w, err)
	}
	if err := uc.snapshotRepo.SaveTx(ctx, tx, snapshot); err != nil {
		return nil, uc.writeFailed(w, err)
	}

	audit := &domain.AuditLog{
		UserID:       user,
		Action:       domain.AuditActionOpeningBalanceCreate,
		ResourceType: domain.AuditResourceOpeningBalance,
		ResourceID:   snapshot.ID,
		AfterState:   domain.MarshalState(snapshot),
		Status:       domain.AuditStatusSuccess,
		CreatedAt:    now,
	}
	if w.mode == WizardModeEdit {
		audit.Action = domain.AuditActionOpeningBalanceCorrect
		audit.Reason = strings.TrimSpace(w.reason)
		audit.BeforeState = domain.MarshalState(current)
	}
	if journal != nil {
		audit.JournalID = journal.ID
	}
	if err := uc.auditRepo.CreateTx(ctx, tx, audit); err != nil {
		return nil, uc.writeFailed(w, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, uc.writeFailed(w, err)
	}

	w.state = FlowPersisted
	if journal != nil {
		uc.metrics.JournalPosted(kind, len(journal.Entries))
	}

	event := uc.logger.Info().
		Str("snapshot_id", snapshot.ID).
		Str("period_start_date", snapshot.PeriodStartDate).
		Int("revision", snapshot.Revision).
		Str("kind", string(kind)).
		Int("entries", len(entries))
	if journal != nil {
		event = event.Str("journal_id", journal.ID)
	}
	event.Msg("opening balance persisted")

	return &SubmitResult{
		Snapshot: snapshot.Clone(),
		Journal:  journal,
		Accounts: accounts,
		Equation: equation,
	}, nil
}

// checkEditTarget compares the stored snapshot with the one the edit wizard
// was opened on. An edit computed against an older revision is rejected; a
// lock applied after the wizard opened must still be confirmed.
func (uc *OpeningBalanceUseCase) checkEditTarget(w *Wizard, current *domain.OpeningBalanceSnapshot) error {
	if current == nil {
		w.state = FlowAborted
		return fmt.Errorf("edit opening balance %s: %w", w.previous.ID, domain.ErrSnapshotNotFound)
	}
	if current.ID != w.previous.ID || current.Revision != w.previous.Revision {
		uc.metrics.ValidationFailed(ValidationStageStale)
		uc.logger.Warn().
			Str("snapshot_id", current.ID).
			Int("stored_revision", current.Revision).
			Int("wizard_revision", w.previous.Revision).
			Msg("rejected edit of an outdated opening balance")
		w.state = FlowAborted
		return fmt.Errorf("edit opening balance %s revision %d: %w", w.previous.ID, w.previous.Revision, domain.ErrSnapshotStale)
	}
	if current.Locked && !w.unlockConfirmed {
		uc.metrics.ValidationFailed(ValidationStageUnlock)
		w.previous.Locked = true
		w.previous.LockedBy = current.LockedBy
		w.previous.LockedAt = current.LockedAt
		w.state = FlowUnlocking
		return domain.ErrUnlockRequired
	}
	return nil
}

// validateSubmission collects every field error, plus the missing reason of an edit.
func (uc *OpeningBalanceUseCase) validateSubmission(w *Wizard, current *domain.OpeningBalanceSnapshot, history []*domain.OpeningBalanceSnapshot) error {
	ve := uc.fieldErrors(w, current, history)

	missingReason := w.mode == WizardModeEdit && strings.TrimSpace(w.reason) == ""
	if missingReason {
		ve.Add("reason", "reason is required to correct an opening balance")
	}

	if ve.Err() == nil {
		return nil
	}

	uc.metrics.ValidationFailed(ValidationStageFields)
	w.state = FlowCollecting
	if missingReason {
		w.state = FlowRequireReason
		return fmt.Errorf("%w: %w", domain.ErrReasonRequired, ve)
	}
	return ve
}

// fieldErrors validates the draft and the uniqueness of its period start date.
// A new period may not reuse the date of the active or any archived snapshot;
// an edit may keep its own date but not take an archived one.
func (uc *OpeningBalanceUseCase) fieldErrors(w *Wizard, current *domain.OpeningBalanceSnapshot, history []*domain.OpeningBalanceSnapshot) *domain.ValidationError {
	ve := domain.ValidateSnapshot(w.draft)

	date := w.draft.PeriodStartDate
	if date == "" {
		return ve
	}

	taken := false
	if w.mode == WizardModeCreate && current != nil && current.PeriodStartDate == date {
		taken = true
	}
	for _, h := range history {
		if h.PeriodStartDate == date {
			taken = true
			break
		}
	}
	if taken {
		ve.Add("period_start_date", fmt.Sprintf("an opening balance for %s already exists", date))
	}
	return ve
}

func (uc *OpeningBalanceUseCase) buildSnapshot(w *Wizard, current *domain.OpeningBalanceSnapshot, user string, now time.Time) *domain.OpeningBalanceSnapshot {
	s := w.draft.Clone()
	s.UpdatedBy = user
	s.UpdatedAt = now

	if w.mode == WizardModeEdit {
		s.ID = current.ID
		s.Revision = current.Revision + 1
		s.CreatedBy = current.CreatedBy
		s.CreatedAt = current.CreatedAt
		s.Locked = current.Locked
		s.LockedBy = current.LockedBy
		s.LockedAt = current.LockedAt
		return s
	}

	s.ID = uc.idGen.Generate()
	s.Revision = 1
	s.CreatedBy = user
	s.CreatedAt = now
	s.Locked = false
	s.LockedBy = ""
	s.LockedAt = nil
	return s
}

func (uc *OpeningBalanceUseCase) writeFailed(w *Wizard, err error) error {
	w.state = FlowCollecting
	uc.logger.Error().Err(err).Msg("failed to persist opening balance")
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
}

func journalDescription(kind domain.JournalKind, date, reason string) string {
	if kind == domain.JournalKindCorrection {
		return fmt.Sprintf("Koreksi Saldo Awal %s: %s", date, strings.TrimSpace(reason))
	}
	return fmt.Sprintf("Saldo Awal Periode %s", date)
}

// Lock marks the active snapshot as locked. Locking twice is a no-op.
func (uc *OpeningBalanceUseCase) Lock(ctx context.Context) (*domain.OpeningBalanceSnapshot, error) {
	return uc.setLocked(ctx, true)
}

// Unlock clears the lock flag of the active snapshot.
func (uc *OpeningBalanceUseCase) Unlock(ctx context.Context) (*domain.OpeningBalanceSnapshot, error) {
	return uc.setLocked(ctx, false)
}

func (uc *OpeningBalanceUseCase) setLocked(ctx context.Context, locked bool) (*domain.OpeningBalanceSnapshot, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	current, err := uc.snapshotRepo.GetTx(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	if current == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	if current.Locked == locked {
		return current, nil
	}

	now := uc.now()
	user := uc.identity.CurrentUserID(ctx)

	updated := current.Clone()
	updated.Locked = locked
	action := domain.AuditActionOpeningBalanceUnlock
	if locked {
		action = domain.AuditActionOpeningBalanceLock
		updated.LockedBy = user
		updated.LockedAt = &now
	} else {
		updated.LockedBy = ""
		updated.LockedAt = nil
	}

	if err := uc.snapshotRepo.SaveTx(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		UserID:       user,
		Action:       action,
		ResourceType: domain.AuditResourceOpeningBalance,
		ResourceID:   updated.ID,
		BeforeState:  domain.JSON{"locked": current.Locked},
		AfterState:   domain.JSON{"locked": updated.Locked},
		Status:       domain.AuditStatusSuccess,
		CreatedAt:    now,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	uc.logger.Info().
		Str("snapshot_id", updated.ID).
		Bool("locked", locked).
		Str("user", user).
		Msg("opening balance lock changed")

	return updated, nil
}

// Current returns the active snapshot.
func (uc *OpeningBalanceUseCase) Current(ctx context.Context) (*domain.OpeningBalanceSnapshot, error) {
	current, err := uc.snapshotRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return current, nil
}

// History returns archived periods, oldest first.
func (uc *OpeningBalanceUseCase) History(ctx context.Context) ([]*domain.OpeningBalanceSnapshot, error) {
	return uc.snapshotRepo.History(ctx)
}

// AuditTrail returns audit records of opening balance changes.
func (uc *OpeningBalanceUseCase) AuditTrail(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	return uc.auditRepo.List(ctx, filter)
}
