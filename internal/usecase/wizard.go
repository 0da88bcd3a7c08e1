package usecase

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/koperasi/ledger/internal/domain"
)

// WizardMode distinguishes creating a period from editing the active one.
type WizardMode string

const (
	WizardModeCreate WizardMode = "create"
	WizardModeEdit   WizardMode = "edit"
)

// WizardStep is one page of the opening balance form.
type WizardStep int

const (
	StepPeriod WizardStep = iota
	StepCashBank
	StepReceivables
	StepPayables
	StepInventory
	StepMemberDeposits
	StepMemberLoans
	StepReview
)

var stepNames = map[WizardStep]string{
	StepPeriod:         "period",
	StepCashBank:       "cash_bank",
	StepReceivables:    "receivables",
	StepPayables:       "payables",
	StepInventory:      "inventory",
	StepMemberDeposits: "member_deposits",
	StepMemberLoans:    "member_loans",
	StepReview:         "review",
}

func (s WizardStep) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// stepFields maps each step to the snapshot fields it collects.
var stepFields = map[WizardStep][]string{
	StepPeriod:         {"period_start_date", "initial_equity"},
	StepCashBank:       {"cash", "bank"},
	StepReceivables:    {"receivables_from_members"},
	StepPayables:       {"payables_to_suppliers"},
	StepInventory:      {"inventory"},
	StepMemberDeposits: {"member_deposits"},
	StepMemberLoans:    {"member_loans"},
}

// FlowState is where a wizard is in the create or edit flow.
type FlowState string

const (
	FlowCollecting    FlowState = "collecting"
	FlowUnlocking     FlowState = "unlocking"
	FlowRequireReason FlowState = "require_reason"
	FlowValidating    FlowState = "validating"
	FlowPosting       FlowState = "posting"
	FlowPersisted     FlowState = "persisted"
	FlowAborted       FlowState = "aborted"
)

// Wizard carries an in-progress opening balance between form steps.
// It is owned by the caller and discarded when the flow is abandoned;
// nothing is written until OpeningBalanceUseCase.Submit succeeds.
type Wizard struct {
	mode     WizardMode
	step     WizardStep
	state    FlowState
	draft    *domain.OpeningBalanceSnapshot
	previous *domain.OpeningBalanceSnapshot

	unlockConfirmed bool
	reason          string
}

func newCreateWizard() *Wizard {
	return &Wizard{
		mode:  WizardModeCreate,
		step:  StepPeriod,
		state: FlowCollecting,
		draft: &domain.OpeningBalanceSnapshot{},
	}
}

func newEditWizard(current *domain.OpeningBalanceSnapshot) *Wizard {
	w := &Wizard{
		mode:     WizardModeEdit,
		step:     StepPeriod,
		state:    FlowCollecting,
		draft:    current.Clone(),
		previous: current.Clone(),
	}
	if current.Locked {
		w.state = FlowUnlocking
	}
	return w
}

// Mode returns whether the wizard creates or edits.
func (w *Wizard) Mode() WizardMode { return w.mode }

// Step returns the current form step.
func (w *Wizard) Step() WizardStep { return w.step }

// State returns the flow state.
func (w *Wizard) State() FlowState { return w.state }

// IsEditMode reports whether an edit is still in progress.
func (w *Wizard) IsEditMode() bool {
	return w.mode == WizardModeEdit && w.active()
}

// Draft returns a copy of the snapshot collected so far.
func (w *Wizard) Draft() *domain.OpeningBalanceSnapshot { return w.draft.Clone() }

// Previous returns a copy of the snapshot being edited, nil when creating.
func (w *Wizard) Previous() *domain.OpeningBalanceSnapshot { return w.previous.Clone() }

// Reason returns the correction reason entered so far.
func (w *Wizard) Reason() string { return w.reason }

// RequiresUnlock reports whether the edited snapshot is locked and not yet confirmed.
func (w *Wizard) RequiresUnlock() bool {
	return w.mode == WizardModeEdit && w.previous != nil && w.previous.Locked && !w.unlockConfirmed
}

// ConfirmUnlock acknowledges that editing a locked period may affect downstream reports.
func (w *Wizard) ConfirmUnlock() error {
	if !w.active() {
		return domain.ErrWizardClosed
	}
	w.unlockConfirmed = true
	if w.state == FlowUnlocking {
		w.state = FlowCollecting
	}
	return nil
}

func (w *Wizard) active() bool {
	return w.state != FlowPersisted && w.state != FlowAborted
}

func (w *Wizard) editable() error {
	if !w.active() {
		return domain.ErrWizardClosed
	}
	if w.RequiresUnlock() {
		return domain.ErrUnlockRequired
	}
	return nil
}

// SetPeriod records the period start date and the initial equity (Modal Koperasi).
func (w *Wizard) SetPeriod(startDate string, initialEquity decimal.Decimal) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.draft.PeriodStartDate = strings.TrimSpace(startDate)
	w.draft.InitialEquity = initialEquity
	return nil
}

// SetCashAndBank records cash on hand and bank balances.
func (w *Wizard) SetCashAndBank(cash, bank decimal.Decimal) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.draft.Cash = cash
	w.draft.Bank = bank
	return nil
}

// SetReceivables replaces the member receivables.
func (w *Wizard) SetReceivables(lines []domain.MemberReceivable) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.draft.ReceivablesFromMembers = append([]domain.MemberReceivable(nil), lines...)
	return nil
}

// SetPayables replaces the supplier payables.
func (w *Wizard) SetPayables(lines []domain.SupplierPayable) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.draft.PayablesToSuppliers = append([]domain.SupplierPayable(nil), lines...)
	return nil
}

// SetInventory replaces the stock lines.
func (w *Wizard) SetInventory(lines []domain.InventoryLine) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.draft.Inventory = append([]domain.InventoryLine(nil), lines...)
	return nil
}

// SetMemberDeposits replaces the member deposits.
func (w *Wizard) SetMemberDeposits(lines []domain.MemberDeposit) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.draft.MemberDeposits = append([]domain.MemberDeposit(nil), lines...)
	return nil
}

// SetMemberLoans replaces the member loans.
func (w *Wizard) SetMemberLoans(lines []domain.MemberLoan) error {
	if err := w.editable(); err != nil {
		return err
	}
	w.draft.MemberLoans = append([]domain.MemberLoan(nil), lines...)
	return nil
}

// Fill copies every collected field of s into the draft.
func (w *Wizard) Fill(s *domain.OpeningBalanceSnapshot) error {
	setters := []func() error{
		func() error { return w.SetPeriod(s.PeriodStartDate, s.InitialEquity) },
		func() error { return w.SetCashAndBank(s.Cash, s.Bank) },
		func() error { return w.SetReceivables(s.ReceivablesFromMembers) },
		func() error { return w.SetPayables(s.PayablesToSuppliers) },
		func() error { return w.SetInventory(s.Inventory) },
		func() error { return w.SetMemberDeposits(s.MemberDeposits) },
		func() error { return w.SetMemberLoans(s.MemberLoans) },
	}
	for _, set := range setters {
		if err := set(); err != nil {
			return err
		}
	}
	return nil
}

// SetReason records why an edit is being made.
func (w *Wizard) SetReason(reason string) error {
	if !w.active() {
		return domain.ErrWizardClosed
	}
	w.reason = reason
	return nil
}

// Back returns to the previous step.
func (w *Wizard) Back() {
	if w.step > StepPeriod {
		w.step--
	}
}

// GoTo jumps to step, e.g. from the review page back to a section.
func (w *Wizard) GoTo(step WizardStep) {
	if step >= StepPeriod && step <= StepReview {
		w.step = step
	}
}

func (w *Wizard) next() {
	if w.step < StepReview {
		w.step++
	}
}

// stepErrors keeps only the errors belonging to step; review keeps everything.
func stepErrors(step WizardStep, ve *domain.ValidationError) *domain.ValidationError {
	if step == StepReview {
		return ve
	}
	fields := stepFields[step]
	out := &domain.ValidationError{}
	for _, fe := range ve.Errors {
		for _, f := range fields {
			if fe.Root() == f {
				out.Errors = append(out.Errors, fe)
				break
			}
		}
	}
	return out
}
