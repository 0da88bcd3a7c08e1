package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/koperasi/ledger/internal/app"
	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/ledger"
	"github.com/koperasi/ledger/internal/usecase"
)

func (c *cli) coaCmd() *cobra.Command {
	coaCmd := &cobra.Command{
		Use:   "coa",
		Short: "Chart of accounts operations",
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Add the role accounts missing from the chart",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			accounts, added, err := a.Accounts.SeedDefaults(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d accounts\n", added)
			printAccounts(cmd.OutOrStdout(), accounts)
			return nil
		}),
	}

	var accountType string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with their balances",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			input := usecase.ListAccountsInput{Limit: 1000}
			if accountType != "" {
				t, ok := domain.ParseAccountType(accountType)
				if !ok {
					return fmt.Errorf("unknown account type %q", accountType)
				}
				input.Type = t
			}

			accounts, err := a.Accounts.ListAccounts(cmd.Context(), input)
			if err != nil {
				return err
			}
			printAccounts(cmd.OutOrStdout(), accounts)
			return nil
		}),
	}
	listCmd.Flags().StringVar(&accountType, "type", "", "Only list accounts of this type (asset, liability, equity, revenue, expense)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check that assets equal liabilities plus equity",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			result, err := a.Accounts.CheckEquation(cmd.Context())
			if err != nil {
				return err
			}
			printEquation(cmd.OutOrStdout(), result)
			if !result.IsValid {
				return domain.ErrAccountingEquation
			}
			return nil
		}),
	}

	coaCmd.AddCommand(seedCmd, listCmd, checkCmd)
	return coaCmd
}

func (c *cli) openingBalanceCmd() *cobra.Command {
	obCmd := &cobra.Command{
		Use:     "opening-balance",
		Aliases: []string{"saldo-awal"},
		Short:   "Opening balance operations",
	}

	var (
		file          string
		dryRun        bool
		reason        string
		confirmUnlock bool
		asJSON        bool
		action        string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Record the opening balance of a new period",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			s, err := readSnapshot(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			w := a.OpeningBalance.StartCreate(cmd.Context())
			if err := w.Fill(s); err != nil {
				return err
			}
			return submit(cmd, a, w, dryRun)
		}),
	}
	createCmd.Flags().StringVarP(&file, "file", "f", "", "Snapshot JSON file, - for stdin")
	createCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the journal without saving")
	createCmd.MarkFlagRequired("file")

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Correct the active opening balance",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			s, err := readSnapshot(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			w, err := a.OpeningBalance.StartEdit(cmd.Context())
			if err != nil {
				return err
			}
			if w.RequiresUnlock() {
				if !confirmUnlock {
					return fmt.Errorf("%w (pass --confirm-unlock)", domain.ErrUnlockRequired)
				}
				if err := w.ConfirmUnlock(); err != nil {
					return err
				}
			}
			if err := w.Fill(s); err != nil {
				return err
			}
			if err := w.SetReason(reason); err != nil {
				return err
			}
			return submit(cmd, a, w, dryRun)
		}),
	}
	editCmd.Flags().StringVarP(&file, "file", "f", "", "Snapshot JSON file, - for stdin")
	editCmd.Flags().StringVar(&reason, "reason", "", "Why the opening balance is corrected")
	editCmd.Flags().BoolVar(&confirmUnlock, "confirm-unlock", false, "Confirm editing a locked opening balance")
	editCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the correction journal without saving")
	editCmd.MarkFlagRequired("file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active opening balance",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			s, err := a.OpeningBalance.Current(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				printJSON(cmd.OutOrStdout(), s)
				return nil
			}
			printSnapshot(cmd.OutOrStdout(), s)
			return nil
		}),
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")

	lockCmd := &cobra.Command{
		Use:   "lock",
		Short: "Lock the active opening balance",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			s, err := a.OpeningBalance.Lock(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opening balance %s locked by %s\n", s.PeriodStartDate, s.LockedBy)
			return nil
		}),
	}

	unlockCmd := &cobra.Command{
		Use:   "unlock",
		Short: "Unlock the active opening balance",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			s, err := a.OpeningBalance.Unlock(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opening balance %s unlocked\n", s.PeriodStartDate)
			return nil
		}),
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List archived opening balances",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			history, err := a.OpeningBalance.History(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(history) == 0 {
				fmt.Fprintln(out, "No archived opening balances")
				return nil
			}
			fmt.Fprintf(out, "%-28s %-12s %-8s %20s\n", "ID", "PERIOD", "REV", "NET ASSETS")
			rule(out, 71)
			for _, s := range history {
				fmt.Fprintf(out, "%-28s %-12s %-8d %20s\n", s.ID, s.PeriodStartDate, s.Revision, s.Totals().NetAssets().StringFixed(2))
			}
			return nil
		}),
	}

	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the opening balance audit trail",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			logs, err := a.OpeningBalance.AuditTrail(cmd.Context(), domain.AuditFilter{Action: domain.AuditAction(action)})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range logs {
				fmt.Fprintf(out, "%s  %-24s %-12s %s\n", l.CreatedAt.Format("2006-01-02 15:04:05"), l.Action, truncate(l.UserID, 12), l.Reason)
			}
			return nil
		}),
	}
	auditCmd.Flags().StringVar(&action, "action", "", "Only show this action (e.g. opening_balance.correct)")

	obCmd.AddCommand(createCmd, editCmd, showCmd, lockCmd, unlockCmd, historyCmd, auditCmd)
	return obCmd
}

func (c *cli) journalCmd() *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "General journal operations",
	}

	var input usecase.ListJournalsInput
	var kind string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journals, newest first",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			input.Kind = domain.JournalKind(kind)
			journals, err := a.Journals.ListJournals(cmd.Context(), input)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, j := range journals {
				printJournal(out, j)
			}
			if len(journals) == 0 {
				fmt.Fprintln(out, "No journals")
			}
			return nil
		}),
	}
	listCmd.Flags().StringVar(&kind, "kind", "", "Only list journals of this kind (opening, correction)")
	listCmd.Flags().StringVar(&input.Reference, "reference", "", "Only list journals of this snapshot ID")
	listCmd.Flags().IntVar(&input.Limit, "limit", usecase.DefaultJournalPageSize, "Maximum number of journals")
	listCmd.Flags().IntVar(&input.Offset, "offset", 0, "Number of journals to skip")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every journal balances",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			if _, err := a.Journals.CheckJournals(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All journals balanced")
			return nil
		}),
	}

	journalCmd.AddCommand(listCmd, checkCmd)
	return journalCmd
}

func (c *cli) reconcileCmd() *cobra.Command {
	var account string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare stored balances with the active journals",
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			out := cmd.OutOrStdout()
			if account != "" {
				result, err := a.Reconciliation.ReconcileAccount(cmd.Context(), account)
				if err != nil {
					return err
				}
				printJSON(out, result)
				return nil
			}

			report, err := a.Reconciliation.GenerateReconciliationReport(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				printJSON(out, report)
			} else {
				fmt.Fprintf(out, "Reconciled %d of %d accounts\n", report.ReconciledAccounts, report.TotalAccounts)
				for _, d := range report.Discrepancies {
					fmt.Fprintf(out, "  %-8s recorded %s, journals %s, difference %s\n",
						d.AccountCode, d.RecordedBalance.StringFixed(2), d.CalculatedBalance.StringFixed(2), d.Difference.StringFixed(2))
				}
				printEquation(out, report.Equation)
			}
			if len(report.Discrepancies) > 0 || !report.LedgerConsistent {
				return errors.New("ledger does not reconcile")
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&account, "account", "", "Reconcile a single account code")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func submit(cmd *cobra.Command, a *app.App, w *usecase.Wizard, dryRun bool) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if dryRun {
		preview, err := a.OpeningBalance.Preview(ctx, w)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s journal (not saved)\n", preview.Kind)
		printEntries(out, preview.Entries)
		fmt.Fprintln(out, preview.Balance.Message)
		a.OpeningBalance.Abandon(w)
		return nil
	}

	result, err := a.OpeningBalance.Submit(ctx, w)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Opening balance %s saved (revision %d)\n", result.Snapshot.PeriodStartDate, result.Snapshot.Revision)
	if result.Journal != nil {
		printJournal(out, result.Journal)
	} else {
		fmt.Fprintln(out, "No changes to post")
	}
	printEquation(out, result.Equation)
	return nil
}

func readSnapshot(stdin io.Reader, path string) (*domain.OpeningBalanceSnapshot, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var s domain.OpeningBalanceSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &s, nil
}

func printAccounts(w io.Writer, accounts []domain.Account) {
	fmt.Fprintf(w, "%-8s %-28s %-10s %20s\n", "CODE", "NAME", "TYPE", "BALANCE")
	rule(w, 69)
	for _, a := range accounts {
		fmt.Fprintf(w, "%-8s %-28s %-10s %20s\n", a.Code, truncate(a.Name, 28), a.Type, a.Balance.StringFixed(2))
	}
}

func printEntries(w io.Writer, entries []domain.JournalEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "  %-8s %18s %18s\n", e.Account, e.Debit.StringFixed(2), e.Credit.StringFixed(2))
	}
}

func printJournal(w io.Writer, j *domain.Journal) {
	fmt.Fprintf(w, "%s  %s  %s\n", j.Date, j.ID, j.Description)
	printEntries(w, j.Entries)
}

func printEquation(w io.Writer, r ledger.EquationResult) {
	fmt.Fprintf(w, "Assets %s = Liabilities %s + Equity %s: %s\n",
		r.TotalAsset.StringFixed(2), r.TotalLiability.StringFixed(2), r.TotalEquity.StringFixed(2), r.Message)
}

func printSnapshot(w io.Writer, s *domain.OpeningBalanceSnapshot) {
	status := "open"
	if s.Locked {
		status = "locked by " + s.LockedBy
	}
	fmt.Fprintf(w, "Period %s  revision %d  %s\n", s.PeriodStartDate, s.Revision, status)
	rule(w, 40)
	totals := s.Totals()
	for _, spec := range domain.Roles {
		if spec.Role == domain.RoleOpeningEquity {
			continue
		}
		fmt.Fprintf(w, "%-20s %19s\n", spec.Role, totals.Get(spec.Role).StringFixed(2))
	}
	rule(w, 40)
	fmt.Fprintf(w, "%-20s %19s\n", "net_assets", totals.NetAssets().StringFixed(2))
}
