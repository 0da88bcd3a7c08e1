package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/koperasi/ledger/internal/app"
	"github.com/koperasi/ledger/internal/domain"
	"github.com/koperasi/ledger/internal/infrastructure/config"
	"github.com/koperasi/ledger/internal/infrastructure/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries the persistent flags shared by every command.
type cli struct {
	envFile string
	driver  string
	user    string
	verbose bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "koperasi-ledger",
		Short:         "Koperasi opening balance ledger",
		Long:          `Records the opening balances of a koperasi, posts the balancing journal and keeps the chart of accounts in step.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "Dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&c.driver, "store", "", "Store driver override (memory, file, redis, sqlite, postgres)")
	rootCmd.PersistentFlags().StringVar(&c.user, "user", "", "User recorded on audit logs")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		c.coaCmd(),
		c.openingBalanceCmd(),
		c.journalCmd(),
		c.reconcileCmd(),
	)

	return rootCmd
}

// open loads configuration and wires the application for one command.
func (c *cli) open(ctx context.Context, stderr io.Writer) (*app.App, error) {
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if c.driver != "" {
		cfg.StoreDriver = c.driver
	}
	if c.user != "" {
		cfg.CurrentUser = c.user
	}

	level := cfg.LogLevel
	if c.verbose {
		level = zerolog.LevelDebugValue
	}
	log := logger.New(logger.Config{Level: level, Format: "console", Output: stderr})

	return app.New(ctx, cfg, log)
}

// run adapts fn to a cobra RunE, opening and closing the application around it.
func (c *cli) run(fn func(cmd *cobra.Command, args []string, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := c.open(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		err = fn(cmd, args, a)
		if ve, ok := domain.AsValidationError(err); ok {
			for _, msg := range ve.Messages() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", msg)
			}
		}
		return err
	}
}

func printJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func rule(w io.Writer, width int) {
	fmt.Fprintln(w, strings.Repeat("-", width))
}
