package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "budgetledger-cli",
		Short:         "BudgetLedger CLI tool",
		Long:          `A command line interface for the BudgetLedger calendar, schedules and API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BudgetLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(calendarCmd(), scheduleCmd(), ledgerCmd(), migrateCmd())

	return rootCmd
}

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "TARGET2 calendar and due dates",
	}

	easter := &cobra.Command{
		Use:   "easter YEAR",
		Short: "Print the Gregorian Easter Sunday of YEAR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}

			day, err := domain.EasterSunday(year)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), day.Format(domain.DateLayout))
			return nil
		},
	}

	holidays := &cobra.Command{
		Use:   "holidays YEAR",
		Short: "List the TARGET2 holidays of YEAR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}

			list, err := domain.Target2Calendar{}.Holidays(year)
			if err != nil {
				return err
			}

			for _, h := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", h.Date.Format(domain.DateLayout), h.Name)
			}
			return nil
		},
	}

	closed := &cobra.Command{
		Use:   "closed DATE",
		Short: "Report whether TARGET2 is closed on DATE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := domain.ParseDay(args[0])
			if err != nil {
				return err
			}

			isClosed, err := domain.Target2Calendar{}.IsClosed(day)
			if err != nil {
				return err
			}

			state := "open"
			if isClosed {
				state = "closed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", day.Format(domain.DateLayout), state)
			return nil
		},
	}

	var (
		dueDay   int
		dueShift string
		dueFrom  string
	)
	dueDate := &cobra.Command{
		Use:   "due-date",
		Short: "Compute the next payment due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			shift, err := domain.ParseShiftDirection(dueShift)
			if err != nil {
				return err
			}

			schedule, err := domain.NewExpectedPaymentDueDate(dueDay, shift)
			if err != nil {
				return err
			}

			from, err := dayOrToday(dueFrom)
			if err != nil {
				return err
			}

			next, err := schedule.NextDueDate(from)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), next.Format(domain.DateLayout))
			return nil
		},
	}
	dueDate.Flags().IntVar(&dueDay, "day", 0, "Day of month the payment is due (1-28)")
	dueDate.Flags().StringVar(&dueShift, "shift", "none", "Shift on closed days: none, before or after")
	dueDate.Flags().StringVar(&dueFrom, "from", "", "Reference date (YYYY-MM-DD), defaults to today")
	_ = dueDate.MarkFlagRequired("day")

	cmd.AddCommand(easter, holidays, closed, dueDate)
	return cmd
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Recurring schedule helpers",
	}

	var (
		frequency string
		start     string
		end       string
		from      string
		to        string
	)
	occurrences := &cobra.Command{
		Use:   "occurrences",
		Short: "List the dates a schedule produces in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := domain.ParseFrequency(frequency)
			if err != nil {
				return err
			}

			startDay, err := domain.ParseDay(start)
			if err != nil {
				return err
			}

			last, err := domain.ParseDay(to)
			if err != nil {
				return err
			}
			if end != "" {
				endDay, err := domain.ParseDay(end)
				if err != nil {
					return err
				}
				if endDay.Before(last) {
					last = endDay
				}
			}

			first := startDay
			if from != "" {
				if first, err = domain.ParseDay(from); err != nil {
					return err
				}
			}

			if last.Before(startDay) {
				return nil
			}

			dates, err := freq.OccurrencesBetween(startDay, last)
			if err != nil {
				return err
			}

			for _, d := range dates {
				if !d.Before(first) {
					fmt.Fprintln(cmd.OutOrStdout(), d.Format(domain.DateLayout))
				}
			}
			return nil
		},
	}
	occurrences.Flags().StringVar(&frequency, "frequency", "monthly", "weekly, monthly or yearly")
	occurrences.Flags().StringVar(&start, "start", "", "First occurrence (YYYY-MM-DD)")
	occurrences.Flags().StringVar(&end, "end", "", "Optional last day of the schedule")
	occurrences.Flags().StringVar(&from, "from", "", "Window start, defaults to --start")
	occurrences.Flags().StringVar(&to, "to", "", "Window end (YYYY-MM-DD)")
	_ = occurrences.MarkFlagRequired("start")
	_ = occurrences.MarkFlagRequired("to")

	cmd.AddCommand(occurrences)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistency := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConsistency(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(consistency)
	return cmd
}

func migrateCmd() *cobra.Command {
	var (
		databaseURL string
		path        string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.PersistentFlags().StringVar(&path, "path", "migrations", "Migrations directory")

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrations(databaseURL, path, logger)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrationsDown(databaseURL, path, logger)
		},
	}

	cmd.AddCommand(up, down)
	return cmd
}

func checkConsistency(out io.Writer) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result struct {
		Status                string `json:"status"`
		Consistent            bool   `json:"consistent"`
		TransferTotal         string `json:"transfer_total"`
		MalformedTransactions int64  `json:"malformed_transactions"`
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("consistency check FAILED (status: %d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !result.Consistent {
		fmt.Fprintf(out, "Consistency check FAILED\nTransfer total: %s\nMalformed transactions: %d\n",
			result.TransferTotal, result.MalformedTransactions)
		return fmt.Errorf("ledger is inconsistent")
	}

	fmt.Fprintf(out, "Consistency check PASSED\nStatus: %s\n", result.Status)
	return nil
}

func dayOrToday(s string) (time.Time, error) {
	if s == "" {
		return domain.Day(time.Now()), nil
	}
	return domain.ParseDay(s)
}
