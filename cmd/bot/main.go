package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/recrearnolar/recrear_bot/internal/app"
	"github.com/recrearnolar/recrear_bot/internal/calendar"
	"github.com/recrearnolar/recrear_bot/internal/config"
	"github.com/recrearnolar/recrear_bot/internal/controller/formatting"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "recrear-bot",
		Short:         "Recrear no Lar Telegram assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(calendarTokenCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot, background jobs and HTTP endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Sugar().Infow("Starting Recrear no Lar bot",
				"environment", cfg.Environment,
				"token_length", len(cfg.TelegramToken))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.Run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Bot exited with error", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.Storage != config.StoragePostgres {
				return fmt.Errorf("migrate needs STORAGE=%s", config.StoragePostgres)
			}

			storage, err := app.OpenStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			return storage.Migrate(cmd.Context(), logger)
		},
	}
}

func reportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the monthly financial report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			storage, err := app.OpenStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			services := app.NewServices(storage.Repos, calendar.Disabled{}, cfg, time.Now, logger)

			var report *service.MonthlyReport
			if month == "" {
				report, err = services.Reports.PreviousMonth(cmd.Context())
			} else {
				var year int
				var m time.Month
				year, m, err = parseMonthFlag(month)
				if err != nil {
					return err
				}
				report, err = services.Reports.Monthly(cmd.Context(), year, m)
			}
			if err != nil {
				return err
			}

			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month as MM/YYYY (default: previous month)")
	return cmd
}

func calendarTokenCmd() *cobra.Command {
	var raw string

	cmd := &cobra.Command{
		Use:   "calendar-token",
		Short: "Obtain a Google Calendar refresh token",
		Long: "Prints the Google consent URL, reads the returned code from stdin and " +
			"prints the GOOGLE_CREDENTIALS value to use.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw == "" {
				raw = os.Getenv("GOOGLE_CREDENTIALS")
			}
			creds, err := config.ParseGoogleCredentials(raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Open this URL and authorize access:")
			fmt.Fprintln(out, calendar.AuthURL(creds))
			fmt.Fprint(out, "\nPaste the code: ")

			code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return errors.New("empty code")
			}

			withToken, err := calendar.Exchange(cmd.Context(), creds, code)
			if err != nil {
				return err
			}

			data, err := json.Marshal(withToken)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nGOOGLE_CREDENTIALS='%s'\n", data)
			return nil
		},
	}

	cmd.Flags().StringVar(&raw, "credentials", "", "client credentials JSON (default: $GOOGLE_CREDENTIALS)")
	return cmd
}

func load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := app.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func parseMonthFlag(value string) (int, time.Month, error) {
	t, err := time.Parse("1/2006", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --month %q, expected MM/YYYY", value)
	}
	return t.Year(), t.Month(), nil
}

func renderReport(w io.Writer, r *service.MonthlyReport) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Relatório de " + formatting.MonthYear(r.Year, r.Month))
	tw.AppendHeader(table.Row{"Item", "Valor"})

	tw.AppendRow(table.Row{"Orçamentos pagos", formatting.Currency(r.QuoteRevenue)})
	tw.AppendRow(table.Row{"Pacotes pagos", formatting.Currency(r.PackageIncome)})
	tw.AppendRow(table.Row{"Total de receitas", formatting.Currency(r.Revenue())})
	tw.AppendSeparator()

	for _, c := range r.Expenses {
		tw.AppendRow(table.Row{formatting.ExpenseCategory(c.Category).Text, formatting.Currency(c.Total)})
	}
	tw.AppendRow(table.Row{"Total de despesas", formatting.Currency(r.TotalExpenses)})
	tw.AppendSeparator()

	tw.AppendRow(table.Row{"Margem", formatting.Percent(r.Margin()) + "%"})
	tw.AppendFooter(table.Row{"Saldo", formatting.Currency(r.Balance())})
	tw.Render()
}
