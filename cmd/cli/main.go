package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tobyhaynes/dispatch-rota/internal/config"
	"github.com/tobyhaynes/dispatch-rota/pkg/core/services"
	"github.com/tobyhaynes/dispatch-rota/pkg/db"
	"github.com/tobyhaynes/dispatch-rota/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	database *db.DB
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Dispatch Rota CLI - Generate and inspect staff schedules",
		Long:  `A CLI tool for generating dispatch centre rosters: assigns employees to shifts under coverage, qualification and workload rules, and reports staffing gaps.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(generateScheduleCmd())
	rootCmd.AddCommand(validateScheduleCmd())
	rootCmd.AddCommand(listEmployeesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	app.database, err = db.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Info("Database connected successfully")

	return nil
}

// Command definitions

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.logger.Info("Running migrations")
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Println("\n✓ Migrations applied successfully!")
			return nil
		},
	}
}

func generateScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <start_date> <end_date>",
		Short: "Generate a schedule for the given date range (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, _ := cmd.Flags().GetString("strategy")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.GenerateSchedule(app.ctx, app.database, app.cfg, app.logger, services.GenerateScheduleParams{
				Start:    args[0],
				End:      args[1],
				Strategy: strategy,
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Schedule generated!\n\n")
			fmt.Printf("Schedule ID: %s\n", result.ScheduleID)
			fmt.Printf("Strategy:    %s\n", result.Strategy)
			fmt.Printf("Range:       %s to %s\n",
				result.Schedule.StartDate.Format("2006-01-02"),
				result.Schedule.EndDate.Format("2006-01-02"))
			fmt.Printf("Assignments: %d\n", len(result.Schedule.Assignments))
			fmt.Printf("Gaps:        %d\n\n", len(result.Schedule.Gaps))

			if len(result.Schedule.Gaps) > 0 {
				fmt.Printf("⚠️  Staffing gaps:\n")
				for _, gap := range result.Schedule.Gaps {
					fmt.Printf("  ✗ [%s] missing %d: %s\n", gap.RequirementID, gap.MissingStaff, gap.Details)
				}
				fmt.Println()
			}

			if dryRun {
				fmt.Println("Dry run - schedule was not saved.")
			} else if result.Saved {
				fmt.Println("Schedule saved to database.")
			}

			return nil
		},
	}

	cmd.Flags().String("strategy", "", "Assignment strategy (day-driven or requirement-driven)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func validateScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validateSchedule <schedule_id>",
		Short: "Validate a stored schedule against the current roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ValidateSchedule(app.ctx, app.database, app.logger, args[0])
			if err != nil {
				return err
			}

			if result.Valid {
				fmt.Printf("\n✓ Schedule %s is valid.\n", result.ScheduleID)
				return nil
			}

			fmt.Printf("\n✗ Schedule %s has %d violation(s):\n\n", result.ScheduleID, len(result.Errors))
			for _, verr := range result.Errors {
				fmt.Printf("  [%s] %s: %s\n", verr.Date, verr.Rule, verr.Description)
			}
			fmt.Println()
			return nil
		},
	}
}

func listEmployeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listEmployees",
		Short: "List all employees on the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.database.GetEmployees(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list employees: %w", err)
			}

			app.logger.Info("Employees fetched successfully", zap.Int("count", len(employees)))

			fmt.Printf("\nFound %d employees:\n\n", len(employees))
			for _, e := range employees {
				quals := ""
				if len(e.Qualifications) > 0 {
					quals = fmt.Sprintf(" [%s]", strings.Join(e.Qualifications, ", "))
				}
				fmt.Printf("- %s %s (%s) - %s%s - %d availability window(s)\n",
					e.FirstName,
					e.LastName,
					e.ID,
					e.Role,
					quals,
					len(e.Availability),
				)
			}

			return nil
		},
	}
}
