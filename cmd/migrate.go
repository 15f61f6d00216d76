package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killallgit/reporadar-api/internal/database"
	"github.com/killallgit/reporadar-api/internal/models"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the search audit database schema.

The audit database records every handled repository search when
audit.enabled is set. These subcommands create, drop and inspect
its tables at database.path.

Available subcommands:
  up      - Create or update the audit tables
  down    - Drop the audit tables
  status  - Show which tables exist and how many rows they hold`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the audit tables",
	Long: `Apply all pending database migrations.

Creates the search audit tables or adds missing columns and indexes.
Running it again is safe.`,
	RunE: runMigrateUp,
}

// migrateDownCmd drops the managed tables
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Drop the audit tables",
	Long: `Drop every table managed by the service.

All recorded searches are deleted. You will be asked to confirm unless
--yes is given.`,
	RunE: runMigrateDown,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of the audit database.

Shows each managed table, whether it exists and how many rows it holds.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateDownCmd.Flags().BoolP("yes", "y", false, "drop without asking for confirmation")
	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

// openMigrationDB opens the configured database without migrating it
func openMigrationDB() (*database.DB, error) {
	if appConfig.Database.Path == "" {
		return nil, fmt.Errorf("database.path is not configured")
	}
	return database.Initialize(appConfig.Database.Path, appConfig.Database.Verbose, logger.L())
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		return printTableStatus(cmd, db)
	}

	if err := db.Migrate(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d table(s) in %s\n", len(models.All()), appConfig.Database.Path)
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")

	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		return printTableStatus(cmd, db)
	}

	if !yes {
		fmt.Fprintf(out, "WARNING: This will drop %d table(s) and every recorded search. Continue? (y/N): ", len(models.All()))
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Migration rollback cancelled")
			return nil
		}
	}

	if err := db.Rollback(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Dropped audit tables")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return printTableStatus(cmd, db)
}

func printTableStatus(cmd *cobra.Command, db *database.DB) error {
	statuses, err := db.MigrationStatus()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Database: %s\n\n", appConfig.Database.Path)

	for _, s := range statuses {
		state := "pending"
		if s.Exists {
			state = fmt.Sprintf("applied (%d rows)", s.Rows)
		}
		fmt.Fprintf(out, "  %-20s %s\n", s.Table, state)
	}
	return nil
}
