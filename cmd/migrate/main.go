package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/config"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/logger"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/migration"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/migrations"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

type options struct {
	path     string
	logLevel string
	log      *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the pricing database schema",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			log, err := logger.New(logger.Config{
				Level:      opts.logLevel,
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.path, "path", "", "migrations directory (default: SQL compiled into the binary)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newUpCommand(opts),
		newDownCommand(opts),
		newStepCommand(opts),
		newVersionCommand(opts),
		newForceCommand(opts),
		newCreateCommand(opts),
		newListCommand(opts),
	)
	return root
}

// withMigrator connects to Postgres and hands a migrator to fn
func withMigrator(opts *options, fn func(m *migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		return fmt.Errorf("versioned migrations target postgres; sqlite databases are auto-migrated by the server")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := migration.New(db, opts.path, opts.log)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			opts.log.Warn("Error closing migrator", zap.Error(err))
		}
	}()

	return fn(m)
}

func newUpCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrator(opts, func(m *migration.Migrator) error {
				return m.Up()
			})
		},
	}
}

func newDownCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrator(opts, func(m *migration.Migrator) error {
				return m.Down()
			})
		},
	}
}

func newStepCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "step <n>",
		Short: "Apply n migrations (negative n rolls back)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return withMigrator(opts, func(m *migration.Migrator) error {
				return m.Steps(n)
			})
		},
	}
}

func newVersionCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrator(opts, func(m *migration.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					opts.log.Info("No migrations applied")
					return nil
				}
				opts.log.Info("Current migration version",
					zap.Uint("version", version),
					zap.Bool("dirty", dirty),
				)
				return nil
			})
		},
	}
}

func newForceCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Set the schema version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			opts.log.Warn("Forcing migration version - use with caution!")
			return withMigrator(opts, func(m *migration.Migrator) error {
				return m.Force(version)
			})
		},
	}
}

func newCreateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Create an empty up/down migration pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := opts.path
			if dir == "" {
				dir = defaultMigrationsDir
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}

			mf, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return err
			}
			opts.log.Info("Migration created",
				zap.Uint("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	}
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var fsys fs.FS = migrations.FS
			if opts.path != "" {
				fsys = os.DirFS(opts.path)
			}

			files, err := migration.ListMigrations(fsys)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				opts.log.Info("No migrations found")
				return nil
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "  %06d  %s\n", f.Version, f.Name)
			}
			return nil
		},
	}
}
