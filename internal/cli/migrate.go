package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/rental-ledger/internal/migrations"
	"github.com/magabrotheeeer/rental-ledger/internal/storage/repository"
)

func (r *runner) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Управление схемой базы данных",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Откатить последние миграции",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			db, err := repository.New(r.cfg.StorageConnectionString)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			if err := migrations.Down(db.DB, r.cfg.MigrationsPath, steps); err != nil {
				return err
			}
			fmt.Fprintf(r.out, "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "сколько миграций откатить")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Применить все миграции",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := repository.New(r.cfg.StorageConnectionString)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				if err := migrations.Run(db.DB, r.cfg.MigrationsPath); err != nil {
					return err
				}
				fmt.Fprintln(r.out, "migrations applied")
				return nil
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Показать текущую версию схемы",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := repository.New(r.cfg.StorageConnectionString)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				version, dirty, err := migrations.Version(db.DB, r.cfg.MigrationsPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(r.out, "version %d, dirty %t\n", version, dirty)
				return nil
			},
		},
	)
	return cmd
}
