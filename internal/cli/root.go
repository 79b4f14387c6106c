// Package cli реализует служебную утилиту rentalctl: миграции схемы,
// просмотр напоминаний и штрафов, ручной запуск рассылки напоминаний.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/rental-ledger/internal/config"
)

type runner struct {
	out        io.Writer
	log        *slog.Logger
	configPath string
	cfg        *config.Config
}

// NewRootCmd собирает дерево команд. Вывод команд пишется в out.
func NewRootCmd(out io.Writer, log *slog.Logger) *cobra.Command {
	r := &runner{out: out, log: log}

	root := &cobra.Command{
		Use:           "rentalctl",
		Short:         "Служебные команды учёта аренды",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return r.loadConfig()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&r.configPath, "config", "c", os.Getenv("CONFIG_PATH"), "путь к yaml-конфигу")

	root.AddCommand(
		r.migrateCmd(),
		r.alertsCmd(),
		r.penaltyCmd(),
		r.remindCmd(),
	)
	return root
}

func (r *runner) loadConfig() error {
	if r.configPath == "" {
		return fmt.Errorf("config path is not set: use --config or CONFIG_PATH")
	}
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return err
	}
	r.cfg = cfg
	return nil
}

func (r *runner) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
