package main

import (
	"log/slog"
	"os"

	"github.com/magabrotheeeer/rental-ledger/internal/cli"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := cli.NewRootCmd(os.Stdout, logger).Execute(); err != nil {
		logger.Error("rentalctl failed", sl.Err(err))
		os.Exit(1)
	}
}
