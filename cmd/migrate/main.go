package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"ariga.io/atlas-go-sdk/atlasexec"

	"table-booking/internal/handler/middleware"
	"table-booking/internal/pkg/config"
)

// Applies migrations/ with the atlas CLI, which must be on PATH.
func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	statusOnly := flag.Bool("status", false, "print migration status without applying")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, logger, cfg.DB.BuildDSN(), *dir, *statusOnly); err != nil {
		logger.Error("マイグレーションに失敗しました", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, dsn, dir string, statusOnly bool) error {
	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return err
	}

	if statusOnly {
		st, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{URL: dsn, DirURL: dir})
		if err != nil {
			return err
		}
		logger.Info("マイグレーション状態", "current", st.Current, "next", st.Next, "pending", len(st.Pending))
		return nil
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: dsn, DirURL: dir})
	if err != nil {
		return err
	}
	for _, f := range res.Applied {
		logger.Info("マイグレーション実行完了", "file", f.Name)
	}
	logger.Info("マイグレーションが完了しました", "current", res.Current, "target", res.Target, "applied", len(res.Applied))
	return nil
}
