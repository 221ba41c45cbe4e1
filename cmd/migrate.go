package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/spf13/cobra"
)

type migrateOptions struct {
	dir      string
	atlasBin string
	dryRun   bool
	timeout  time.Duration
}

func newMigrateCommand() *cobra.Command {
	opts := migrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations with atlas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "migrations", "migration directory")
	cmd.PersistentFlags().StringVar(&opts.atlasBin, "atlas", "atlas", "atlas binary")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall timeout")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print pending statements without executing them")

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrateStatus(cmd.Context(), opts)
		},
	})

	return cmd
}

func newAtlasClient(opts migrateOptions) (*atlasexec.Client, string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, "", errs.Wrap(err, "resolve migration dir")
	}
	client, err := atlasexec.NewClient(dir, opts.atlasBin)
	if err != nil {
		return nil, "", errs.Wrap(err, "init atlas client")
	}
	return client, cfg.DB.BuildDSN(), nil
}

func runMigrate(ctx context.Context, opts migrateOptions) error {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	client, dsn, err := newAtlasClient(opts)
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dsn,
		DirURL: "file://.",
		DryRun: opts.dryRun,
	})
	if err != nil {
		return errs.Wrap(err, "apply migrations")
	}

	for _, f := range res.Applied {
		slog.Info("migration applied", "version", f.Version, "name", f.Name)
	}
	slog.Info("migrations complete", "current", res.Current, "target", res.Target, "applied", len(res.Applied))
	return nil
}

func runMigrateStatus(ctx context.Context, opts migrateOptions) error {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	client, dsn, err := newAtlasClient(opts)
	if err != nil {
		return err
	}

	res, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{
		URL:    dsn,
		DirURL: "file://.",
	})
	if err != nil {
		return errs.Wrap(err, "read migration status")
	}

	fmt.Printf("status:  %s\ncurrent: %s\nnext:    %s\npending: %d\n", res.Status, res.Current, res.Next, len(res.Pending))
	return nil
}
