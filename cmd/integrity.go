package cmd

import (
	"context"

	"table-pack-maker/core/config"
	"table-pack-maker/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd runs every check
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the song database, the pack destination and storage",
	Long: `Runs health checks on what a pack build depends on: the song database schema
(when --db is given), the pack destination directory, and the publishing bucket
(when storage is enabled).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// songdbCheckCmd represents the integrity songdb command
var songdbCheckCmd = &cobra.Command{
	Use:   "songdb",
	Short: "Check the song database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// storageCheckCmd represents the integrity storage command
var storageCheckCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check the publishing bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// destinationCheckCmd represents the integrity destination command
var destinationCheckCmd = &cobra.Command{
	Use:   "destination",
	Short: "Check the pack destination directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

var integrityDBFlag string

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(songdbCheckCmd, storageCheckCmd, destinationCheckCmd)
	integrityCmd.PersistentFlags().StringVar(&integrityDBFlag, "db", "", "Path to the beatoraja songdb (songdata.db)")
}

func runIntegrityChecks(ctx context.Context, runSongDB, runStorage, runDestination bool) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	svc, err := newIntegrityService(cfg, logg)
	if err != nil {
		return err
	}

	// Without --db the songdb check only runs for mysql, where the name comes from config.
	if runSongDB && (integrityDBFlag != "" || !cfg.Database.IsSQLite()) {
		logg.Info("Checking song database schema...")
		report, err := svc.CheckSongDB(integrityDBFlag)
		if err != nil {
			return err
		}
		if report.Matched {
			logg.Info("Song database matches the expected schema.", zap.Int64("songs", report.Songs))
		} else {
			if report.Usable {
				logg.Warn("Song database differs from the expected schema but can be matched against",
					zap.Int64("songs", report.Songs))
			} else {
				logg.Error("Song database cannot be used", zap.String("table", report.Table))
			}
			if len(report.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", report.Table), zap.Strings("columns", report.MissingColumns))
			}
			if len(report.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.String("table", report.Table), zap.Strings("mismatches", report.TypeMismatches))
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	} else if runSongDB {
		logg.Info("Skipping song database check; pass --db to run it.")
	}

	if runDestination {
		logg.Info("Checking pack destination...", zap.String("path", cfg.Pack.Destination))
		report, err := svc.CheckDestination()
		if err != nil {
			return err
		}
		if report.Writable {
			logg.Info("Pack destination is writable.", zap.Bool("exists", report.Exists), zap.Int("packs", report.Packs))
		} else {
			logg.Error("Pack destination is not usable", zap.String("error", report.Error))
		}
	}

	if runStorage {
		if !cfg.Storage.Enabled {
			logg.Info("Storage is disabled; skipping bucket check.")
			return nil
		}
		logg.Info("Checking storage bucket...", zap.String("bucket", cfg.Storage.Bucket))
		report, err := svc.CheckStorage(ctx)
		if err != nil {
			return err
		}
		if report.Exists {
			logg.Info("Bucket is reachable.", zap.Strings("packs", report.Packs))
		} else {
			logg.Warn("Bucket does not exist yet; it is created on first publish.")
		}
	}
	return nil
}

func newIntegrityService(cfg *config.Config, logg *zap.Logger) (*integrity.Service, error) {
	store, err := newStorageClient(cfg)
	if err != nil {
		return nil, err
	}
	return integrity.NewService(store, cfg.Storage, cfg.Database, cfg.Pack.Destination, logg), nil
}
