package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lukegbenson/lotmetrics/internal/dataset"
	"github.com/lukegbenson/lotmetrics/internal/features"
	"github.com/lukegbenson/lotmetrics/internal/projection"
	"github.com/lukegbenson/lotmetrics/internal/store"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Build the lot feature table",
	Long:  "Loads the boundary and lot datasets, projects them to EPSG:5070, computes per-city features, and writes a GeoJSON feature table.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		data := cfg.Data
		if v, _ := cmd.Flags().GetString("lots"); v != "" {
			data.LotsPath = v
		}
		if v, _ := cmd.Flags().GetString("boundaries"); v != "" {
			data.BoundariesPath = v
		}
		if v, _ := cmd.Flags().GetString("output"); v != "" {
			data.OutputPath = v
		}

		var proj *projection.Albers
		if !data.Projected {
			proj = projection.NewConus()
		}

		var boundaries []features.BoundaryRecord
		var err error
		switch data.BoundariesFormat {
		case "shapefile":
			boundaries, err = dataset.LoadBoundariesShapefile(data.BoundariesPath, data.RegionField, proj)
		default:
			boundaries, err = dataset.LoadBoundaries(data.BoundariesPath, data.RegionField, proj)
		}
		if err != nil {
			// No boundary data means no feature table at all, never a
			// partially-populated one.
			zap.L().Error("no parking boundary data, load this data first", zap.Error(err))
			return eris.Wrap(err, "features: load boundaries")
		}

		lots, err := dataset.LoadLots(data.LotsPath, data.RegionField, proj)
		if err != nil {
			zap.L().Error("no parking lot data, load this data first", zap.Error(err))
			return eris.Wrap(err, "features: load lots")
		}

		builder := &features.Builder{
			Bins:    cfg.Features.OrientationBins,
			Workers: cfg.Features.Workers,
		}
		table, err := builder.Build(ctx, boundaries, lots)
		if err != nil {
			return eris.Wrap(err, "features: build table")
		}

		if err := dataset.WriteFeatures(data.OutputPath, table); err != nil {
			return eris.Wrap(err, "features: write table")
		}

		if cfg.Store.Path != "" {
			if err := persistTable(ctx, table); err != nil {
				return err
			}
		}

		fmt.Printf("Feature table written to %s (%d regions)\n", data.OutputPath, len(table))
		return nil
	},
}

func persistTable(ctx context.Context, table []features.FeatureRecord) error {
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return eris.Wrap(err, "features: open store")
	}
	defer func() { _ = s.Close() }()

	if err := s.Migrate(ctx); err != nil {
		return err
	}

	runID, err := s.SaveTable(ctx, table)
	if err != nil {
		return err
	}

	zap.L().Info("feature table persisted",
		zap.String("store", cfg.Store.Path),
		zap.String("run_id", runID),
	)
	return nil
}

func init() {
	featuresCmd.Flags().String("lots", "", "lot dataset path (overrides config)")
	featuresCmd.Flags().String("boundaries", "", "boundary dataset path (overrides config)")
	featuresCmd.Flags().String("output", "", "output feature table path (overrides config)")
	rootCmd.AddCommand(featuresCmd)
}
