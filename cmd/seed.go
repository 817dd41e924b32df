/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/echovoice/apiserver/config"
	"github.com/echovoice/apiserver/internal/db"
	"github.com/echovoice/apiserver/internal/services"
	"github.com/echovoice/apiserver/internal/storage"
	"github.com/echovoice/apiserver/internal/store"
	"github.com/echovoice/apiserver/types"
	"github.com/spf13/cobra"
)

var seedSamplesDir string

// defaultSamples are the language -> clip rows inserted when the table
// is empty and no local clips are supplied.
var defaultSamples = []types.AudioSample{
	{Language: "english", URL: "/audio/english-sample.mp3"},
	{Language: "arabic", URL: "/audio/arabic-sample.mp3"},
}

// seedCmd inserts the demo audio sample rows. With --samples-dir it
// first uploads each <language>.mp3 found there to the configured
// object storage and records the resulting public URLs instead.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the audio sample table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		ctx := cmd.Context()

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbConn.Close()

		audioService := services.NewAudioService(store.NewAudioRepository(dbConn))

		if seedSamplesDir != "" {
			return seedFromDir(ctx, logger, cfg, audioService, seedSamplesDir)
		}

		count, err := audioService.Count(ctx)
		if err != nil {
			return fmt.Errorf("count samples: %w", err)
		}
		if count > 0 {
			logger.Info("audio samples already present, skipping", slog.Int("count", count))
			return nil
		}

		for _, sample := range defaultSamples {
			if _, err := audioService.Upsert(ctx, sample); err != nil {
				return fmt.Errorf("insert sample %q: %w", sample.Language, err)
			}
			logger.Info("seeded audio sample", slog.String("language", sample.Language))
		}
		return nil
	},
}

func seedFromDir(ctx context.Context, logger *slog.Logger, cfg config.Config, audioService *services.AudioService, dir string) error {
	sampleStore, err := newSampleStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if err := sampleStore.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read samples dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp3") {
			continue
		}
		language := strings.TrimSuffix(entry.Name(), ".mp3")
		path := filepath.Join(dir, entry.Name())

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		info, err := file.Stat()
		if err != nil {
			_ = file.Close()
			return fmt.Errorf("stat %s: %w", path, err)
		}

		key := "samples/" + entry.Name()
		err = sampleStore.Put(ctx, key, file, info.Size(), "audio/mpeg")
		_ = file.Close()
		if err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}

		sample := types.AudioSample{Language: language, URL: sampleStore.URL(key)}
		if _, err := audioService.Upsert(ctx, sample); err != nil {
			return fmt.Errorf("record sample %q: %w", language, err)
		}
		logger.Info("uploaded audio sample",
			slog.String("language", language),
			slog.String("url", sample.URL))
	}
	return nil
}

func newSampleStore(ctx context.Context, cfg config.StorageConfig) (*storage.SampleStore, error) {
	switch cfg.Backend {
	case "minio":
		backend, err := storage.NewMinioStore(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return storage.NewSampleStore(backend), nil
	case "gcs":
		backend, err := storage.NewGCSStore(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return storage.NewSampleStore(backend), nil
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be minio or gcs to upload samples, got %q", cfg.Backend)
	}
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedSamplesDir, "samples-dir", "", "directory of <language>.mp3 clips to upload")
}
