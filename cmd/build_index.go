package main

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lesson-rag/internal/helper"
	"lesson-rag/internal/models"
	"lesson-rag/internal/parser"
)

var (
	flagBuildCourse string
	flagBuildIDs    []int
	flagBuildSource string
	flagBuildDryRun bool
)

var buildIndexCmd = &cobra.Command{
	Use:   "build-index",
	Short: "Extract, chunk and embed lesson sources into their indexes",
	Args:  cobra.NoArgs,
	RunE:  runBuildIndex,
}

func init() {
	buildIndexCmd.Flags().StringVar(&flagBuildCourse, "course", "", "Course name")
	buildIndexCmd.Flags().IntSliceVar(&flagBuildIDs, "id", nil, "Lesson id (repeatable)")
	buildIndexCmd.Flags().StringVar(&flagBuildSource, "source", "", "Source path template with {course} and {id}; defaults to the PDF path")
	buildIndexCmd.Flags().BoolVar(&flagBuildDryRun, "dry-run", false, "Print chunks instead of storing them")
	_ = buildIndexCmd.MarkFlagRequired("course")
	_ = buildIndexCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(buildIndexCmd)
}

func runBuildIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source := flagBuildSource
	if source == "" {
		source = cfg.Paths.PDF
	}

	var b *backend
	if !flagBuildDryRun {
		var err error
		if b, err = openBackend(ctx, cfg); err != nil {
			return err
		}
		defer b.close()
	}

	for _, id := range flagBuildIDs {
		key := models.LessonKey{Course: flagBuildCourse, ID: id}
		if err := key.Validate(); err != nil {
			return err
		}

		text, err := parser.ExtractText(key.FormatPath(source))
		if err != nil {
			return err
		}
		chunks, err := parser.Split(text, cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
		if err != nil {
			return err
		}
		log.Info().Str("key", key.String()).Int("chunks", len(chunks)).Msg("Parsed lesson")

		if flagBuildDryRun {
			helper.PrettyPrint(chunks)
			continue
		}
		if err := buildLocked(cmd, b, key, chunks); err != nil {
			return err
		}
	}
	return nil
}

// buildLocked holds a file lock beside the index so two builders never
// write the same lesson at once.
func buildLocked(cmd *cobra.Command, b *backend, key models.LessonKey, chunks []string) error {
	indexPath := key.FormatPath(cfg.Paths.VectorDB)
	if err := helper.CreateFolder(filepath.Dir(indexPath)); err != nil {
		return err
	}

	lockPath := indexPath + ".lock"
	l := flock.New(lockPath)
	locked, err := l.TryLock()
	if err != nil {
		return fmt.Errorf("cannot acquire build lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another build is in progress (lock: %s)", lockPath)
	}
	defer func() { _ = l.Unlock() }()

	if err := b.store.Build(cmd.Context(), key, chunks); err != nil {
		return fmt.Errorf("error building index %s: %w", key, err)
	}
	log.Info().Str("key", key.String()).Str("backend", cfg.Index.Backend).Msg("Index built")
	return nil
}
