package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lesson-rag/internal/models"
)

var (
	flagExportCourse string
	flagExportID     int
	flagExportOut    string
)

var exportIndexCmd = &cobra.Command{
	Use:   "export-index",
	Short: "Write an encrypted copy of a lesson index",
	Args:  cobra.NoArgs,
	RunE:  runExportIndex,
}

func init() {
	exportIndexCmd.Flags().StringVar(&flagExportCourse, "course", "", "Course name")
	exportIndexCmd.Flags().IntVar(&flagExportID, "id", 0, "Lesson id")
	exportIndexCmd.Flags().StringVar(&flagExportOut, "out", "", "Output file")
	_ = exportIndexCmd.MarkFlagRequired("course")
	_ = exportIndexCmd.MarkFlagRequired("id")
	_ = exportIndexCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportIndexCmd)
}

func runExportIndex(cmd *cobra.Command, args []string) error {
	key := models.LessonKey{Course: flagExportCourse, ID: flagExportID}
	if err := key.Validate(); err != nil {
		return err
	}

	b, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.close()
	if b.chromem == nil {
		return errors.New("export-index requires the chromem backend")
	}

	m, err := b.chromem.Open(key)
	if err != nil {
		return err
	}
	if err := m.Export(flagExportOut, cfg.RAG.EncryptionKey); err != nil {
		return fmt.Errorf("error exporting index %s: %w", key, err)
	}
	log.Info().Str("key", key.String()).Str("out", flagExportOut).Msg("Index exported")
	return nil
}
