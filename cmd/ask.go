package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lesson-rag/internal/models"
)

var (
	flagAskCourse string
	flagAskID     int
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question against a lesson index",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&flagAskCourse, "course", "", "Course name")
	askCmd.Flags().IntVar(&flagAskID, "id", 0, "Lesson id")
	_ = askCmd.MarkFlagRequired("course")
	_ = askCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	b, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.close()

	pipeline, err := newPipeline(cfg, b.store)
	if err != nil {
		return err
	}

	answer, err := pipeline.Query(cmd.Context(), models.LessonKey{Course: flagAskCourse, ID: flagAskID}, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
