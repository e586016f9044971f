package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"surveylab/internal/model"
	"surveylab/internal/repository"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print feedback totals and the number of recorded responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			yesNo, err := repository.NewCounterRepo(cfg.Storage.FeedbackFile, model.YesNoCategories(), ctx.logger).Load(cmd.Context())
			if err != nil {
				return err
			}
			stars, err := repository.NewCounterRepo(cfg.Storage.StarFeedbackFile, model.StarCategories(), ctx.logger).Load(cmd.Context())
			if err != nil {
				return err
			}
			count, err := repository.NewResponseRepo(cfg.Storage.ResultsDir).Count(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]column{{Title: "Feedback"}, countColumn}, tallyRows(yesNo, model.YesNoCategories())))
			fmt.Fprintln(out, renderTable([]column{{Title: "Rating"}, countColumn}, tallyRows(stars, model.StarCategories())))
			fmt.Fprintf(out, "%d responses recorded\n", count)
			return nil
		},
	}
}

func tallyRows(t model.Tally, categories []string) [][]string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c, strconv.Itoa(t[c])})
	}
	return rows
}
