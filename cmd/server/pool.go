package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"surveylab/internal/repository"
)

func newPoolCommand(ctx *commandContext) *cobra.Command {
	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect the question pool",
	}
	poolCmd.AddCommand(newPoolCheckCommand(ctx))
	return poolCmd
}

func newPoolCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every question file in the pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			repo := repository.NewQuestionRepo(cfg.Storage.QuestionsDir, ctx.logger)
			files, err := repo.Scan(cmd.Context())
			if err != nil {
				return err
			}

			rows, bad := poolRows(files)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(poolColumns, rows))
			fmt.Fprintf(cmd.OutOrStdout(), "%d files, %d malformed\n", len(files), bad)

			if bad > 0 {
				return fmt.Errorf("%d malformed question files in %s", bad, repo.Dir())
			}
			return nil
		},
	}
}

func poolRows(files []repository.QuestionFile) ([][]string, int) {
	rows := make([][]string, 0, len(files))
	bad := 0
	for _, f := range files {
		if f.Err != nil {
			bad++
			rows = append(rows, []string{f.Name, "", "", f.Err.Error()})
			continue
		}
		q := f.Question
		rows = append(rows, []string{f.Name, q.ID, fmt.Sprint(uint64(q.Slots())), "ok"})
	}
	return rows, bad
}
