package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"surveylab/internal/model"
)

// topic is one sample page; its position in the pool picks its slot
type topic struct {
	Name  string
	Text  string
	Items [5]string
}

var topics = []topic{
	{"commute", "How do you usually get to work or school?", [5]string{"I enjoy my commute", "My commute is predictable", "I would switch transport if I could", "Cost matters more than speed", "I use the time productively"}},
	{"reading", "Tell us about your reading habits.", [5]string{"I read every day", "I prefer printed books", "I finish most books I start", "I read mostly non-fiction", "I discuss books with others"}},
	{"food", "Think about the meals you had this week.", [5]string{"I cook at home most days", "I plan meals ahead", "I try new recipes often", "Price drives my choices", "I eat with others most days"}},
	{"sleep", "How well have you been sleeping?", [5]string{"I sleep at regular times", "I wake up rested", "Screens keep me awake", "I nap during the day", "Noise disturbs my sleep"}},
	{"work", "Describe a typical working day.", [5]string{"My tasks are clearly defined", "I have enough focus time", "Meetings are useful", "I can ask for help easily", "I learn something new each week"}},
	{"exercise", "How do you stay active?", [5]string{"I exercise several times a week", "I prefer exercising outdoors", "I track my activity", "I exercise with friends", "I would like to do more"}},
	{"media", "Which media do you follow?", [5]string{"I read news daily", "I trust most sources I follow", "I listen to podcasts", "I avoid social media", "I pay for at least one subscription"}},
	{"travel", "Think about your last trip.", [5]string{"I planned it well ahead", "I travelled with others", "Cost was the deciding factor", "I would go back", "I prefer trips close to home"}},
}

func questionFor(slot int, t topic) model.Question {
	return model.Question{
		ID:   model.Mask(1 << (model.MaskWidth - 1 - slot)).String(),
		Text: t.Text,
		Q1_1: t.Items[0],
		Q1_2: t.Items[1],
		Q1_3: t.Items[2],
		Q1_4: t.Items[3],
		Q1_5: t.Items[4],
		Q2:   "What stood out to you most about " + t.Name + "?",
		Q3:   "What would you change?",
		Q4:   "Describe a recent example.",
		Q5:   "Anything else you would like to add?",
	}
}

func seed(w io.Writer, dir string, force bool) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	written := 0
	for i, t := range topics {
		q := questionFor(i, t)
		data, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return written, err
		}

		name := filepath.Join(dir, fmt.Sprintf("%d_%s.json", i+1, t.Name))
		f, err := os.OpenFile(name, flags, 0o644)
		if errors.Is(err, fs.ErrExist) {
			fmt.Fprintf(w, "skipping %s (exists, use --force to overwrite)\n", name)
			continue
		}
		if err != nil {
			return written, err
		}
		if _, err := f.Write(append(data, '\n')); err != nil {
			f.Close()
			return written, err
		}
		if err := f.Close(); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func newSeedCommand() *cobra.Command {
	var dir string
	var force bool

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Write a sample question pool",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := seed(cmd.OutOrStdout(), dir, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d question files to %s\n", n, dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "json", "Questions directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func main() {
	if err := newSeedCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
