package model

import (
	"fmt"
	"strings"
)

// Question is one page of the survey, loaded from a JSON file in the pool
type Question struct {
	ID   string `json:"id"` // 8-digit bitstring, one set bit per occupied slot
	Text string `json:"text"`

	// Q1 is a five-part item, Q2-Q5 are single prompts
	Q1_1 string `json:"q1_1"`
	Q1_2 string `json:"q1_2"`
	Q1_3 string `json:"q1_3"`
	Q1_4 string `json:"q1_4"`
	Q1_5 string `json:"q1_5"`
	Q2   string `json:"q2"`
	Q3   string `json:"q3"`
	Q4   string `json:"q4"`
	Q5   string `json:"q5"`

	// Source is the file the question was loaded from
	Source string `json:"-"`
}

// Slots returns the numeric value of the question id.
// Call Validate first; an unparsable id yields zero.
func (q *Question) Slots() Mask {
	m, _ := ParseMask(q.ID)
	return m
}

// Validate checks that every field is present and the id is exactly 8 binary digits
func (q *Question) Validate() error {
	if len(q.ID) != MaskWidth {
		return fmt.Errorf("id %q must be %d binary digits", q.ID, MaskWidth)
	}
	if _, err := ParseMask(q.ID); err != nil {
		return fmt.Errorf("id: %w", err)
	}

	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"text", q.Text},
		{"q1_1", q.Q1_1}, {"q1_2", q.Q1_2}, {"q1_3", q.Q1_3}, {"q1_4", q.Q1_4}, {"q1_5", q.Q1_5},
		{"q2", q.Q2}, {"q3", q.Q3}, {"q4", q.Q4}, {"q5", q.Q5},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
