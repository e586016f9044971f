package model

// Yes/no feedback categories
const (
	FeedbackYes = "yes"
	FeedbackNo  = "no"
)

// Star rating bounds, inclusive
const (
	MinRating = 1
	MaxRating = 5
)

// Tally maps a category to its count. Keys are "yes"/"no" or "1".."5".
type Tally map[string]int

// YesNoCategories lists the keys of the yes/no counter
func YesNoCategories() []string {
	return []string{FeedbackYes, FeedbackNo}
}

// StarCategories lists the keys of the star histogram
func StarCategories() []string {
	return []string{"1", "2", "3", "4", "5"}
}

// FeedbackRequest is the body of POST /api/feedback
type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

// StarFeedbackRequest is the body of POST /api/star-feedback.
// Rating is a pointer so a missing field can be told apart from zero.
type StarFeedbackRequest struct {
	Rating *int `json:"rating"`
}

// TextRequest is the body of the summarize endpoints
type TextRequest struct {
	Data struct {
		Text string `json:"text"`
	} `json:"data"`
}
