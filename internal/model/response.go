package model

// Keys the server adds to every response record
const (
	ResponseIPKey        = "ip"
	ResponseTimestampKey = "timestamp"
)

// Response is one submitted answer set, stored verbatim as a flat JSON object
type Response map[string]string

// SubmitResult is returned to the client after a response is recorded
type SubmitResult struct {
	Message     string `json:"message"`
	Filename    string `json:"filename"`
	NextPage    string `json:"next_page"`
	RedirectURL string `json:"redirect_url"`
}
