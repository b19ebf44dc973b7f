package models

// RateLimitExceededResponse is the API response when an actor's budget is spent.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"` // seconds
}
