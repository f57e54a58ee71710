package model

import "time"

// Communication is a single email or note attached to a project. Body is
// plain text with HTML already stripped by the data source.
type Communication struct {
	Date           time.Time `json:"date"`
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	From           string    `json:"from"`
	SentimentScore int       `json:"sentimentScore"`
}
