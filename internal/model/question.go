package model

import "encoding/json"

// BookSource values accepted by the quiz API. Each concrete source is also
// the partition tag of its question pool; BookSourceAll unions every pool.
const (
	BookSourceReadableCode          = "readable_code"
	BookSourceProgrammingPrinciples = "programming_principles"
	BookSourceAll                   = "both"
)

// CategoryTags lists every concrete pool partition.
var CategoryTags = []string{BookSourceReadableCode, BookSourceProgrammingPrinciples}

// Option is a single answer choice. The id is stable per question; only the
// display order changes when options are shuffled.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionRow is a question as scanned from the pool table. Options stay raw
// at this boundary; schema validation happens per item in the sampler so one
// malformed record cannot fail a whole batch.
type QuestionRow struct {
	QuestionID      string
	CategoryTag     string
	Category        *string
	QuestionText    string
	Options         json.RawMessage
	CorrectOptionID string
	Explanation     *string
}

// QuestionRecord is a fully validated question from the pool.
type QuestionRecord struct {
	QuestionID      string   `json:"question_id"`
	CategoryTag     string   `json:"category_tag"`
	Category        string   `json:"category,omitempty"`
	QuestionText    string   `json:"question_text"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correct_option_id"`
	Explanation     string   `json:"explanation,omitempty"`
}
