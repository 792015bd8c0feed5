package model

// AnswerKeyEntry holds the grading and display data kept for one question
// that was offered in a session.
type AnswerKeyEntry struct {
	CorrectOptionID string   `json:"correct_option_id"`
	Category        string   `json:"category,omitempty"`
	QuestionText    string   `json:"question_text"`
	Options         []Option `json:"options"`
	Explanation     string   `json:"explanation,omitempty"`
}

// SessionRecord is the denormalized answer key persisted per quiz attempt.
// Written once at session creation, read during answer submission, and never
// mutated. ExpiresAt is an absolute epoch-second timestamp; the store's own
// TTL handles garbage collection.
type SessionRecord struct {
	AnswerKey map[string]AnswerKeyEntry `json:"answer_key"`
	ExpiresAt int64                     `json:"expires_at"`
}
