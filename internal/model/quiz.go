package model

// IssueQuestionsQuery binds the GET /quiz/questions parameters.
// time_limit is the per-question limit in seconds.
type IssueQuestionsQuery struct {
	BookSource string `form:"book_source" binding:"required,oneof=readable_code programming_principles both"`
	Count      int    `form:"count" binding:"required,min=1,max=50"`
	TimeLimit  int    `form:"time_limit" binding:"required,min=10,max=300"`
}

// PublicQuestion is the client-facing view of a question. It never carries
// the correct option or the explanation.
type PublicQuestion struct {
	QuestionID   string   `json:"question_id"`
	QuestionText string   `json:"question_text"`
	Options      []Option `json:"options"`
}

// IssueQuestionsResponse is the payload for a freshly issued question set.
// TimeLimit is the total for the whole set.
type IssueQuestionsResponse struct {
	Questions []PublicQuestion `json:"questions"`
	TimeLimit int              `json:"time_limit"`
	SessionID string           `json:"session_id"`
}

// Answer is one submitted choice. SelectedOptionID is null for a question the
// user skipped; a skipped question is graded incorrect, never rejected.
type Answer struct {
	QuestionID       string  `json:"question_id" binding:"required"`
	SelectedOptionID *string `json:"selected_option_id"`
}

// SubmitAnswersRequest is the payload for POST /quiz/answers. An empty
// answers list is valid and yields an empty result list.
type SubmitAnswersRequest struct {
	SessionID string   `json:"session_id" binding:"required"`
	Answers   []Answer `json:"answers" binding:"dive"`
}

// Result is the graded outcome for one submitted answer.
type Result struct {
	QuestionID       string   `json:"question_id"`
	Category         string   `json:"category,omitempty"`
	IsCorrect        bool     `json:"is_correct"`
	SelectedOptionID *string  `json:"selected_option_id"`
	CorrectOptionID  string   `json:"correct_option_id"`
	QuestionText     string   `json:"question_text"`
	Options          []Option `json:"options"`
	Explanation      string   `json:"explanation,omitempty"`
}

// SubmitAnswersResponse wraps the graded results, in submission order.
type SubmitAnswersResponse struct {
	Results []Result `json:"results"`
}
