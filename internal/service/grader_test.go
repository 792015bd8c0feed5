package service

import (
	"testing"

	"github.com/bookquiz/quiz-backend/internal/model"
)

func strptr(s string) *string { return &s }

func gradingSession() *model.SessionRecord {
	return &model.SessionRecord{
		AnswerKey: map[string]model.AnswerKeyEntry{
			"Q1": {
				CorrectOptionID: "A",
				Category:        "readability",
				QuestionText:    "Question one?",
				Options:         []model.Option{{ID: "A", Text: "a"}, {ID: "B", Text: "b"}},
				Explanation:     "Because A.",
			},
			"Q2": {
				CorrectOptionID: "C",
				Category:        "principles",
				QuestionText:    "Question two?",
				Options:         []model.Option{{ID: "C", Text: "c"}, {ID: "D", Text: "d"}},
			},
		},
		ExpiresAt: 1<<62 - 1,
	}
}

func TestGradeCorrectAndIncorrect(t *testing.T) {
	session := gradingSession()
	answers := []model.Answer{
		{QuestionID: "Q1", SelectedOptionID: strptr("A")},
		{QuestionID: "Q2", SelectedOptionID: strptr("D")},
	}

	results := Grade(answers, session)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].IsCorrect {
		t.Error("Q1 with correct option should be correct")
	}
	if results[1].IsCorrect {
		t.Error("Q2 with wrong option should be incorrect")
	}
	if results[0].CorrectOptionID != "A" || results[0].Explanation != "Because A." {
		t.Errorf("Q1 result missing key data: %+v", results[0])
	}
}

func TestGradePreservesSubmissionOrder(t *testing.T) {
	session := gradingSession()
	answers := []model.Answer{
		{QuestionID: "Q2", SelectedOptionID: strptr("C")},
		{QuestionID: "Q1", SelectedOptionID: strptr("B")},
	}

	results := Grade(answers, session)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].QuestionID != "Q2" || results[1].QuestionID != "Q1" {
		t.Errorf("results not in submission order: %s, %s", results[0].QuestionID, results[1].QuestionID)
	}
}

func TestGradeDropsUnknownQuestions(t *testing.T) {
	session := gradingSession()
	answers := []model.Answer{
		{QuestionID: "Q1", SelectedOptionID: strptr("A")},
		{QuestionID: "Q99", SelectedOptionID: strptr("A")},
	}

	results := Grade(answers, session)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].QuestionID != "Q1" {
		t.Errorf("unexpected result for %s", results[0].QuestionID)
	}
}

func TestGradeDuplicatesGradedIndependently(t *testing.T) {
	session := gradingSession()
	answers := []model.Answer{
		{QuestionID: "Q1", SelectedOptionID: strptr("A")},
		{QuestionID: "Q1", SelectedOptionID: strptr("B")},
	}

	results := Grade(answers, session)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].IsCorrect || results[1].IsCorrect {
		t.Errorf("duplicates graded wrong: %v, %v", results[0].IsCorrect, results[1].IsCorrect)
	}
}

func TestGradeNilSelectionIsIncorrect(t *testing.T) {
	session := gradingSession()
	answers := []model.Answer{
		{QuestionID: "Q1", SelectedOptionID: nil},
	}

	results := Grade(answers, session)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].IsCorrect {
		t.Error("nil selection must grade incorrect")
	}
	if results[0].SelectedOptionID != nil {
		t.Error("nil selection must be echoed back as nil")
	}
}

func TestGradeEmptyAnswers(t *testing.T) {
	results := Grade(nil, gradingSession())
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
}
