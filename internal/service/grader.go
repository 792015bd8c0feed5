package service

import (
	"github.com/bookquiz/quiz-backend/internal/model"
)

// Grade scores submitted answers against a session's answer key.
//
// Results keep the input order. Answers for question ids that were never part
// of the session produce no result, duplicate submissions are each graded
// independently, and a nil selection is always incorrect.
func Grade(answers []model.Answer, session *model.SessionRecord) []model.Result {
	results := make([]model.Result, 0, len(answers))

	for _, ans := range answers {
		entry, ok := session.AnswerKey[ans.QuestionID]
		if !ok {
			continue
		}

		correct := ans.SelectedOptionID != nil && *ans.SelectedOptionID == entry.CorrectOptionID

		results = append(results, model.Result{
			QuestionID:       ans.QuestionID,
			Category:         entry.Category,
			IsCorrect:        correct,
			SelectedOptionID: ans.SelectedOptionID,
			CorrectOptionID:  entry.CorrectOptionID,
			QuestionText:     entry.QuestionText,
			Options:          entry.Options,
			Explanation:      entry.Explanation,
		})
	}

	return results
}
