package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookquiz/quiz-backend/internal/model"
)

// QuestionRepository handles access to the question pool. The serving path
// only ever reads; writes exist for seed tooling.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListQuestionIDs returns up to limit question ids for a category, strictly
// after afterID in id order. An empty afterID starts from the beginning.
// Callers page until a short page comes back.
func (r *QuestionRepository) ListQuestionIDs(ctx context.Context, category string, afterID string, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id FROM quiz_questions
		 WHERE category_tag = $1 AND question_id > $2
		 ORDER BY question_id
		 LIMIT $3`, category, afterID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FetchByIDs bulk-loads question rows for the given ids in a single query.
// Ids without a matching row are simply absent from the result; the caller
// decides how to treat the shortfall.
func (r *QuestionRepository) FetchByIDs(ctx context.Context, ids []string) ([]model.QuestionRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT question_id, category_tag, category, question_text, options, correct_option_id, explanation
		 FROM quiz_questions
		 WHERE question_id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.QuestionRow
	for rows.Next() {
		var q model.QuestionRow
		if err := rows.Scan(&q.QuestionID, &q.CategoryTag, &q.Category, &q.QuestionText, &q.Options, &q.CorrectOptionID, &q.Explanation); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// UpsertQuestion inserts or replaces a pool record. Used by seed tooling;
// content authoring is otherwise external to this system.
func (r *QuestionRepository) UpsertQuestion(ctx context.Context, q *model.QuestionRecord) error {
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO quiz_questions (question_id, category_tag, category, question_text, options, correct_option_id, explanation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (question_id) DO UPDATE SET
		   category_tag = EXCLUDED.category_tag,
		   category = EXCLUDED.category,
		   question_text = EXCLUDED.question_text,
		   options = EXCLUDED.options,
		   correct_option_id = EXCLUDED.correct_option_id,
		   explanation = EXCLUDED.explanation`,
		q.QuestionID, q.CategoryTag, q.Category, q.QuestionText, optionsJSON, q.CorrectOptionID, q.Explanation,
	)
	return err
}
