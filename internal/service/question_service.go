package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bookquiz/quiz-backend/internal/model"
)

// Domain Errors
var (
	ErrNoQuestions      = errors.New("no questions available for the requested source")
	ErrNoValidQuestions = errors.New("none of the selected questions could be loaded")
)

// QuestionStore is the question pool contract used by the sampler.
type QuestionStore interface {
	ListQuestionIDs(ctx context.Context, category string, afterID string, limit int) ([]string, error)
	FetchByIDs(ctx context.Context, ids []string) ([]model.QuestionRow, error)
}

// QuestionService draws bounded random question sets from the pool.
type QuestionService struct {
	store    QuestionStore
	pageSize int
	log      zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(store QuestionStore, pageSize int, log zerolog.Logger) *QuestionService {
	if pageSize < 1 {
		pageSize = 100
	}
	return &QuestionService{
		store:    store,
		pageSize: pageSize,
		log:      log.With().Str("component", "question_service").Logger(),
	}
}

// resolveBookSource maps the request selector onto concrete category tags.
func resolveBookSource(selector string) []string {
	if selector == model.BookSourceAll {
		return model.CategoryTags
	}
	return []string{selector}
}

// Sample returns up to count validated question records drawn uniformly at
// random, without replacement, from the selector's category pools.
//
// Fewer than count records is not an error: a short pool and per-record
// validation failures both degrade the set and are logged as warnings. Only
// an empty pool (ErrNoQuestions) or a fully failed batch (ErrNoValidQuestions)
// aborts the request.
func (s *QuestionService) Sample(ctx context.Context, bookSource string, count int) ([]model.QuestionRecord, error) {
	tags := resolveBookSource(bookSource)

	// Fan out one id listing per category and join before drawing. A uniform
	// draw is only valid once the whole pool is known.
	idLists := make([][]string, len(tags))
	listErrs := make([]error, len(tags))

	var wg sync.WaitGroup
	for i, tag := range tags {
		wg.Add(1)
		go func(i int, tag string) {
			defer wg.Done()
			idLists[i], listErrs[i] = s.listAllIDs(ctx, tag)
		}(i, tag)
	}
	wg.Wait()

	for _, err := range listErrs {
		if err != nil {
			return nil, fmt.Errorf("list question ids: %w", err)
		}
	}

	// Union with dedup. Tags should never share an id, but a duplicate must
	// not get two slots in the draw.
	seen := make(map[string]struct{})
	var pool []string
	for _, ids := range idLists {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			pool = append(pool, id)
		}
	}

	if len(pool) == 0 {
		return nil, ErrNoQuestions
	}

	n := count
	if len(pool) < n {
		n = len(pool)
		s.log.Warn().
			Str("book_source", bookSource).
			Int("requested", count).
			Int("available", len(pool)).
			Msg("Pool smaller than requested count, continuing with fewer questions")
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	selected := pool[:n]

	rows, err := s.store.FetchByIDs(ctx, selected)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	if missing := len(selected) - len(rows); missing > 0 {
		s.log.Warn().
			Int("missing", missing).
			Msg("Some selected question ids had no record")
	}

	records := make([]model.QuestionRecord, 0, len(rows))
	for i := range rows {
		rec, err := parseQuestionRow(&rows[i])
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("question_id", rows[i].QuestionID).
				Msg("Dropping invalid question record")
			continue
		}
		records = append(records, *rec)
	}

	if len(records) == 0 {
		return nil, ErrNoValidQuestions
	}
	return records, nil
}

// listAllIDs pages through a category's id index until exhaustion. Sampling
// from a partial listing would bias the draw, so every page is accumulated
// before returning.
func (s *QuestionService) listAllIDs(ctx context.Context, tag string) ([]string, error) {
	var all []string
	afterID := ""
	for {
		page, err := s.store.ListQuestionIDs(ctx, tag, afterID, s.pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < s.pageSize {
			return all, nil
		}
		afterID = page[len(page)-1]
	}
}

// parseQuestionRow validates one stored row into a QuestionRecord.
func parseQuestionRow(row *model.QuestionRow) (*model.QuestionRecord, error) {
	if row.QuestionID == "" || row.QuestionText == "" || row.CorrectOptionID == "" {
		return nil, errors.New("missing required field")
	}

	var options []model.Option
	if err := json.Unmarshal(row.Options, &options); err != nil {
		return nil, fmt.Errorf("malformed options: %w", err)
	}

	if len(options) > 0 {
		found := false
		for _, o := range options {
			if o.ID == row.CorrectOptionID {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.New("correct option id not among options")
		}
	}

	rec := &model.QuestionRecord{
		QuestionID:      row.QuestionID,
		CategoryTag:     row.CategoryTag,
		QuestionText:    row.QuestionText,
		Options:         options,
		CorrectOptionID: row.CorrectOptionID,
	}
	if row.Category != nil {
		rec.Category = *row.Category
	}
	if row.Explanation != nil {
		rec.Explanation = *row.Explanation
	}
	return rec, nil
}

// ShuffleOptions permutes each record's options in place, uniformly at
// random. Correctness is tracked by option id, so the answer key is
// unaffected by the reordering.
func (s *QuestionService) ShuffleOptions(records []model.QuestionRecord) {
	for i := range records {
		opts := records[i].Options
		if len(opts) < 2 {
			continue
		}
		rand.Shuffle(len(opts), func(a, b int) {
			opts[a], opts[b] = opts[b], opts[a]
		})
	}
}
