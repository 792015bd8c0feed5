package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bookquiz/quiz-backend/internal/model"
)

// fakeQuestionStore serves ids and rows from memory with real keyset paging
// semantics so the sampler's pagination loop is exercised for real.
type fakeQuestionStore struct {
	byTag   map[string][]string
	rows    map[string]model.QuestionRow
	listErr error
}

func (f *fakeQuestionStore) ListQuestionIDs(_ context.Context, category string, afterID string, limit int) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := f.byTag[category]
	start := sort.SearchStrings(ids, afterID)
	if start < len(ids) && ids[start] == afterID {
		start++
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}
	return append([]string(nil), ids[start:end]...), nil
}

func (f *fakeQuestionStore) FetchByIDs(_ context.Context, ids []string) ([]model.QuestionRow, error) {
	var rows []model.QuestionRow
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func validRow(id, tag string) model.QuestionRow {
	opts, _ := json.Marshal([]model.Option{
		{ID: "A", Text: "first"},
		{ID: "B", Text: "second"},
		{ID: "C", Text: "third"},
	})
	return model.QuestionRow{
		QuestionID:      id,
		CategoryTag:     tag,
		QuestionText:    "What is " + id + "?",
		Options:         opts,
		CorrectOptionID: "A",
	}
}

func newFakeStore(idsPerTag map[string][]string) *fakeQuestionStore {
	f := &fakeQuestionStore{byTag: map[string][]string{}, rows: map[string]model.QuestionRow{}}
	for tag, ids := range idsPerTag {
		sorted := append([]string(nil), ids...)
		sort.Strings(sorted)
		f.byTag[tag] = sorted
		for _, id := range sorted {
			f.rows[id] = validRow(id, tag)
		}
	}
	return f
}

func newTestQuestionService(store QuestionStore, pageSize int) *QuestionService {
	return NewQuestionService(store, pageSize, zerolog.Nop())
}

func TestSampleReturnsRequestedCount(t *testing.T) {
	store := newFakeStore(map[string][]string{
		model.BookSourceReadableCode: {"RC001", "RC002", "RC003", "RC004", "RC005"},
	})
	svc := newTestQuestionService(store, 100)

	records, err := svc.Sample(context.Background(), model.BookSourceReadableCode, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestSampleClampsToPoolSize(t *testing.T) {
	store := newFakeStore(map[string][]string{
		model.BookSourceReadableCode: {"RC001", "RC002"},
	})
	svc := newTestQuestionService(store, 100)

	records, err := svc.Sample(context.Background(), model.BookSourceReadableCode, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected pool-size 2 records, got %d", len(records))
	}
}

func TestSampleNoDuplicateIDs(t *testing.T) {
	store := newFakeStore(map[string][]string{
		model.BookSourceReadableCode:          {"RC001", "RC002", "RC003"},
		model.BookSourceProgrammingPrinciples: {"PP001", "PP002", "PP003"},
	})
	svc := newTestQuestionService(store, 100)

	records, err := svc.Sample(context.Background(), model.BookSourceAll, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[string]bool{}
	for _, rec := range records {
		if seen[rec.QuestionID] {
			t.Fatalf("duplicate question id %s in sample", rec.QuestionID)
		}
		seen[rec.QuestionID] = true
	}
	if len(records) != 6 {
		t.Fatalf("expected all 6 records, got %d", len(records))
	}
}

func TestSampleBothUnionsCategories(t *testing.T) {
	store := newFakeStore(map[string][]string{
		model.BookSourceReadableCode:          {"RC001"},
		model.BookSourceProgrammingPrinciples: {"PP001"},
	})
	svc := newTestQuestionService(store, 100)

	records, err := svc.Sample(context.Background(), model.BookSourceAll, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both pools' records, got %d", len(records))
	}
}

func TestSampleEmptyPool(t *testing.T) {
	store := newFakeStore(map[string][]string{})
	svc := newTestQuestionService(store, 100)

	_, err := svc.Sample(context.Background(), model.BookSourceReadableCode, 5)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestSampleListErrorPropagates(t *testing.T) {
	store := newFakeStore(map[string][]string{
		model.BookSourceReadableCode: {"RC001"},
	})
	store.listErr = errors.New("connection refused")
	svc := newTestQuestionService(store, 100)

	_, err := svc.Sample(context.Background(), model.BookSourceReadableCode, 1)
	if err == nil || errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected plain error, got %v", err)
	}
}

func TestSamplePagesToExhaustion(t *testing.T) {
	ids := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		ids = append(ids, string(rune('a'+i/10))+string(rune('0'+i%10)))
	}
	store := newFakeStore(map[string][]string{
		model.BookSourceReadableCode: ids,
	})
	// Page size 4 forces 7 pages, the last one short.
	svc := newTestQuestionService(store, 4)

	records, err := svc.Sample(context.Background(), model.BookSourceReadableCode, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 25 {
		t.Fatalf("expected every id to be reachable, got %d of 25", len(records))
	}
}

func TestSampleDropsInvalidRecords(t *testing.T) {
	store := newFakeStore(map[string][]string{
		model.BookSourceReadableCode: {"RC001", "RC002"},
	})
	bad := store.rows["RC002"]
	bad.Options = json.RawMessage(`{not json`)
	store.rows["RC002"] = bad
	svc := newTestQuestionService(store, 100)

	records, err := svc.Sample(context.Background(), model.BookSourceReadableCode, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].QuestionID != "RC001" {
		t.Fatalf("expected only the valid record, got %+v", records)
	}
}

func TestSampleAllInvalidRecords(t *testing.T) {
	store := newFakeStore(map[string][]string{
		model.BookSourceReadableCode: {"RC001"},
	})
	bad := store.rows["RC001"]
	bad.CorrectOptionID = ""
	store.rows["RC001"] = bad
	svc := newTestQuestionService(store, 100)

	_, err := svc.Sample(context.Background(), model.BookSourceReadableCode, 1)
	if !errors.Is(err, ErrNoValidQuestions) {
		t.Fatalf("expected ErrNoValidQuestions, got %v", err)
	}
}

func TestSampleRejectsCorrectOptionOutsideOptions(t *testing.T) {
	store := newFakeStore(map[string][]string{
		model.BookSourceReadableCode: {"RC001"},
	})
	bad := store.rows["RC001"]
	bad.CorrectOptionID = "Z"
	store.rows["RC001"] = bad
	svc := newTestQuestionService(store, 100)

	_, err := svc.Sample(context.Background(), model.BookSourceReadableCode, 1)
	if !errors.Is(err, ErrNoValidQuestions) {
		t.Fatalf("expected ErrNoValidQuestions, got %v", err)
	}
}

func TestShuffleOptionsKeepsOptionSet(t *testing.T) {
	svc := newTestQuestionService(newFakeStore(nil), 100)
	records := []model.QuestionRecord{
		{
			QuestionID: "RC001",
			Options: []model.Option{
				{ID: "A", Text: "a"}, {ID: "B", Text: "b"},
				{ID: "C", Text: "c"}, {ID: "D", Text: "d"},
			},
			CorrectOptionID: "C",
		},
	}

	svc.ShuffleOptions(records)

	ids := map[string]bool{}
	for _, o := range records[0].Options {
		ids[o.ID] = true
	}
	for _, want := range []string{"A", "B", "C", "D"} {
		if !ids[want] {
			t.Fatalf("option %s lost during shuffle", want)
		}
	}
	if len(records[0].Options) != 4 {
		t.Fatalf("option count changed: %d", len(records[0].Options))
	}
	if !ids[records[0].CorrectOptionID] {
		t.Fatal("correct option id no longer among options")
	}
}
