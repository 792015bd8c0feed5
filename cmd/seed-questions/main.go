package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bookquiz/quiz-backend/internal/config"
	"github.com/bookquiz/quiz-backend/internal/database"
	"github.com/bookquiz/quiz-backend/internal/logger"
	"github.com/bookquiz/quiz-backend/internal/model"
	"github.com/bookquiz/quiz-backend/internal/repository"
)

// Sample question pool for local development. Production content is authored
// externally and loaded through the same upsert path.

var readableCodeTopics = []string{
	"naming variables after their intent",
	"keeping functions focused on one task",
	"choosing boolean names without negation",
	"replacing magic numbers with named constants",
	"writing comments that explain why, not what",
	"shortening deeply nested conditionals",
	"extracting unrelated subproblems into helpers",
	"making loops read top to bottom",
	"using explaining variables for complex expressions",
	"keeping a consistent vocabulary across the codebase",
	"reducing the scope of variables",
	"preferring early returns over else chains",
	"aligning code blocks that do similar work",
	"avoiding abbreviations that readers must decode",
	"grouping related declarations together",
	"simplifying De Morgan'd boolean expressions",
	"writing test names that describe behavior",
	"choosing concrete names over generic ones like tmp",
	"breaking giant expressions into digestible pieces",
	"removing variables that add no clarity",
	"ordering function arguments consistently",
	"documenting surprising performance characteristics",
	"isolating side effects from pure computation",
	"making preconditions explicit at function entry",
	"structuring error paths away from the happy path",
	"keeping comment density proportional to surprise",
	"picking names that cannot be misinterpreted",
	"minimizing the reader's mental stack depth",
	"summarizing blocks of code with a headline comment",
	"deleting code instead of commenting it out",
}

var programmingPrinciplesTopics = []string{
	"the single responsibility principle",
	"the open-closed principle",
	"the Liskov substitution principle",
	"the interface segregation principle",
	"the dependency inversion principle",
	"don't repeat yourself (DRY)",
	"you aren't gonna need it (YAGNI)",
	"keep it simple (KISS)",
	"the law of Demeter",
	"composition over inheritance",
	"the principle of least astonishment",
	"separation of concerns",
	"encapsulation and information hiding",
	"fail fast error handling",
	"the boy scout rule",
	"designing for testability",
	"high cohesion within modules",
	"loose coupling between modules",
	"the stable dependencies principle",
	"command-query separation",
	"the hollywood principle",
	"convention over configuration",
	"idempotency in operations",
	"immutability as a default",
	"explicit over implicit behavior",
	"small interfaces over large ones",
	"designing errors as part of the contract",
	"avoiding premature optimization",
	"the robustness principle",
	"making illegal states unrepresentable",
}

var optionCycle = []string{"A", "B", "C", "D"}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)

	fmt.Println("=== Seeding Quiz Questions ===")

	total := 0
	total += seedCategory(ctx, questionRepo, model.BookSourceReadableCode, "readability", "RC", readableCodeTopics, 0)
	total += seedCategory(ctx, questionRepo, model.BookSourceProgrammingPrinciples, "principles", "PP", programmingPrinciplesTopics, 1)

	fmt.Printf("\nSeed completed! Successfully added %d questions.\n", total)
}

func seedCategory(ctx context.Context, repo *repository.QuestionRepository, tag, category, idPrefix string, topics []string, offset int) int {
	successCount := 0
	for i, topic := range topics {
		correct := optionCycle[(i+offset)%len(optionCycle)]

		q := &model.QuestionRecord{
			QuestionID:   fmt.Sprintf("%s%03d", idPrefix, i+1),
			CategoryTag:  tag,
			Category:     category,
			QuestionText: fmt.Sprintf("Which statement best describes %s?", topic),
			Options: []model.Option{
				{ID: "A", Text: optionText(topic, "A", correct)},
				{ID: "B", Text: optionText(topic, "B", correct)},
				{ID: "C", Text: optionText(topic, "C", correct)},
				{ID: "D", Text: optionText(topic, "D", correct)},
			},
			CorrectOptionID: correct,
			Explanation:     fmt.Sprintf("The key idea behind %s is making code easier to understand and change.", topic),
		}

		if err := repo.UpsertQuestion(ctx, q); err != nil {
			fmt.Printf("Error seeding question %s: %v\n", q.QuestionID, err)
			continue
		}
		successCount++
		if successCount%10 == 0 {
			fmt.Printf("Seeded %d %s questions...\n", successCount, category)
		}
	}
	return successCount
}

func optionText(topic, id, correct string) string {
	if id == correct {
		return fmt.Sprintf("It improves code quality by applying %s deliberately.", topic)
	}
	return fmt.Sprintf("Distractor %s: an unrelated claim about %s.", id, topic)
}
