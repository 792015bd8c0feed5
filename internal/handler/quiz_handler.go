package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bookquiz/quiz-backend/internal/model"
	"github.com/bookquiz/quiz-backend/internal/response"
	"github.com/bookquiz/quiz-backend/internal/service"
	"github.com/bookquiz/quiz-backend/internal/validator"
)

// QuizHandler handles question issuing and answer grading endpoints.
type QuizHandler struct {
	questionService *service.QuestionService
	sessionService  *service.SessionService
	log             zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(
	questionService *service.QuestionService,
	sessionService *service.SessionService,
	log zerolog.Logger,
) *QuizHandler {
	return &QuizHandler{
		questionService: questionService,
		sessionService:  sessionService,
		log:             log.With().Str("component", "quiz_handler").Logger(),
	}
}

// IssueQuestions godoc
// GET /api/v1/quiz/questions
// Draws a random question set for the requested source, stores its answer key
// as a new session and returns the public (no-answer) view.
func (h *QuizHandler) IssueQuestions(c *gin.Context) {
	var q model.IssueQuestionsQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	records, err := h.questionService.Sample(c.Request.Context(), q.BookSource, q.Count)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
			return
		}
		h.log.Error().Err(err).Str("book_source", q.BookSource).Msg("Sampling failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.questionService.ShuffleOptions(records)

	sessionID, err := h.sessionService.CreateSession(c.Request.Context(), records)
	if err != nil {
		h.log.Error().Err(err).Msg("Session creation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	questions := make([]model.PublicQuestion, len(records))
	for i, rec := range records {
		questions[i] = model.PublicQuestion{
			QuestionID:   rec.QuestionID,
			QuestionText: rec.QuestionText,
			Options:      rec.Options,
		}
	}

	response.Success(c, http.StatusOK, model.IssueQuestionsResponse{
		Questions: questions,
		TimeLimit: q.TimeLimit * len(questions),
		SessionID: sessionID,
	})
}

// SubmitAnswers godoc
// POST /api/v1/quiz/answers
// Grades submitted answers against the session's stored answer key.
func (h *QuizHandler) SubmitAnswers(c *gin.Context) {
	var req model.SubmitAnswersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	session, err := h.sessionService.LoadSession(c.Request.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Session load failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	results := service.Grade(req.Answers, session)

	response.Success(c, http.StatusOK, model.SubmitAnswersResponse{Results: results})
}
