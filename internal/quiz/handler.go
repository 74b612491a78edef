package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saulo-duarte/learnstyle-lambda/internal/apperr"
	"github.com/saulo-duarte/learnstyle-lambda/internal/auth"
	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
)

var validate = validator.New()

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Corpo da requisição inválido para gerar quiz")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		log.WithError(err).Warn("subject_id ausente ou inválido")
		config.Error(w, http.StatusBadRequest, "subject_id is required")
		return
	}

	generated, err := h.service.GenerateQuiz(r.Context(), userID, uuid.MustParse(req.SubjectID))
	if err != nil {
		log.WithError(err).Error("Erro ao gerar quiz")
		config.Error(w, apperr.Status(err), apperr.Message(err))
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"quiz_id": generated.QuizID,
		"items":   generated.Items,
	})
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusNotFound, "quiz not found")
		return
	}

	quiz, err := h.service.GetQuiz(r.Context(), userID, quizID)
	if err != nil {
		log.WithError(err).Warn("Erro ao buscar quiz")
		config.Error(w, apperr.Status(err), apperr.Message(err))
		return
	}

	config.JSON(w, http.StatusOK, quiz)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusNotFound, "quiz item not found")
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		log.WithError(err).Warn("Erro ao buscar item do quiz")
		config.Error(w, apperr.Status(err), apperr.Message(err))
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{"item": item})
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Corpo da requisição inválido para responder")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		log.WithError(err).Warn("Campos obrigatórios ausentes na resposta")
		config.Error(w, http.StatusBadRequest, "quiz_item_id, selected_option and time_taken_ms are required")
		return
	}

	result, err := h.service.RecordAnswer(r.Context(), AnswerInput{
		QuizItemID:     uuid.MustParse(req.QuizItemID),
		UserID:         userID,
		SelectedOption: *req.SelectedOption,
		TimeTakenMs:    *req.TimeTakenMs,
	})
	if err != nil {
		log.WithError(err).Error("Erro ao registrar resposta")
		config.Error(w, apperr.Status(err), apperr.Message(err))
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"is_correct":     result.IsCorrect,
		"correct_option": result.CorrectOption,
	})
}

func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("Usuário não autenticado")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}
