package aiquiz

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/saulo-duarte/learnstyle-lambda/internal/apperr"
	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
)

var validate = validator.New()

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// PreviewBlock generates a single block without persisting it.
func (h *Handler) PreviewBlock(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		config.Error(w, http.StatusBadRequest, "kind (text|audio|visual) and subtopic are required")
		return
	}

	block, err := h.service.GenerateBlock(r.Context(), req.Kind, req.Subtopic, req.SubjectName)
	if err != nil {
		log.WithError(err).Error("Failed to generate block preview")
		config.Error(w, apperr.Status(err), apperr.Message(err))
		return
	}

	config.JSON(w, http.StatusCreated, block)
}
