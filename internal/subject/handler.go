package subject

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
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

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	subjects, err := h.service.ListSubjects(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list subjects")
		config.Error(w, apperr.Status(err), apperr.Message(err))
		return
	}

	config.JSON(w, http.StatusOK, SubjectListResponse{Subjects: subjects})
}

func (h *Handler) ProvisionSubtopics(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req ProvisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		log.WithError(err).Warn("Invalid subtopic provisioning request")
		config.Error(w, http.StatusBadRequest, "subject_id and subject_name required")
		return
	}

	result, err := h.service.ProvisionSubtopics(r.Context(), uuid.MustParse(req.SubjectID), req.SubjectName)
	if err != nil {
		log.WithError(err).Error("Failed to provision subtopics")
		config.Error(w, apperr.Status(err), apperr.Message(err))
		return
	}

	status := http.StatusCreated
	if result.AlreadyExists {
		status = http.StatusOK
	}
	config.JSON(w, status, result)
}
