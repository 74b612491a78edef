package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saulo-duarte/learnstyle-lambda/internal/apperr"
	"github.com/saulo-duarte/learnstyle-lambda/internal/auth"
	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
)

var validate = validator.New()

type Handler struct {
	service UserService
	cookie  auth.CookieSettings
}

func NewHandler(s UserService, cookie auth.CookieSettings) *Handler {
	return &Handler{service: s, cookie: cookie}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		log.WithError(err).Warn("Dados de cadastro inválidos")
		config.Error(w, http.StatusBadRequest, "name, valid email and password (6+ chars) are required")
		return
	}

	u, err := h.service.Signup(r.Context(), req)
	if err != nil {
		log.WithError(err).Warn("Erro no cadastro")
		config.Error(w, apperr.Status(err), apperr.Message(err))
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    ToResponse(u),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		config.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		log.WithError(err).Warn("Falha no login")
		status := apperr.Status(err)
		if status == http.StatusUnauthorized {
			config.Error(w, status, "invalid credentials")
			return
		}
		config.Error(w, status, apperr.Message(err))
		return
	}

	auth.SetSessionCookie(w, h.cookie, token)

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    ToResponse(u),
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("Usuário não autenticado")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar usuário")
		config.Error(w, apperr.Status(err), apperr.Message(err))
		return
	}

	config.JSON(w, http.StatusOK, ToResponse(u))
}
