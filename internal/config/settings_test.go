package config_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "")
		t.Setenv("COOKIE_NAME", "")
		t.Setenv("CONTENT_LENGTH", "")
		t.Setenv("REVEAL_ANSWERS", "")

		s := config.Load()

		if s.SessionTTL != 7*24*time.Hour {
			t.Errorf("SessionTTL incorreto: %v", s.SessionTTL)
		}
		if s.CookieName != "auth_token" {
			t.Errorf("CookieName incorreto: %q", s.CookieName)
		}
		if s.ContentLength != "standard" {
			t.Errorf("ContentLength incorreto: %q", s.ContentLength)
		}
		if s.RevealAnswers {
			t.Error("RevealAnswers deveria ser falso por padrão")
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "1h")
		t.Setenv("CONTENT_LENGTH", "short")
		t.Setenv("REVEAL_ANSWERS", "true")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

		s := config.Load()

		if s.SessionTTL != time.Hour {
			t.Errorf("SessionTTL incorreto: %v", s.SessionTTL)
		}
		if s.ContentLength != "short" {
			t.Errorf("ContentLength incorreto: %q", s.ContentLength)
		}
		if !s.RevealAnswers {
			t.Error("RevealAnswers deveria ser verdadeiro")
		}
		if len(s.CORSOrigins) != 2 || s.CORSOrigins[1] != "https://b.example" {
			t.Errorf("CORSOrigins incorreto: %v", s.CORSOrigins)
		}
	})

	t.Run("InvalidValuesFallBack", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "sete dias")
		t.Setenv("REVEAL_ANSWERS", "talvez")

		s := config.Load()

		if s.SessionTTL != 7*24*time.Hour {
			t.Errorf("SessionTTL deveria voltar ao padrão, recebido %v", s.SessionTTL)
		}
		if s.RevealAnswers {
			t.Error("RevealAnswers deveria voltar ao padrão")
		}
	})
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	config.Error(rec, http.StatusNotFound, "quiz item not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status incorreto: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type incorreto: %q", ct)
	}
	if body := rec.Body.String(); body != "{\"error\":\"quiz item not found\"}\n" {
		t.Errorf("corpo incorreto: %q", body)
	}
}
