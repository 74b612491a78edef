package quizclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/learnstyle-lambda/internal/quizsession"
)

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok", Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]string{"id": "u1", "name": "Ana", "email": "ana@example.com"},
		})
	})
	mux.HandleFunc("POST /api/quiz/generate", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("auth_token"); err != nil || c.Value != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"quiz_id":"q1","items":[{"id":"i1","type":"text"},{"id":"i2","type":"mcq"}]}`))
	})
	mux.HandleFunc("GET /api/quiz/item/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "i2" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"quiz item not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"item":{"id":"i2","question_text":"Q?","options":["A","B","C"],"content_type":"mcq","media_url":null}}`))
	})
	mux.HandleFunc("POST /api/quiz/answer", func(w http.ResponseWriter, r *http.Request) {
		var in quizsession.AnswerSubmission
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":        true,
			"is_correct":     in.SelectedOption == "B",
			"correct_option": "B",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)

	c, err := New(srv.URL+"/", 0)
	require.NoError(t, err)

	t.Run("UnauthorizedBeforeLogin", func(t *testing.T) {
		_, err := c.GenerateQuiz(ctx, "s1")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "unauthorized", apiErr.Message)
	})

	t.Run("LoginThenGenerate", func(t *testing.T) {
		u, err := c.Login(ctx, "ana@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)

		quiz, err := c.GenerateQuiz(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "q1", quiz.ID)
		require.Len(t, quiz.Items, 2)
		assert.Equal(t, "mcq", quiz.Items[1].Type)
	})

	t.Run("Item", func(t *testing.T) {
		item, err := c.Item(ctx, "i2")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, item.Options)
		assert.True(t, item.IsQuestion())

		_, err = c.Item(ctx, "missing")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("SubmitAnswer", func(t *testing.T) {
		out, err := c.SubmitAnswer(ctx, quizsession.AnswerSubmission{QuizItemID: "i2", SelectedOption: "B", TimeTakenMs: 1200})
		require.NoError(t, err)
		assert.True(t, out.IsCorrect)
		assert.Equal(t, "B", out.CorrectOption)
	})
}
