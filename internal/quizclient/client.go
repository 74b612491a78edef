// Package quizclient talks to the quiz HTTP API on behalf of a terminal
// session.
package quizclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/saulo-duarte/learnstyle-lambda/internal/quizsession"
)

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Subtopic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client keeps the session cookie in a jar, so Login must come first for
// authenticated calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ quizsession.API = (*Client)(nil)

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
	}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Subjects(ctx context.Context) ([]Subject, error) {
	var out struct {
		Subjects []Subject `json:"subjects"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/subjects", nil, &out); err != nil {
		return nil, err
	}
	return out.Subjects, nil
}

// ProvisionSubtopics makes sure the subject has subtopics before a quiz is
// requested for it.
func (c *Client) ProvisionSubtopics(ctx context.Context, subject Subject) ([]Subtopic, error) {
	var out struct {
		Subtopics []Subtopic `json:"subtopics"`
	}
	body := map[string]string{"subject_id": subject.ID, "subject_name": subject.Name}
	if err := c.do(ctx, http.MethodPost, "/api/subtopics", body, &out); err != nil {
		return nil, err
	}
	return out.Subtopics, nil
}

func (c *Client) GenerateQuiz(ctx context.Context, subjectID string) (*quizsession.Quiz, error) {
	var out quizsession.Quiz
	body := map[string]string{"subject_id": subjectID}
	if err := c.do(ctx, http.MethodPost, "/api/quiz/generate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Item(ctx context.Context, id string) (*quizsession.Item, error) {
	var out struct {
		Item quizsession.Item `json:"item"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/quiz/item/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Item, nil
}

func (c *Client) SubmitAnswer(ctx context.Context, in quizsession.AnswerSubmission) (*quizsession.AnswerOutcome, error) {
	var out quizsession.AnswerOutcome
	if err := c.do(ctx, http.MethodPost, "/api/quiz/answer", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
