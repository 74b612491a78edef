package subject_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saulo-duarte/learnstyle-lambda/internal/aiquiz"
	"github.com/saulo-duarte/learnstyle-lambda/internal/apperr"
	"github.com/saulo-duarte/learnstyle-lambda/internal/llm"
	"github.com/saulo-duarte/learnstyle-lambda/internal/subject"
	"github.com/saulo-duarte/learnstyle-lambda/internal/testutil"
)

func setup(t *testing.T, responses ...llm.MockResponse) (*gorm.DB, *llm.MockProvider, subject.Service) {
	t.Helper()
	db := testutil.DB(t)
	mock := llm.NewMockProvider(responses...)
	svc := subject.NewService(db, subject.NewRepository(db), aiquiz.NewService(mock, aiquiz.LengthStandard))
	return db, mock, svc
}

func countSubtopics(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&subject.Subtopic{}).Count(&n).Error)
	return n
}

func names(res *subject.ProvisionResult) []string {
	out := make([]string, len(res.Subtopics))
	for i, st := range res.Subtopics {
		out[i] = st.Name
	}
	return out
}

func TestProvisionSubtopics(t *testing.T) {
	ctx := context.Background()

	t.Run("Idempotent", func(t *testing.T) {
		db, mock, svc := setup(t, llm.MockResponse{Text: "```json\n[\"Cells\",\"Genetics\",\"Evolution\"]\n```"})
		bio := testutil.SeedSubject(t, db, "Biology")

		first, err := svc.ProvisionSubtopics(ctx, bio.ID, bio.Name)
		require.NoError(t, err)
		assert.False(t, first.AlreadyExists)
		assert.Equal(t, []string{"Cells", "Genetics", "Evolution"}, names(first))

		second, err := svc.ProvisionSubtopics(ctx, bio.ID, bio.Name)
		require.NoError(t, err)
		assert.True(t, second.AlreadyExists)
		assert.ElementsMatch(t, first.Subtopics, second.Subtopics)

		assert.EqualValues(t, 3, countSubtopics(t, db))
		assert.Equal(t, 1, mock.CallCount())
		assert.Contains(t, mock.Prompts[0], fmt.Sprintf("Generate %d subtopics", subject.CandidateCount))
	})

	t.Run("DedupesAndCaps", func(t *testing.T) {
		list := []string{`"A"`, `"A"`, `""`, `"  "`, `"a"`}
		for i := 0; i < 15; i++ {
			list = append(list, fmt.Sprintf(`"T%d"`, i))
		}
		db, _, svc := setup(t, llm.MockResponse{Text: "Here: [" + strings.Join(list, ",") + "] hope it helps"})
		subj := testutil.SeedSubject(t, db, "Chemistry")

		res, err := svc.ProvisionSubtopics(ctx, subj.ID, subj.Name)
		require.NoError(t, err)
		require.Len(t, res.Subtopics, subject.MaxSubtopics)
		assert.Equal(t, "A", res.Subtopics[0].Name)
		assert.Equal(t, "a", res.Subtopics[1].Name)
		assert.Equal(t, "T9", res.Subtopics[11].Name)
		assert.EqualValues(t, subject.MaxSubtopics, countSubtopics(t, db))
	})

	t.Run("NoUsableNames", func(t *testing.T) {
		db, _, svc := setup(t, llm.MockResponse{Text: `["", "   "]`})
		subj := testutil.SeedSubject(t, db, "Physics")

		_, err := svc.ProvisionSubtopics(ctx, subj.ID, subj.Name)

		var genErr *apperr.ContentGenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Zero(t, countSubtopics(t, db))
	})

	t.Run("NoArrayInResponse", func(t *testing.T) {
		db, _, svc := setup(t, llm.MockResponse{Text: "I cannot list subtopics."})
		subj := testutil.SeedSubject(t, db, "History")

		_, err := svc.ProvisionSubtopics(ctx, subj.ID, subj.Name)

		var genErr *apperr.ContentGenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, http.StatusInternalServerError, apperr.Status(err))
	})

	t.Run("ProviderError", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		db, _, svc := setup(t, llm.MockResponse{Err: boom})
		subj := testutil.SeedSubject(t, db, "Geography")

		_, err := svc.ProvisionSubtopics(ctx, subj.ID, subj.Name)
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, countSubtopics(t, db))
	})

	t.Run("RollbackOnInsertFailure", func(t *testing.T) {
		db, _, svc := setup(t, llm.MockResponse{Text: `["Atoms","Bonds","Reactions"]`})
		subj := testutil.SeedSubject(t, db, "Chemistry")

		// Fail the second insert of the batch.
		require.NoError(t, db.Exec(
			`CREATE TRIGGER reject_bonds BEFORE INSERT ON subtopics WHEN NEW.name = 'Bonds' BEGIN SELECT RAISE(ABORT, 'rejected'); END`,
		).Error)

		_, err := svc.ProvisionSubtopics(ctx, subj.ID, subj.Name)
		assert.ErrorIs(t, err, apperr.ErrPersistence)
		assert.Zero(t, countSubtopics(t, db))
	})
}

// barrierProvider holds every Generate call until want callers have
// arrived, then answers each with its own distinct list of ten names.
type barrierProvider struct {
	want    int
	arrived chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func newBarrierProvider(want int) *barrierProvider {
	return &barrierProvider{
		want:    want,
		arrived: make(chan struct{}, want),
		release: make(chan struct{}),
	}
}

func (p *barrierProvider) Generate(ctx context.Context, _ string) (string, error) {
	call := p.calls.Add(1)
	p.arrived <- struct{}{}
	select {
	case <-p.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	list := make([]string, subject.CandidateCount)
	for i := range list {
		list[i] = fmt.Sprintf(`"Call%d-Topic%d"`, call, i)
	}
	return "[" + strings.Join(list, ",") + "]", nil
}

func (p *barrierProvider) ModelID() string { return "barrier" }

func TestProvisionSubtopics_Concurrent(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	provider := newBarrierProvider(2)
	svc := subject.NewService(db, subject.NewRepository(db), aiquiz.NewService(provider, aiquiz.LengthStandard))
	bio := testutil.SeedSubject(t, db, "Biology")

	var wg sync.WaitGroup
	results := make([]*subject.ProvisionResult, 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.ProvisionSubtopics(ctx, bio.ID, bio.Name)
		}(i)
	}

	for i := 0; i < provider.want; i++ {
		select {
		case <-provider.arrived:
		case <-time.After(5 * time.Second):
			t.Fatal("generator calls did not overlap")
		}
	}
	close(provider.release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.EqualValues(t, subject.CandidateCount, countSubtopics(t, db))

	created := 0
	for _, res := range results {
		if !res.AlreadyExists {
			created++
		}
	}
	assert.Equal(t, 1, created, "exactly one caller inserts")
	assert.ElementsMatch(t, results[0].Subtopics, results[1].Subtopics)
}

func TestProvisionSubtopics_UnknownSubject(t *testing.T) {
	db, _, svc := setup(t, llm.MockResponse{Text: `["Cells","Genetics","Evolution"]`})

	_, err := svc.ProvisionSubtopics(context.Background(), uuid.New(), "Alchemy")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Zero(t, countSubtopics(t, db))
}

func TestListSubtopics_InsertionOrder(t *testing.T) {
	db := testutil.DB(t)
	repo := subject.NewRepository(db)
	subj := testutil.SeedSubject(t, db, "Biology")

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []*subject.Subtopic{
		{SubjectID: subj.ID, Name: "Zoology", Seq: 0, CreatedAt: at},
		{SubjectID: subj.ID, Name: "Anatomy", Seq: 1, CreatedAt: at},
		{SubjectID: subj.ID, Name: "Mycology", Seq: 2, CreatedAt: at},
	}
	require.NoError(t, repo.CreateSubtopics(context.Background(), rows))

	got, err := repo.ListSubtopics(context.Background(), subj.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Zoology", got[0].Name)
	assert.Equal(t, "Anatomy", got[1].Name)
	assert.Equal(t, "Mycology", got[2].Name)
}

func TestListSubjects(t *testing.T) {
	db, _, svc := setup(t)
	testutil.SeedSubject(t, db, "Physics")
	testutil.SeedSubject(t, db, "Biology")

	subjects, err := svc.ListSubjects(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Biology", subjects[0].Name)
	assert.Equal(t, "Physics", subjects[1].Name)
}

func TestHandlers(t *testing.T) {
	db, _, svc := setup(t, llm.MockResponse{Text: `["Cells","Genetics","Evolution"]`})
	bio := testutil.SeedSubject(t, db, "Biology")

	h := subject.NewHandler(svc)
	r := chi.NewRouter()
	r.Mount("/subjects", subject.Routes(h))
	r.Mount("/subtopics", subject.SubtopicRoutes(h))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/subtopics", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/subjects", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Biology"`)

	body := `{"subject_id":"` + bio.ID.String() + `","subject_name":"Biology"}`

	rec = post(body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"alreadyExists":false`)

	rec = post(body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alreadyExists":true`)
	assert.Contains(t, rec.Body.String(), `"name":"Genetics"`)

	rec = post(`{"subject_id":"` + uuid.NewString() + `"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(`not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
