package testutil

import (
	"encoding/json"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/saulo-duarte/learnstyle-lambda/internal/subject"
)

// SeedSubject inserts a subject with the given subtopics.
func SeedSubject(tb testing.TB, db *gorm.DB, name string, subtopics ...string) subject.Subject {
	tb.Helper()

	s := subject.Subject{Name: name}
	if err := db.Create(&s).Error; err != nil {
		tb.Fatalf("seed subject: %v", err)
	}
	for i, st := range subtopics {
		row := subject.Subtopic{SubjectID: s.ID, Name: st, Seq: i}
		if err := db.Create(&row).Error; err != nil {
			tb.Fatalf("seed subtopic %q: %v", st, err)
		}
	}
	return s
}

// BlockResponse renders model output for one block. Every question has
// options A/B/C prefixed by tag, and the answer given for it.
func BlockResponse(field, body, tag string, answers [3]string) string {
	type mcq struct {
		Q       string   `json:"q"`
		Options []string `json:"options"`
		Answer  string   `json:"answer"`
	}
	out := map[string]any{field: body}
	mcqs := make([]mcq, 3)
	for i := range mcqs {
		mcqs[i] = mcq{
			Q:       fmt.Sprintf("%s question %d?", tag, i+1),
			Options: []string{answers[i], tag + " other", tag + " wrong"},
			Answer:  answers[i],
		}
	}
	out["mcqs"] = mcqs

	b, _ := json.Marshal(out)
	return string(b)
}
