package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/saulo-duarte/learnstyle-lambda/internal/quizsession"
)

func TestRender(t *testing.T) {
	t.Run("placeholder while presenting", func(t *testing.T) {
		var out bytes.Buffer
		render(&out, quizsession.View{State: quizsession.StatePresenting, Index: 1, Total: 12})

		if !strings.Contains(out.String(), "[2/12] "+loadingLine) {
			t.Errorf("placeholder esperado, obtido %q", out.String())
		}
	})

	t.Run("question with numbered options", func(t *testing.T) {
		var out bytes.Buffer
		render(&out, quizsession.View{
			State: quizsession.StateAwaitingAnswer,
			Index: 1,
			Total: 12,
			Item: &quizsession.Item{
				ID:           "q1",
				QuestionText: "What is the powerhouse of the cell?",
				Options:      []string{"Mitochondria", "Nucleus"},
				ContentType:  "mcq",
			},
		})

		got := out.String()
		if !strings.Contains(got, "1) Mitochondria") || !strings.Contains(got, "2) Nucleus") {
			t.Errorf("opções não renderizadas: %q", got)
		}
	})
}
