package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/learnstyle-lambda/internal/quizclient"
	"github.com/saulo-duarte/learnstyle-lambda/internal/quizsession"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take a diagnostic quiz in the terminal against a running server",
	RunE:  runTake,
}

func init() {
	f := takeCmd.Flags()
	f.String("server", "http://localhost:8080", "Base URL of the API")
	f.String("email", "", "Account email")
	f.String("password", "", "Account password (or LEARNSTYLE_PASSWORD)")
	f.String("subject", "", "Subject name; prompts when empty")
	_ = takeCmd.MarkFlagRequired("email")
}

func runTake(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	server, _ := cmd.Flags().GetString("server")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	subjectName, _ := cmd.Flags().GetString("subject")
	if password == "" {
		password = os.Getenv("LEARNSTYLE_PASSWORD")
	}

	out := cmd.OutOrStdout()
	lines := readLines(cmd.InOrStdin())

	client, err := quizclient.New(server, 3*time.Minute)
	if err != nil {
		return err
	}
	u, err := client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Fprintf(out, "Olá, %s!\n", u.Name)

	subject, err := chooseSubject(ctx, client, subjectName, out, lines)
	if err != nil {
		return err
	}
	if _, err := client.ProvisionSubtopics(ctx, subject); err != nil {
		return fmt.Errorf("prepare subtopics: %w", err)
	}

	fmt.Fprintf(out, "Gerando quiz de %s...\n", subject.Name)
	session := quizsession.New(client, subject.ID)
	if err := session.Start(ctx); err != nil {
		return fmt.Errorf("%w; choose another subject and try again", err)
	}

	if err := drive(ctx, session, out, lines); err != nil {
		return err
	}

	session.Wait()
	res := session.Results()
	fmt.Fprintf(out, "\nFim! %d/%d respostas corretas.\n", res.Correct, res.Submitted)
	for _, f := range session.Failures() {
		fmt.Fprintf(out, "  resposta para %s não foi registrada: %v\n", f.ItemID, f.Err)
	}
	return nil
}

// drive runs the session from one loop: a one-second ticker for content
// items and stdin lines for answers.
func drive(ctx context.Context, s *quizsession.Session, out io.Writer, lines <-chan string) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	shown := -1
	for {
		v := s.View()
		switch v.State {
		case quizsession.StateFinished:
			return nil
		case quizsession.StateFailed:
			return v.Err
		}
		if v.Index != shown {
			render(out, v)
			if v.Item != nil {
				shown = v.Index
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if v.State == quizsession.StateTiming && v.Remaining == 1 {
				fmt.Fprintln(out, loadingLine)
			}
			if err := s.Tick(ctx); err != nil {
				return err
			}
			if cur := s.View(); cur.State == quizsession.StateTiming && cur.Remaining%10 == 0 {
				fmt.Fprintf(out, "  %ds\n", cur.Remaining)
			}

		case line, ok := <-lines:
			if !ok {
				return errors.New("input closed before the quiz finished")
			}
			if v.State != quizsession.StateAwaitingAnswer {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || n < 1 || n > len(v.Item.Options) {
				fmt.Fprintf(out, "Digite um número entre 1 e %d\n", len(v.Item.Options))
				continue
			}
			fmt.Fprintln(out, loadingLine)
			if err := s.Answer(ctx, v.Item.Options[n-1]); err != nil {
				return err
			}
		}
	}
}

const loadingLine = "Carregando..."

func render(out io.Writer, v quizsession.View) {
	item := v.Item
	if v.State == quizsession.StatePresenting || item == nil {
		fmt.Fprintf(out, "\n[%d/%d] %s\n", v.Index+1, v.Total, loadingLine)
		return
	}
	fmt.Fprintf(out, "\n[%d/%d] %s\n", v.Index+1, v.Total, strings.ToUpper(item.ContentType))
	fmt.Fprintln(out, item.QuestionText)
	if !item.IsQuestion() {
		fmt.Fprintf(out, "(avança em %ds)\n", v.Remaining)
		return
	}
	for i, opt := range item.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
}

func chooseSubject(ctx context.Context, c *quizclient.Client, name string, out io.Writer, lines <-chan string) (quizclient.Subject, error) {
	subjects, err := c.Subjects(ctx)
	if err != nil {
		return quizclient.Subject{}, fmt.Errorf("list subjects: %w", err)
	}
	if len(subjects) == 0 {
		return quizclient.Subject{}, errors.New("no subjects available, run the seed command first")
	}

	if name != "" {
		for _, s := range subjects {
			if strings.EqualFold(s.Name, name) {
				return s, nil
			}
		}
		return quizclient.Subject{}, fmt.Errorf("subject %q not found", name)
	}

	for i, s := range subjects {
		fmt.Fprintf(out, "  %d) %s\n", i+1, s.Name)
	}
	for {
		fmt.Fprint(out, "Escolha uma matéria: ")
		select {
		case <-ctx.Done():
			return quizclient.Subject{}, ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return quizclient.Subject{}, errors.New("no subject chosen")
			}
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil && n >= 1 && n <= len(subjects) {
				return subjects[n-1], nil
			}
		}
	}
}

func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}
