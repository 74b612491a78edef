package aiquiz

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/saulo-duarte/learnstyle-lambda/internal/apperr"
	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"github.com/saulo-duarte/learnstyle-lambda/internal/llm"
)

type Service interface {
	GenerateBlock(ctx context.Context, kind BlockKind, subtopic, subjectName string) (*Block, error)
	GenerateSubtopics(ctx context.Context, subjectName string, count int) ([]string, error)
}

type service struct {
	provider llm.Provider
	length   Length
}

func NewService(provider llm.Provider, length Length) Service {
	return &service{provider: provider, length: length}
}

func (s *service) GenerateBlock(ctx context.Context, kind BlockKind, subtopic, subjectName string) (*Block, error) {
	log := config.WithContext(ctx).WithField("block", kind)

	if !kind.IsValid() {
		return nil, apperr.Validation("unknown block kind %q", kind)
	}

	raw, err := s.provider.Generate(ctx, BuildBlockPrompt(kind, subtopic, subjectName, s.length))
	if err != nil {
		return nil, fmt.Errorf("generate %s block: %w", kind, err)
	}
	log.Debugf("[AIQUIZ] raw model response:\n%s", raw)

	block, err := parseBlock(kind, raw)
	if err != nil {
		log.WithError(err).Error("[AIQUIZ] could not parse block")
		return nil, &apperr.ContentGenerationError{Kind: string(kind), Raw: raw, Err: err}
	}

	if idx := unmatchedAnswers(block.MCQs); len(idx) > 0 {
		log.WithField("questions", idx).Warn("[AIQUIZ] answer not among options, keeping block as generated")
	}

	block.Subtopic = subtopic
	log.WithField("subtopic", subtopic).Infof("[AIQUIZ] generated block with %d questions", len(block.MCQs))
	return block, nil
}

func (s *service) GenerateSubtopics(ctx context.Context, subjectName string, count int) ([]string, error) {
	log := config.WithContext(ctx)

	raw, err := s.provider.Generate(ctx, BuildSubtopicPrompt(subjectName, count))
	if err != nil {
		return nil, fmt.Errorf("generate subtopics: %w", err)
	}
	log.Debugf("[AIQUIZ] raw subtopic response:\n%s", raw)

	list, ok := extractArray(stripFences(raw))
	if !ok {
		return nil, &apperr.ContentGenerationError{Kind: "subtopics", Raw: raw, Err: fmt.Errorf("no JSON array in response")}
	}
	if err := checkSchema("subtopic-list", subtopicListSchema, list); err != nil {
		return nil, &apperr.ContentGenerationError{Kind: "subtopics", Raw: raw, Err: err}
	}

	var names []string
	if err := json.Unmarshal(list, &names); err != nil {
		return nil, &apperr.ContentGenerationError{Kind: "subtopics", Raw: raw, Err: err}
	}
	return names, nil
}

func parseBlock(kind BlockKind, raw string) (*Block, error) {
	obj, ok := extractObject(stripFences(raw))
	if !ok {
		return nil, fmt.Errorf("no JSON object in response")
	}

	if err := checkSchema("block-"+string(kind), blockSchema(kind), obj); err != nil {
		return nil, err
	}

	var rb rawBlock
	if err := json.Unmarshal(obj, &rb); err != nil {
		return nil, fmt.Errorf("decode block: %w", err)
	}

	return &Block{Kind: kind, Body: rb.body(kind), MCQs: rb.MCQs}, nil
}

// unmatchedAnswers lists the 1-based numbers of questions whose answer is
// not one of their options.
func unmatchedAnswers(mcqs []MCQ) []int {
	var out []int
	for i, q := range mcqs {
		if !slices.Contains(q.Options, q.Answer) {
			out = append(out, i+1)
		}
	}
	return out
}
