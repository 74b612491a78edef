package aiquiz

import (
	"fmt"
	"strings"
)

// Length is the explanation length contract sent to the model.
type Length string

const (
	LengthStandard Length = "standard"
	LengthShort    Length = "short"
)

func ParseLength(s string) (Length, error) {
	switch Length(strings.ToLower(strings.TrimSpace(s))) {
	case "", LengthStandard:
		return LengthStandard, nil
	case LengthShort:
		return LengthShort, nil
	}
	return "", fmt.Errorf("unknown content length %q (want %q or %q)", s, LengthStandard, LengthShort)
}

func (l Length) Words() (lo, hi int) {
	if l == LengthShort {
		return 40, 70
	}
	return 120, 150
}

const blockPrompt = `You are an educational content generator.

Rules, all mandatory:
1. Write strictly within the SUBJECT.
2. Interpret the SUBTOPIC only inside that subject.
3. The %[1]s must be %[2]d-%[3]d words long.
4. Every question must be answerable from the %[1]s alone.
5. Each question has exactly 3 options and each option is 1-6 words long.
6. "answer" must repeat one of the 3 options exactly.

Return ONLY this JSON object, without commentary or code fences:
{
  "%[4]s": "<%[2]d-%[3]d word %[1]s>",
  "mcqs": [
    {"q": "...", "options": ["...", "...", "..."], "answer": "..."},
    {"q": "...", "options": ["...", "...", "..."], "answer": "..."},
    {"q": "...", "options": ["...", "...", "..."], "answer": "..."}
  ]
}

SUBJECT: %[5]q
SUBTOPIC: %[6]q
`

const subtopicPrompt = `Generate %d subtopics for the subject %q.
Return ONLY a JSON array of short strings, for example:
["topic1", "topic2", "topic3"]
`

func describe(kind BlockKind) string {
	switch kind {
	case BlockAudio:
		return "spoken script"
	case BlockVisual:
		return "flowchart-style visual description"
	default:
		return "explanation"
	}
}

func BuildBlockPrompt(kind BlockKind, subtopic, subjectName string, length Length) string {
	lo, hi := length.Words()
	return fmt.Sprintf(blockPrompt, describe(kind), lo, hi, kind.Field(), subjectName, subtopic)
}

func BuildSubtopicPrompt(subjectName string, count int) string {
	return fmt.Sprintf(subtopicPrompt, count, subjectName)
}
