package aiquiz

type BlockKind string

const (
	BlockText   BlockKind = "text"
	BlockAudio  BlockKind = "audio"
	BlockVisual BlockKind = "visual"
)

// BlockOrder is the fixed order in which a quiz presents its blocks.
var BlockOrder = []BlockKind{BlockText, BlockAudio, BlockVisual}

func (k BlockKind) IsValid() bool {
	switch k {
	case BlockText, BlockAudio, BlockVisual:
		return true
	}
	return false
}

// Field is the JSON key that carries the block body in the model output.
func (k BlockKind) Field() string {
	switch k {
	case BlockAudio:
		return "script"
	case BlockVisual:
		return "visual"
	default:
		return "text"
	}
}

type MCQ struct {
	Question string   `json:"q"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type Block struct {
	Kind     BlockKind `json:"kind"`
	Subtopic string    `json:"subtopic"`
	Body     string    `json:"body"`
	MCQs     []MCQ     `json:"mcqs"`
}

type BlockRequest struct {
	Kind        BlockKind `json:"kind" validate:"required,oneof=text audio visual"`
	Subtopic    string    `json:"subtopic" validate:"required"`
	SubjectName string    `json:"subject_name"`
}

type rawBlock struct {
	Text   string `json:"text"`
	Script string `json:"script"`
	Visual string `json:"visual"`
	MCQs   []MCQ  `json:"mcqs"`
}

func (r rawBlock) body(kind BlockKind) string {
	switch kind {
	case BlockAudio:
		return r.Script
	case BlockVisual:
		return r.Visual
	default:
		return r.Text
	}
}
