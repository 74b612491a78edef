package quiz

type ContentType string

const (
	ContentText   ContentType = "text"
	ContentAudio  ContentType = "audio"
	ContentVisual ContentType = "visual"
	ContentMCQ    ContentType = "mcq"
)

// IsContent reports whether the item is a passage rather than a question.
func (c ContentType) IsContent() bool {
	return c == ContentText || c == ContentAudio || c == ContentVisual
}
