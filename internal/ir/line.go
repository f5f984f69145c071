package ir

import "strings"

// FragmentKind represents the kind of a line fragment.
type FragmentKind string

const (
	FragmentText          FragmentKind = "text"
	FragmentParenthetical FragmentKind = "parenthetical"
)

// Line represents one line of dialogue.
type Line struct {
	Fragments []Fragment `json:"fragments" yaml:"fragments"`
}

// Fragment is a run of spoken text or an inline parenthetical.
type Fragment struct {
	Kind FragmentKind `json:"kind" yaml:"kind"`
	Text string       `json:"text" yaml:"text"`
}

// NewLine creates a new, empty line.
func NewLine() *Line {
	return &Line{
		Fragments: make([]Fragment, 0),
	}
}

// AppendText adds spoken text to the line. Text directly following another
// text fragment is concatenated onto it.
func (l *Line) AppendText(text string) {
	if n := len(l.Fragments); n > 0 && l.Fragments[n-1].Kind == FragmentText {
		l.Fragments[n-1].Text += text
		return
	}
	l.Fragments = append(l.Fragments, Fragment{
		Kind: FragmentText,
		Text: text,
	})
}

// AppendParenthetical adds an inline stage direction. It never merges.
func (l *Line) AppendParenthetical(text string) {
	l.Fragments = append(l.Fragments, Fragment{
		Kind: FragmentParenthetical,
		Text: text,
	})
}

// IsEmpty returns true if the line has no fragments.
func (l *Line) IsEmpty() bool {
	return len(l.Fragments) == 0
}

// String joins the fragments with single spaces, skipping empty ones.
func (l *Line) String() string {
	parts := make([]string, 0, len(l.Fragments))
	for _, f := range l.Fragments {
		if f.Text != "" {
			parts = append(parts, f.Text)
		}
	}
	return strings.Join(parts, " ")
}
