package ir

// LineGroupType represents the type of an entry in a speech.
type LineGroupType string

const (
	LineGroupLine     LineGroupType = "line"
	LineGroupStageDir LineGroupType = "stagedir"
)

// Speech represents an attributed dialogue turn.
type Speech struct {
	Speakers []string    `json:"speakers" yaml:"speakers"`
	Lines    []LineGroup `json:"lines" yaml:"lines"`
}

// LineGroup is either a dialogue line or a stage direction between lines.
type LineGroup struct {
	Type           LineGroupType   `json:"type" yaml:"type"`
	Line           *Line           `json:"line,omitempty" yaml:"line,omitempty"`
	StageDirection *StageDirection `json:"stagedir,omitempty" yaml:"stagedir,omitempty"`
}

// NewSpeech creates a new speech with no speakers and no lines.
func NewSpeech() *Speech {
	return &Speech{
		Speakers: make([]string, 0),
		Lines:    make([]LineGroup, 0),
	}
}

// AddSpeaker appends a speaker name. Duplicates are kept.
func (sp *Speech) AddSpeaker(name string) {
	sp.Speakers = append(sp.Speakers, name)
}

// AddLine appends a dialogue line and returns it.
func (sp *Speech) AddLine(l *Line) *Line {
	sp.Lines = append(sp.Lines, LineGroup{
		Type: LineGroupLine,
		Line: l,
	})
	return l
}

// AddStageDirection appends a stage direction between dialogue lines.
func (sp *Speech) AddStageDirection(text string) {
	sp.Lines = append(sp.Lines, LineGroup{
		Type:           LineGroupStageDir,
		StageDirection: &StageDirection{Text: text},
	})
}

// DialogueLines returns only the dialogue lines, in order.
func (sp *Speech) DialogueLines() []*Line {
	lines := make([]*Line, 0, len(sp.Lines))
	for _, g := range sp.Lines {
		if g.Type == LineGroupLine && g.Line != nil {
			lines = append(lines, g.Line)
		}
	}
	return lines
}
