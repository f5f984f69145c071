package parser

import "github.com/roboco-io/play2html/internal/ir"

type tee []Receiver

// Tee returns a Receiver that forwards every event to each of rs in order.
func Tee(rs ...Receiver) Receiver {
	if len(rs) == 1 {
		return rs[0]
	}
	return tee(rs)
}

func (t tee) PlayTitle(text string) {
	for _, r := range t {
		r.PlayTitle(text)
	}
}

func (t tee) PlaySubtitle(text string) {
	for _, r := range t {
		r.PlaySubtitle(text)
	}
}

func (t tee) StartInduct() {
	for _, r := range t {
		r.StartInduct()
	}
}

func (t tee) StartPrologue() {
	for _, r := range t {
		r.StartPrologue()
	}
}

func (t tee) StartEpilogue() {
	for _, r := range t {
		r.StartEpilogue()
	}
}

func (t tee) StartAct(kind ir.ActKind) {
	for _, r := range t {
		r.StartAct(kind)
	}
}

func (t tee) ActTitle(text string) {
	for _, r := range t {
		r.ActTitle(text)
	}
}

func (t tee) StartActPrologue() {
	for _, r := range t {
		r.StartActPrologue()
	}
}

func (t tee) StartActEpilogue() {
	for _, r := range t {
		r.StartActEpilogue()
	}
}

func (t tee) StartScene() {
	for _, r := range t {
		r.StartScene()
	}
}

func (t tee) SceneTitle(text string) {
	for _, r := range t {
		r.SceneTitle(text)
	}
}

func (t tee) StartSpeech() {
	for _, r := range t {
		r.StartSpeech()
	}
}

func (t tee) Speaker(text string) {
	for _, r := range t {
		r.Speaker(text)
	}
}

func (t tee) StartLine() {
	for _, r := range t {
		r.StartLine()
	}
}

func (t tee) Text(text string) {
	for _, r := range t {
		r.Text(text)
	}
}

func (t tee) Parenthetical(text string) {
	for _, r := range t {
		r.Parenthetical(text)
	}
}

func (t tee) StageDirection(text string) {
	for _, r := range t {
		r.StageDirection(text)
	}
}

func (t tee) SpeechStageDirection(text string) {
	for _, r := range t {
		r.SpeechStageDirection(text)
	}
}
