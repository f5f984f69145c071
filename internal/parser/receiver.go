package parser

import "github.com/roboco-io/play2html/internal/ir"

// Receiver is the sink for structural events emitted by a play walker.
// Events arrive in document order. Implementations may ignore any of them.
type Receiver interface {
	PlayTitle(text string)
	PlaySubtitle(text string)

	// StartInduct, StartPrologue and StartEpilogue open a play-level act
	// together with its single scene.
	StartInduct()
	StartPrologue()
	StartEpilogue()

	StartAct(kind ir.ActKind)
	ActTitle(text string)

	// StartActPrologue and StartActEpilogue open a scene in the current act.
	StartActPrologue()
	StartActEpilogue()

	StartScene()
	SceneTitle(text string)

	StartSpeech()
	Speaker(text string)
	StartLine()
	Text(text string)
	Parenthetical(text string)

	// StageDirection is unattributed and belongs to the scene.
	StageDirection(text string)
	// SpeechStageDirection sits between the lines of the current speech.
	SpeechStageDirection(text string)
}

// NopReceiver ignores every event. Embed it to implement part of Receiver.
type NopReceiver struct{}

func (NopReceiver) PlayTitle(string) {}
func (NopReceiver) PlaySubtitle(string) {}
func (NopReceiver) StartInduct() {}
func (NopReceiver) StartPrologue() {}
func (NopReceiver) StartEpilogue() {}
func (NopReceiver) StartAct(ir.ActKind) {}
func (NopReceiver) ActTitle(string) {}
func (NopReceiver) StartActPrologue() {}
func (NopReceiver) StartActEpilogue() {}
func (NopReceiver) StartScene() {}
func (NopReceiver) SceneTitle(string) {}
func (NopReceiver) StartSpeech() {}
func (NopReceiver) Speaker(string) {}
func (NopReceiver) StartLine() {}
func (NopReceiver) Text(string) {}
func (NopReceiver) Parenthetical(string) {}
func (NopReceiver) StageDirection(string) {}
func (NopReceiver) SpeechStageDirection(string) {}
