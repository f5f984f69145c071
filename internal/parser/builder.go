package parser

import "github.com/roboco-io/play2html/internal/ir"

// Builder is the reference Receiver. It assembles one ir.Play from the
// events of a single traversal.
//
// The first contract violation is kept and every later event is ignored,
// so a broken event stream never yields a partial play.
type Builder struct {
	play *ir.Play

	// cursors, moved only by the Start* events
	act    *ir.Act
	scene  *ir.Scene
	speech *ir.Speech
	line   *ir.Line

	err error
}

// NewBuilder creates a builder holding an empty play.
func NewBuilder() *Builder {
	return &Builder{play: ir.NewPlay()}
}

// Play returns the assembled play, or the first contract error.
func (b *Builder) Play() (*ir.Play, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.play, nil
}

// Err returns the first contract error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Reset discards all state so the builder can be used for another play.
func (b *Builder) Reset() {
	*b = Builder{play: ir.NewPlay()}
}

func (b *Builder) fail(event, cursor string) bool {
	if b.err == nil {
		b.err = &ContractError{Event: event, Cursor: cursor}
	}
	return false
}

// need reports whether an event may be applied: no earlier error and the
// cursor it mutates is open.
func (b *Builder) need(event, cursor string, open bool) bool {
	if b.err != nil {
		return false
	}
	if !open {
		return b.fail(event, cursor)
	}
	return true
}

// PlayTitle implements Receiver.
func (b *Builder) PlayTitle(text string) {
	if b.err == nil {
		b.play.Title = ir.Text(text)
	}
}

// PlaySubtitle implements Receiver.
func (b *Builder) PlaySubtitle(text string) {
	if b.err == nil {
		b.play.Subtitle = ir.Text(text)
	}
}

// StartInduct implements Receiver.
func (b *Builder) StartInduct() {
	b.StartAct(ir.ActInduct)
	b.openScene("StartInduct", ir.SceneScene)
}

// StartPrologue implements Receiver.
func (b *Builder) StartPrologue() {
	b.StartAct(ir.ActPrologue)
	b.openScene("StartPrologue", ir.SceneScene)
}

// StartEpilogue implements Receiver.
func (b *Builder) StartEpilogue() {
	b.StartAct(ir.ActEpilogue)
	b.openScene("StartEpilogue", ir.SceneScene)
}

// StartAct implements Receiver.
func (b *Builder) StartAct(kind ir.ActKind) {
	if b.err != nil {
		return
	}
	b.act = b.play.AddAct(ir.NewAct(kind))
	b.scene, b.speech, b.line = nil, nil, nil
}

// ActTitle implements Receiver.
func (b *Builder) ActTitle(text string) {
	if b.need("ActTitle", "act", b.act != nil) {
		b.act.Title = ir.Text(text)
	}
}

// StartActPrologue implements Receiver.
func (b *Builder) StartActPrologue() {
	b.openScene("StartActPrologue", ir.ScenePrologue)
}

// StartActEpilogue implements Receiver.
func (b *Builder) StartActEpilogue() {
	b.openScene("StartActEpilogue", ir.SceneEpilogue)
}

// StartScene implements Receiver.
func (b *Builder) StartScene() {
	b.openScene("StartScene", ir.SceneScene)
}

func (b *Builder) openScene(event string, kind ir.SceneKind) {
	if b.need(event, "act", b.act != nil) {
		b.scene = b.act.AddScene(ir.NewScene(kind))
		b.speech, b.line = nil, nil
	}
}

// SceneTitle implements Receiver.
func (b *Builder) SceneTitle(text string) {
	if b.need("SceneTitle", "scene", b.scene != nil) {
		b.scene.Title = ir.Text(text)
	}
}

// StartSpeech implements Receiver.
func (b *Builder) StartSpeech() {
	if b.need("StartSpeech", "scene", b.scene != nil) {
		b.speech = b.scene.AddSpeech(ir.NewSpeech())
		b.line = nil
	}
}

// Speaker implements Receiver.
func (b *Builder) Speaker(text string) {
	if b.need("Speaker", "speech", b.speech != nil) {
		b.speech.AddSpeaker(text)
	}
}

// StartLine implements Receiver.
func (b *Builder) StartLine() {
	if b.need("StartLine", "speech", b.speech != nil) {
		b.line = b.speech.AddLine(ir.NewLine())
	}
}

// Text implements Receiver.
func (b *Builder) Text(text string) {
	if b.need("Text", "line", b.line != nil) {
		b.line.AppendText(text)
	}
}

// Parenthetical implements Receiver.
func (b *Builder) Parenthetical(text string) {
	if b.need("Parenthetical", "line", b.line != nil) {
		b.line.AppendParenthetical(text)
	}
}

// StageDirection implements Receiver.
func (b *Builder) StageDirection(text string) {
	if b.need("StageDirection", "scene", b.scene != nil) {
		b.scene.AddStageDirection(text)
	}
}

// SpeechStageDirection implements Receiver.
func (b *Builder) SpeechStageDirection(text string) {
	if b.need("SpeechStageDirection", "speech", b.speech != nil) {
		b.speech.AddStageDirection(text)
	}
}

var _ Receiver = (*Builder)(nil)
