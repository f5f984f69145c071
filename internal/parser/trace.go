package parser

import (
	"github.com/rs/zerolog"

	"github.com/roboco-io/play2html/internal/ir"
)

// Tracer is a Receiver that logs every event with its arguments.
type Tracer struct {
	log   zerolog.Logger
	level zerolog.Level
}

// NewTracer creates a tracer logging at debug level.
func NewTracer(logger zerolog.Logger) *Tracer {
	return &Tracer{log: logger, level: zerolog.DebugLevel}
}

// WithLevel returns a copy of the tracer logging at level.
func (t *Tracer) WithLevel(level zerolog.Level) *Tracer {
	c := *t
	c.level = level
	return &c
}

func (t *Tracer) event(name string) *zerolog.Event {
	return t.log.WithLevel(t.level).Str("event", name)
}

// PlayTitle implements Receiver.
func (t *Tracer) PlayTitle(text string) { t.event("PlayTitle").Str("text", text).Send() }

// PlaySubtitle implements Receiver.
func (t *Tracer) PlaySubtitle(text string) { t.event("PlaySubtitle").Str("text", text).Send() }

// StartInduct implements Receiver.
func (t *Tracer) StartInduct() { t.event("StartInduct").Send() }

// StartPrologue implements Receiver.
func (t *Tracer) StartPrologue() { t.event("StartPrologue").Send() }

// StartEpilogue implements Receiver.
func (t *Tracer) StartEpilogue() { t.event("StartEpilogue").Send() }

// StartAct implements Receiver.
func (t *Tracer) StartAct(kind ir.ActKind) {
	t.event("StartAct").Str("kind", string(kind)).Send()
}

// ActTitle implements Receiver.
func (t *Tracer) ActTitle(text string) { t.event("ActTitle").Str("text", text).Send() }

// StartActPrologue implements Receiver.
func (t *Tracer) StartActPrologue() { t.event("StartActPrologue").Send() }

// StartActEpilogue implements Receiver.
func (t *Tracer) StartActEpilogue() { t.event("StartActEpilogue").Send() }

// StartScene implements Receiver.
func (t *Tracer) StartScene() { t.event("StartScene").Send() }

// SceneTitle implements Receiver.
func (t *Tracer) SceneTitle(text string) { t.event("SceneTitle").Str("text", text).Send() }

// StartSpeech implements Receiver.
func (t *Tracer) StartSpeech() { t.event("StartSpeech").Send() }

// Speaker implements Receiver.
func (t *Tracer) Speaker(text string) { t.event("Speaker").Str("text", text).Send() }

// StartLine implements Receiver.
func (t *Tracer) StartLine() { t.event("StartLine").Send() }

// Text implements Receiver.
func (t *Tracer) Text(text string) { t.event("Text").Str("text", text).Send() }

// Parenthetical implements Receiver.
func (t *Tracer) Parenthetical(text string) {
	t.event("Parenthetical").Str("text", text).Send()
}

// StageDirection implements Receiver.
func (t *Tracer) StageDirection(text string) {
	t.event("StageDirection").Str("text", text).Send()
}

// SpeechStageDirection implements Receiver.
func (t *Tracer) SpeechStageDirection(text string) {
	t.event("SpeechStageDirection").Str("text", text).Send()
}

var _ Receiver = (*Tracer)(nil)
