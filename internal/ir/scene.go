package ir

// SceneKind tells which source section opened a Scene.
type SceneKind string

const (
	SceneScene    SceneKind = "scene"
	ScenePrologue SceneKind = "prologue"
	SceneEpilogue SceneKind = "epilogue"
)

// PartType represents the type of a scene part.
type PartType string

const (
	PartTypeSpeech   PartType = "speech"
	PartTypeStageDir PartType = "stagedir"
)

// Scene represents a subdivision of an act.
type Scene struct {
	Kind  SceneKind `json:"kind" yaml:"kind"`
	Title *string   `json:"title,omitempty" yaml:"title,omitempty"`
	Parts []Part    `json:"parts" yaml:"parts"`
}

// Part is one entry of a scene: a speech or an unattributed stage direction.
type Part struct {
	Type           PartType        `json:"type" yaml:"type"`
	Speech         *Speech         `json:"speech,omitempty" yaml:"speech,omitempty"`
	StageDirection *StageDirection `json:"stagedir,omitempty" yaml:"stagedir,omitempty"`
}

// StageDirection is an unattributed staging note.
type StageDirection struct {
	Text string `json:"text" yaml:"text"`
}

// NewScene creates a new scene of the given kind.
func NewScene(kind SceneKind) *Scene {
	return &Scene{
		Kind:  kind,
		Parts: make([]Part, 0),
	}
}

// AddSpeech appends a speech part to the scene and returns the speech.
func (s *Scene) AddSpeech(sp *Speech) *Speech {
	s.Parts = append(s.Parts, Part{
		Type:   PartTypeSpeech,
		Speech: sp,
	})
	return sp
}

// AddStageDirection appends a stage direction part to the scene.
func (s *Scene) AddStageDirection(text string) {
	s.Parts = append(s.Parts, Part{
		Type:           PartTypeStageDir,
		StageDirection: &StageDirection{Text: text},
	})
}

// IsEmpty returns true if the scene has no parts.
func (s *Scene) IsEmpty() bool {
	return len(s.Parts) == 0
}
