// Package ir defines the Intermediate Representation for drama scripts.
// IR is the output of the structural walker and the input for renderers.
package ir

// Play represents the intermediate representation of one drama script.
// Induct, prologue and epilogue sections at play level appear as Acts.
type Play struct {
	Title    *string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle *string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Acts     []*Act  `json:"acts" yaml:"acts"`
}

// ActKind tells which source section opened an Act.
type ActKind string

const (
	ActInduct   ActKind = "induct"
	ActPrologue ActKind = "prologue"
	ActAct      ActKind = "act"
	ActEpilogue ActKind = "epilogue"
)

// Act represents a top-level division of a play.
type Act struct {
	Kind   ActKind  `json:"kind" yaml:"kind"`
	Title  *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Scenes []*Scene `json:"scenes" yaml:"scenes"`
}

// NewPlay creates a new, empty play.
func NewPlay() *Play {
	return &Play{
		Acts: make([]*Act, 0),
	}
}

// NewAct creates a new act of the given kind.
func NewAct(kind ActKind) *Act {
	return &Act{
		Kind:   kind,
		Scenes: make([]*Scene, 0),
	}
}

// AddAct appends an act to the play and returns it.
func (p *Play) AddAct(a *Act) *Act {
	p.Acts = append(p.Acts, a)
	return a
}

// AddScene appends a scene to the act and returns it.
func (a *Act) AddScene(s *Scene) *Scene {
	a.Scenes = append(a.Scenes, s)
	return s
}

// IsSynthetic returns true for acts standing in for an induct, prologue or epilogue.
func (a *Act) IsSynthetic() bool {
	return a.Kind != ActAct
}

// Text returns a pointer to a copy of s, for optional title fields.
func Text(s string) *string {
	return &s
}

// TitleOr returns the title text, or fallback when the title is absent.
func TitleOr(title *string, fallback string) string {
	if title == nil {
		return fallback
	}
	return *title
}
