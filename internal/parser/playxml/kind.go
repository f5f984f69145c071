package playxml

import "github.com/beevik/etree"

// Kind is the closed set of element kinds the walker dispatches on.
type Kind int

const (
	KindIgnored Kind = iota // anything not listed below (FM, PERSONAE, SCNDESCR, ...)
	KindPlay
	KindTitle
	KindPlaySubtitle
	KindInduct
	KindPrologue
	KindEpilogue
	KindAct
	KindScene
	KindSpeech
	KindSpeaker
	KindLine
	KindStageDir
	KindSubhead
)

var kindByTag = map[string]Kind{
	"PLAY":     KindPlay,
	"TITLE":    KindTitle,
	"PLAYSUBT": KindPlaySubtitle,
	"INDUCT":   KindInduct,
	"PROLOGUE": KindPrologue,
	"EPILOGUE": KindEpilogue,
	"ACT":      KindAct,
	"SCENE":    KindScene,
	"SPEECH":   KindSpeech,
	"SPEAKER":  KindSpeaker,
	"LINE":     KindLine,
	"STAGEDIR": KindStageDir,
	"SUBHEAD":  KindSubhead,
}

// KindOf classifies an element by its local tag name.
func KindOf(e *etree.Element) Kind {
	if e == nil {
		return KindIgnored
	}
	return kindByTag[e.Tag]
}

// String returns the tag name for the kind.
func (k Kind) String() string {
	for tag, kind := range kindByTag {
		if kind == k {
			return tag
		}
	}
	return "ignored"
}

// children returns the child elements of e of the given kind, in document order.
func children(e *etree.Element, kind Kind) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if KindOf(c) == kind {
			out = append(out, c)
		}
	}
	return out
}

// first returns the first child element of e of the given kind, or nil.
func first(e *etree.Element, kind Kind) *etree.Element {
	for _, c := range e.ChildElements() {
		if KindOf(c) == kind {
			return c
		}
	}
	return nil
}
