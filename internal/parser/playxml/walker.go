package playxml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/roboco-io/play2html/internal/ir"
	"github.com/roboco-io/play2html/internal/parser"
)

// Walker traverses a drama DOM and reports structural events to a receiver.
// It keeps no output state and can be reused for any number of documents.
type Walker struct {
	strict bool
}

// NewWalker creates a walker with the given options.
func NewWalker(opts parser.Options) *Walker {
	return &Walker{strict: opts.Strict}
}

// Traverse walks doc in document order, emitting events to r.
// Only a missing PLAY root fails in the default mode; every other section is optional.
func (w *Walker) Traverse(doc *etree.Document, r parser.Receiver) error {
	if doc == nil {
		return &parser.StructureError{Reason: "no document"}
	}
	root := doc.Root()
	if root == nil {
		return &parser.StructureError{Path: "/", Reason: "document has no root element"}
	}
	if KindOf(root) != KindPlay {
		return &parser.StructureError{
			Path:   "/" + root.Tag,
			Reason: "root element is not PLAY",
		}
	}

	t := &traversal{strict: w.strict, r: r}
	return t.play(root)
}

// traversal carries one Traverse call.
type traversal struct {
	strict bool
	r      parser.Receiver
}

func (t *traversal) play(play *etree.Element) error {
	for _, e := range children(play, KindTitle) {
		text, err := t.text(e)
		if err != nil {
			return err
		}
		t.r.PlayTitle(text)
	}
	for _, e := range children(play, KindPlaySubtitle) {
		text, err := t.text(e)
		if err != nil {
			return err
		}
		t.r.PlaySubtitle(text)
	}

	// Induction matter is either a run of scenes or one undivided block.
	inducts := children(play, KindInduct)
	if hasScenes(inducts) {
		for _, e := range inducts {
			if err := t.act(e, ir.ActInduct); err != nil {
				return err
			}
		}
	} else if len(inducts) > 0 {
		t.r.StartInduct()
		if err := t.scene(inducts[0]); err != nil {
			return err
		}
	}

	if e := first(play, KindPrologue); e != nil {
		t.r.StartPrologue()
		if err := t.scene(e); err != nil {
			return err
		}
	}

	for _, e := range children(play, KindAct) {
		if err := t.act(e, ir.ActAct); err != nil {
			return err
		}
	}

	if e := first(play, KindEpilogue); e != nil {
		t.r.StartEpilogue()
		if err := t.scene(e); err != nil {
			return err
		}
	}
	return nil
}

func hasScenes(es []*etree.Element) bool {
	for _, e := range es {
		if first(e, KindScene) != nil {
			return true
		}
	}
	return false
}

func (t *traversal) act(act *etree.Element, kind ir.ActKind) error {
	t.r.StartAct(kind)
	for _, e := range children(act, KindTitle) {
		text, err := t.text(e)
		if err != nil {
			return err
		}
		t.r.ActTitle(text)
	}

	if e := first(act, KindPrologue); e != nil {
		t.r.StartActPrologue()
		if err := t.scene(e); err != nil {
			return err
		}
	}
	for _, e := range children(act, KindScene) {
		t.r.StartScene()
		if err := t.scene(e); err != nil {
			return err
		}
	}
	if e := first(act, KindEpilogue); e != nil {
		t.r.StartActEpilogue()
		if err := t.scene(e); err != nil {
			return err
		}
	}
	return nil
}

// scene reports the content of any scene-bearing element: SCENE, or an
// INDUCT/PROLOGUE/EPILOGUE standing in for one.
func (t *traversal) scene(scene *etree.Element) error {
	for _, e := range children(scene, KindTitle) {
		text, err := t.text(e)
		if err != nil {
			return err
		}
		t.r.SceneTitle(text)
	}

	for _, e := range scene.ChildElements() {
		switch KindOf(e) {
		case KindSpeech:
			if err := t.speech(e); err != nil {
				return err
			}
		case KindStageDir, KindSubhead:
			text, err := t.text(e)
			if err != nil {
				return err
			}
			t.r.StageDirection(text)
		default:
			// titles were reported above; anything else is not scene content
		}
	}
	return nil
}

func (t *traversal) speech(speech *etree.Element) error {
	t.r.StartSpeech()
	for _, e := range speech.ChildElements() {
		switch KindOf(e) {
		case KindSpeaker:
			text, err := t.text(e)
			if err != nil {
				return err
			}
			t.r.Speaker(text)
		case KindLine:
			t.r.StartLine()
			t.line(e)
		case KindStageDir, KindSubhead:
			text, err := t.text(e)
			if err != nil {
				return err
			}
			t.r.SpeechStageDirection(text)
		}
	}
	return nil
}

// line reports each child node of a LINE. Character data becomes text,
// any element becomes a parenthetical; both are trimmed.
func (t *traversal) line(line *etree.Element) {
	for _, tok := range line.Child {
		switch c := tok.(type) {
		case *etree.CharData:
			t.r.Text(strings.TrimSpace(c.Data))
		case *etree.Element:
			t.r.Parenthetical(strings.TrimSpace(c.Text()))
		}
	}
}

// text returns the leading character data of e verbatim.
func (t *traversal) text(e *etree.Element) (string, error) {
	text := e.Text()
	if t.strict && strings.TrimSpace(text) == "" {
		return "", &parser.SourceDataError{
			Path:   e.GetPath(),
			Reason: fmt.Sprintf("%s has no text", e.Tag),
		}
	}
	return text, nil
}
