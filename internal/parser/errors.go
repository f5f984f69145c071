package parser

import "fmt"

// StructureError reports input that lacks the PLAY root or cannot be walked.
type StructureError struct {
	Path   string // element path, e.g. "/PLAY/ACT[2]"
	Reason string
}

func (e *StructureError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("play structure: %s", e.Reason)
	}
	return fmt.Sprintf("play structure at %s: %s", e.Path, e.Reason)
}

// ContractError reports an event that arrived with no open cursor to apply it to.
// It means a walker or receiver broke the emission order, not bad input.
type ContractError struct {
	Event  string // event name, e.g. "Speaker"
	Cursor string // missing cursor: "act", "scene", "speech" or "line"
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("receiver contract: %s received with no open %s", e.Event, e.Cursor)
}

// SourceDataError reports missing expected content. Only raised in strict mode.
type SourceDataError struct {
	Path   string
	Reason string
}

func (e *SourceDataError) Error() string {
	return fmt.Sprintf("source data at %s: %s", e.Path, e.Reason)
}
