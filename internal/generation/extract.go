package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawSnippetLen bounds the raw model text kept for diagnostics
const rawSnippetLen = 200

// Extractor turns raw model output into candidate question elements
type Extractor interface {
	Extract(raw string) ([]any, error)
}

// ParseFailure reports model output that held no usable JSON array. It is
// distinct from malformed elements, which the validator drops silently.
type ParseFailure struct {
	Reason  string
	Snippet string // leading part of the raw output
	Err     error
}

func (e *ParseFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ParseFailure) Unwrap() error { return e.Err }

func newParseFailure(raw, reason string, err error) *ParseFailure {
	return &ParseFailure{Reason: reason, Snippet: truncate(raw, rawSnippetLen), Err: err}
}

// BracketExtractor parses the text between the first '[' and the last ']'.
// Explanatory prose around the array is tolerated; prose containing brackets
// of its own can still defeat it.
type BracketExtractor struct{}

func (BracketExtractor) Extract(raw string) ([]any, error) {
	start := strings.IndexByte(raw, '[')
	end := strings.LastIndexByte(raw, ']')
	if start == -1 || end == -1 || end <= start {
		return nil, newParseFailure(raw, "no JSON array found in model output", nil)
	}

	var elems []any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &elems); err != nil {
		return nil, newParseFailure(raw, "JSON decode error", err)
	}
	return elems, nil
}

// questionEnvelope is the object shape requested in structured-output mode
type questionEnvelope struct {
	Questions []any `json:"questions"`
}

// EnvelopeExtractor reads {"questions": [...]} replies produced under a JSON
// schema response format, without scanning for brackets. A reply that is a
// bare array (backends that only honor the JSON MIME type) is accepted as is.
type EnvelopeExtractor struct{}

func (EnvelopeExtractor) Extract(raw string) ([]any, error) {
	body := strings.TrimSpace(raw)
	if strings.HasPrefix(body, "[") {
		var elems []any
		if err := json.Unmarshal([]byte(body), &elems); err != nil {
			return nil, newParseFailure(raw, "JSON decode error", err)
		}
		return elems, nil
	}

	var env questionEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, newParseFailure(raw, "JSON decode error", err)
	}
	if env.Questions == nil {
		return nil, newParseFailure(raw, "questions field missing from model output", nil)
	}
	return env.Questions, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
