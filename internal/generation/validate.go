package generation

import (
	"strconv"
	"strings"

	"surveypulse/internal/model"
)

// Validate normalizes parsed candidates into at most limit questions.
// Elements that are not objects with both "text" and "type" are dropped, as
// are elements whose text is blank.
func Validate(elems []any, limit int) []model.GeneratedQuestion {
	out := make([]model.GeneratedQuestion, 0, min(len(elems), max(limit, 0)))
	for _, e := range elems {
		if len(out) >= limit {
			break
		}
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		rawText, hasText := obj["text"]
		rawType, hasType := obj["type"]
		if !hasText || !hasType {
			continue
		}

		text := strings.TrimSpace(stringify(rawText))
		if text == "" {
			continue
		}
		qt := coerceType(rawType)

		var options []string
		if qt == model.QuestionTypeMultipleChoice {
			options = coerceOptions(obj["options"])
		}
		if options == nil {
			options = []string{}
		}

		required := true
		if v, present := obj["required"]; present {
			required = truthy(v)
		}

		out = append(out, model.GeneratedQuestion{
			Text:     text,
			Type:     qt,
			Options:  options,
			Required: required,
		})
	}
	return out
}

// coerceType maps a declared type onto a generatable type, defaulting to text
func coerceType(v any) model.QuestionType {
	s, _ := v.(string)
	t := model.QuestionType(strings.TrimSpace(s))
	if t.Generatable() {
		return t
	}
	return model.QuestionTypeText
}

func coerceOptions(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	options := make([]string, 0, len(list))
	for _, o := range list {
		if o == nil {
			continue
		}
		if s := strings.TrimSpace(stringify(o)); s != "" {
			options = append(options, s)
		}
	}
	return options
}

// truthy reads a loosely typed flag: null, false, 0 and empty values are
// false, everything else (including the string "false") is true
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return b != ""
	case []any:
		return len(b) > 0
	case map[string]any:
		return len(b) > 0
	}
	return true
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}
