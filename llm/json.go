package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONObject is returned when no parseable JSON object can be recovered
// from a model response.
var ErrNoJSONObject = errors.New("no JSON object found in response")

var (
	lineCommentRe  = regexp.MustCompile(`(^|[^:])//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	fencedObjectRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
)

// ExtractJSONObject recovers a JSON object from raw model output. Models
// occasionally wrap objects in markdown fences, annotate them with
// JavaScript-style comments, or surround them with prose. Recovery order:
// parse the trimmed reply as-is, retry with comments stripped, then look
// for a fenced object, then take the widest brace-delimited window. The
// comment stripper skips "//" preceded by ":" (protocol URLs in string
// values).
func ExtractJSONObject(raw string) ([]byte, error) {
	stripped := stripComments(raw)

	for _, text := range []string{raw, stripped} {
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
			return []byte(trimmed), nil
		}
	}

	for _, text := range []string{raw, stripped} {
		if m := fencedObjectRe.FindStringSubmatch(text); m != nil {
			candidate := strings.TrimSpace(m[1])
			if json.Valid([]byte(candidate)) {
				return []byte(candidate), nil
			}
		}

		if start := strings.Index(text, "{"); start >= 0 {
			if end := strings.LastIndex(text, "}"); end > start {
				candidate := strings.TrimSpace(text[start : end+1])
				if json.Valid([]byte(candidate)) {
					return []byte(candidate), nil
				}
			}
		}
	}

	return nil, ErrNoJSONObject
}

func stripComments(s string) string {
	out := lineCommentRe.ReplaceAllString(s, "$1")
	return blockCommentRe.ReplaceAllString(out, "")
}

// DecodeLenient unmarshals data into v, tolerating fields whose JSON type
// does not match the destination. Mismatched fields keep their zero values
// so a partially well-formed model response still grades on whatever decoded
// cleanly. Syntax errors are still reported.
func DecodeLenient(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}
