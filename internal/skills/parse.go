// Package skills normalizes skill lists coming from the backend and scores how
// well a freelancer's skills cover the skills a job requires.
package skills

import (
	"regexp"
	"strings"
)

type kind int

const (
	kindUnknown kind = iota
	kindText
	kindList
)

// Input is a skills value as it arrives from the backend: a delimited string,
// an already split list, or something unusable.
type Input struct {
	kind  kind
	text  string
	items []any
}

// Text wraps a delimited skills string such as "Go, SQL; Docker".
func Text(s string) Input {
	return Input{kind: kindText, text: s}
}

// List wraps a pre-split sequence. Elements that are not strings are dropped by Parse.
func List(items ...any) Input {
	return Input{kind: kindList, items: items}
}

// Strings wraps a string slice.
func Strings(items []string) Input {
	converted := make([]any, 0, len(items))
	for _, item := range items {
		converted = append(converted, item)
	}
	return List(converted...)
}

// Unknown is an input that always parses to an empty list.
func Unknown() Input {
	return Input{}
}

// FromAny adapts a dynamically typed value, usually a decoded JSON field.
func FromAny(v any) Input {
	switch val := v.(type) {
	case nil:
		return Unknown()
	case Input:
		return val
	case string:
		return Text(val)
	case []string:
		return Strings(val)
	case []any:
		return List(val...)
	default:
		return Unknown()
	}
}

// separators matches any run of delimiters, so adjacent ones never produce empty tokens.
var separators = regexp.MustCompile(`[,;|\n]+`)

// Parse returns the trimmed, non-empty skill tokens of the input in their original order.
// Duplicates are kept. The result is never nil.
func Parse(in Input) []string {
	var raw []any

	switch in.kind {
	case kindText:
		if in.text == "" {
			return []string{}
		}
		for _, piece := range separators.Split(in.text, -1) {
			raw = append(raw, piece)
		}
	case kindList:
		raw = in.items
	default:
		return []string{}
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}

	return out
}
