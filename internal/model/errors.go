package model

import (
	"fmt"
	"strings"
)

// ErrorKind classifies failures of the quality engine.
type ErrorKind string

const (
	KindUnsupportedMetric          ErrorKind = "unsupported_metric"
	KindInvalidWeightConfiguration ErrorKind = "invalid_weight_configuration"
	KindMissingKey                 ErrorKind = "missing_key"
	KindShapeMismatch              ErrorKind = "shape_mismatch"
	KindDuplicateKey               ErrorKind = "duplicate_key"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrUnsupportedMetric          = &Error{Kind: KindUnsupportedMetric}
	ErrInvalidWeightConfiguration = &Error{Kind: KindInvalidWeightConfiguration}
	ErrMissingKey                 = &Error{Kind: KindMissingKey}
	ErrShapeMismatch              = &Error{Kind: KindShapeMismatch}
	ErrDuplicateKey               = &Error{Kind: KindDuplicateKey}
)

// Error is the structured error returned by the engine. Keys names the
// offending metric, node or vector keys.
type Error struct {
	Kind   ErrorKind `json:"kind"`
	Keys   []string  `json:"keys,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if len(e.Keys) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Keys, ", "))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func UnsupportedMetric(key, detail string) *Error {
	return &Error{Kind: KindUnsupportedMetric, Keys: []string{key}, Detail: detail}
}

func MissingKey(key string) *Error {
	return &Error{Kind: KindMissingKey, Keys: []string{key}}
}

func DuplicateKey(key string) *Error {
	return &Error{Kind: KindDuplicateKey, Keys: []string{key}}
}

func InvalidWeights(detail string, keys ...string) *Error {
	return &Error{Kind: KindInvalidWeightConfiguration, Keys: keys, Detail: detail}
}

// ShapeMismatch names the keys missing from and extra in the developed vector.
func ShapeMismatch(missing, extra []string) *Error {
	keys := make([]string, 0, len(missing)+len(extra))
	keys = append(keys, missing...)
	keys = append(keys, extra...)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing from developed: "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "not planned: "+strings.Join(extra, ", "))
	}
	return &Error{Kind: KindShapeMismatch, Keys: keys, Detail: strings.Join(parts, "; ")}
}
