package mapping

import (
	"errors"
	"strings"
)

// ErrInvalidPayload rejects a non-JSON payload for an insurer whose
// mapping is a JSON object.
var ErrInvalidPayload = errors.New("payload must be valid JSON")

// Value is one insurer mapping payload: either a serialized JSON
// object or a bare scalar code, stored as TEXT. The zero Value means
// "no mapping".
type Value string

// Normalize canonicalizes a raw payload cell. Spreadsheet exports
// leak textual null markers; all of them collapse to the empty value.
func Normalize(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "nan", "none", "null":
		return ""
	}
	return Value(trimmed)
}

// Empty reports whether the value carries no mapping. An empty JSON
// object is equivalent to no mapping at all.
func (v Value) Empty() bool {
	trimmed := strings.TrimSpace(string(v))
	return trimmed == "" || trimmed == "{}"
}

func (v Value) String() string { return string(v) }

// Decision is the per-row outcome of the bulk reconciler.
type Decision int

const (
	Skip Decision = iota
	Update
)

// Decide applies the reconciliation policy for one row: overwrite
// forces an update; an empty current value is filled only when the
// incoming payload is non-empty; otherwise any textual difference
// updates and identical text skips.
func Decide(current, incoming Value, overwrite bool) Decision {
	if overwrite {
		return Update
	}
	if current.Empty() {
		if incoming.Empty() {
			return Skip
		}
		return Update
	}
	if string(current) != string(incoming) {
		return Update
	}
	return Skip
}
