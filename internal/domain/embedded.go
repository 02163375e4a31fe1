package domain

import (
	"encoding/json"
)

// EmbeddedList is a list-valued field persisted as a serialized array inside a single column.
// It has two branches: the decoded Items, or the Raw stored text when that text could not be
// decoded. A zero EmbeddedList is an empty decoded list.
type EmbeddedList[T any] struct {
	Items []T
	Raw   string
}

// NewEmbeddedList returns a decoded list holding items.
func NewEmbeddedList[T any](items ...T) EmbeddedList[T] {
	return EmbeddedList[T]{Items: items}
}

// RawEmbeddedList returns the passthrough branch for stored text that failed to decode.
func RawEmbeddedList[T any](raw string) EmbeddedList[T] {
	return EmbeddedList[T]{Raw: raw}
}

// IsRaw reports whether the list holds undecodable stored text instead of items.
func (l EmbeddedList[T]) IsRaw() bool {
	return l.Raw != ""
}

// Len returns the number of decoded items (zero for the raw branch).
func (l EmbeddedList[T]) Len() int {
	if l.IsRaw() {
		return 0
	}
	return len(l.Items)
}

// MarshalJSON writes the raw branch as a JSON string and the decoded branch as an array.
func (l EmbeddedList[T]) MarshalJSON() ([]byte, error) {
	if l.IsRaw() {
		return json.Marshal(l.Raw)
	}
	if l.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Items)
}

// UnmarshalJSON accepts an array or null. Request bodies never carry the raw branch.
func (l *EmbeddedList[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	l.Items = items
	l.Raw = ""
	return nil
}
