package postgres

import (
	"database/sql"
	"encoding/json"

	"bookingcalendar/internal/domain"
)

// encodeList serializes an embedded list to the compact JSON array stored in its column.
// Items are written in compact form, so opaque values read back equal as JSON but not
// byte for byte. The raw branch is written back unchanged.
func encodeList[T any](l domain.EmbeddedList[T]) (string, error) {
	if l.IsRaw() {
		return l.Raw, nil
	}
	items := l.Items
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList is decode-or-passthrough: NULL or empty text is an empty list, and text that
// parse rejects is kept verbatim in the raw branch instead of failing the read.
func decodeList[T any](col sql.NullString, parse func([]byte) ([]T, error)) domain.EmbeddedList[T] {
	if !col.Valid || col.String == "" {
		return domain.EmbeddedList[T]{}
	}
	items, err := parse([]byte(col.String))
	if err != nil {
		return domain.RawEmbeddedList[T](col.String)
	}
	if len(items) == 0 {
		return domain.EmbeddedList[T]{}
	}
	return domain.NewEmbeddedList(items...)
}

// parseIDs accepts numbers and numeric strings, the forms older rows were written with.
func parseIDs(b []byte) ([]int64, error) {
	var elems []json.Number
	if err := json.Unmarshal(b, &elems); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(elems))
	for _, n := range elems {
		id, err := n.Int64()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseStrings(b []byte) ([]string, error) {
	var s []string
	err := json.Unmarshal(b, &s)
	return s, err
}

func parseRaw(b []byte) ([]json.RawMessage, error) {
	var v []json.RawMessage
	err := json.Unmarshal(b, &v)
	return v, err
}
