package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexID is an identifier the backend sends either as a JSON number or a
// JSON string. It is always held as its string form so lookups keyed on it
// are stable.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	*id = FlexID(CoerceID(data))
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id FlexID) String() string {
	return string(id)
}

// CoerceID turns a raw JSON value into an id string: numbers keep their
// literal text, strings are unquoted and trimmed, anything else is "".
func CoerceID(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ""
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ""
	}

	// 12.0 and 12 name the same match
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return n.String()
}
