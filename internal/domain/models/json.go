// internal/domain/models/json.go
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexID is an identifier that the content API serves as either a JSON
// string or a JSON number. It always compares as its string form.
type FlexID string

// UnmarshalJSON accepts "42", 42, and null (null decodes to the empty id).
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// MarshalJSON emits the id as a string.
func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns the id as a plain string.
func (f FlexID) String() string {
	return string(f)
}

// FlexInt is an integer field the content API may serve as a number, a
// numeric string, something non-numeric, or omit entirely. Valid reports
// whether a usable integer was present; malformed values decode as absent
// rather than failing the whole record.
type FlexInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON never returns an error for scalar input: anything that is
// not a usable integer simply leaves the field invalid.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	f.Value, f.Valid = 0, false
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.Value = int(n)
	f.Valid = true
	return nil
}

// MarshalJSON emits the value, or null when absent.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
