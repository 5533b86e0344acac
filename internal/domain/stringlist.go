package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList stores the DB json value as a string but marshals to JSON as an
// array so the API always sends e.g. ["url1","url2"] rather than a quoted blob.
type StringList string

// MarshalJSON implements json.Marshaler so empty values serialize as [].
func (s StringList) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("[]"), nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return []byte("[]"), nil
	}
	return json.Marshal(arr)
}

// UnmarshalJSON implements json.Unmarshaler for reading from request bodies.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	bs, err := json.Marshal(arr)
	if err != nil {
		return err
	}
	*s = StringList(bs)
	return nil
}

// Scan implements sql.Scanner for reading from DB (json column).
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*s = StringList(v)
		return nil
	case string:
		*s = StringList(v)
		return nil
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Value implements driver.Valuer for writing to DB.
func (s StringList) Value() (driver.Value, error) {
	if s == "" {
		return "[]", nil
	}
	return string(s), nil
}

// Items returns the decoded slice (nil-safe, empty on malformed data).
func (s StringList) Items() []string {
	if s == "" {
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil
	}
	return arr
}

// NewStringList builds a StringList from a slice.
func NewStringList(items []string) StringList {
	if len(items) == 0 {
		return ""
	}
	bs, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return StringList(bs)
}

// Union appends items not already present, preserving existing order.
// Uploaded document/image URLs are appended to, never silently overwritten.
func (s StringList) Union(items []string) StringList {
	existing := s.Items()
	seen := make(map[string]bool, len(existing))
	for _, it := range existing {
		seen[it] = true
	}
	out := existing
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return NewStringList(out)
}
