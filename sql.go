package hashid

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
)

// NullHashid can be used with the standard sql package to represent an
// id column that can be NULL in the database.
type NullHashid struct {
	Hashid *Hashid
	Valid  bool
}

// Compile-time interface checks for NullHashid
var (
	_ driver.Valuer            = NullHashid{}
	_ sql.Scanner              = (*NullHashid)(nil)
	_ json.Marshaler           = NullHashid{}
	_ json.Unmarshaler         = (*NullHashid)(nil)
	_ encoding.TextMarshaler   = NullHashid{}
	_ encoding.TextUnmarshaler = (*NullHashid)(nil)
)

// Value implements the driver.Valuer interface.
func (n NullHashid) Value() (driver.Value, error) {
	if !n.Valid || n.Hashid == nil {
		return nil, nil
	}
	return n.Hashid.Value()
}

// Scan implements the sql.Scanner interface.
func (n *NullHashid) Scan(src interface{}) error {
	if src == nil {
		n.Hashid, n.Valid = nil, false
		return nil
	}

	h := new(Hashid)
	if err := h.Scan(src); err != nil {
		return err
	}
	n.Hashid, n.Valid = h, true
	return nil
}

var nullJSON = []byte("null")

// MarshalJSON marshals the NullHashid as null or the nested value as a string.
func (n NullHashid) MarshalJSON() ([]byte, error) {
	if !n.Valid || n.Hashid == nil {
		return nullJSON, nil
	}
	return n.Hashid.MarshalJSON()
}

// UnmarshalJSON unmarshals a NullHashid.
func (n *NullHashid) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.Hashid, n.Valid = nil, false
		return nil
	}
	h := new(Hashid)
	if err := h.UnmarshalJSON(b); err != nil {
		n.Hashid, n.Valid = nil, false
		return err
	}
	n.Hashid, n.Valid = h, true
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (n NullHashid) MarshalText() ([]byte, error) {
	if !n.Valid || n.Hashid == nil {
		return nil, nil
	}
	return n.Hashid.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NullHashid) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		n.Hashid, n.Valid = nil, false
		return nil
	}
	h := new(Hashid)
	if err := h.UnmarshalText(b); err != nil {
		n.Hashid, n.Valid = nil, false
		return err
	}
	n.Hashid, n.Valid = h, true
	return nil
}
