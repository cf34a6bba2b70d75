// Package hashid stores integer primary and foreign keys as plain integers
// in the database while presenting them to application code as reversible,
// salted string tokens. Encoding and decoding are delegated to
// github.com/speps/go-hashids/v2; this package contributes the lazy value
// wrapper, per-field attribute interception, and query-lookup translation.
package hashid

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Compile-time interface checks for Hashid
var (
	_ fmt.Stringer             = (*Hashid)(nil)
	_ driver.Valuer            = (*Hashid)(nil)
	_ sql.Scanner              = (*Hashid)(nil)
	_ encoding.TextMarshaler   = (*Hashid)(nil)
	_ encoding.TextUnmarshaler = (*Hashid)(nil)
	_ json.Marshaler           = (*Hashid)(nil)
	_ json.Unmarshaler         = (*Hashid)(nil)
)

// ErrUnconfigured is returned when an operation needs a codec but neither
// the value nor the process carries one. Configure the field explicitly or
// call SetDefault at startup; the raw integer is never emitted silently.
var ErrUnconfigured = errors.New("hashid: no codec configured; call SetDefault or configure the field")

// Hashid wraps a raw integer id. The integer is always available without
// triggering encoding; the string form is computed at most once per
// instance, and only when requested.
type Hashid struct {
	id    int64
	codec *Codec
	enc   string
}

// Int64 returns the raw id without triggering encoding.
func (h *Hashid) Int64() int64 {
	return h.id
}

// resolveCodec returns the value's own codec, falling back to DefaultCodec.
func (h *Hashid) resolveCodec() *Codec {
	if h.codec != nil {
		return h.codec
	}
	return DefaultCodec
}

// encoded returns the memoized hashid string, computing it on first use.
func (h *Hashid) encoded() (string, error) {
	if h.enc != "" {
		return h.enc, nil
	}
	c := h.resolveCodec()
	if c == nil {
		return "", ErrUnconfigured
	}
	s, err := c.Encode(h.id)
	if err != nil {
		return "", err
	}
	h.enc = s
	return s, nil
}

// String returns the encoded form. A value with no codec in reach falls
// back to the decimal representation.
func (h *Hashid) String() string {
	s, err := h.encoded()
	if err != nil {
		return strconv.FormatInt(h.id, 10)
	}
	return s
}

// Equal reports whether v represents the same id. Integers of any width
// compare against the raw id; strings compare against the encoded form;
// another *Hashid must match both id and encoding.
func (h *Hashid) Equal(v any) bool {
	switch x := v.(type) {
	case *Hashid:
		if x == nil {
			return h == nil
		}
		return h.id == x.id && h.String() == x.String()
	case string:
		return h.String() == x
	case int:
		return h.id == int64(x)
	case int8:
		return h.id == int64(x)
	case int16:
		return h.id == int64(x)
	case int32:
		return h.id == int64(x)
	case int64:
		return h.id == x
	case uint:
		return h.id >= 0 && uint64(h.id) == uint64(x)
	case uint8:
		return h.id == int64(x)
	case uint16:
		return h.id == int64(x)
	case uint32:
		return h.id == int64(x)
	case uint64:
		return h.id >= 0 && uint64(h.id) == x
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler
func (h *Hashid) MarshalText() ([]byte, error) {
	s, err := h.encoded()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (h *Hashid) UnmarshalText(b []byte) error {
	c := h.resolveCodec()
	if c == nil {
		return ErrUnconfigured
	}
	id, err := c.Decode(string(b))
	if err != nil {
		return err
	}
	h.id = id
	h.codec = c
	h.enc = string(b)
	return nil
}

// MarshalJSON implements json.Marshaler. It fails loudly instead of
// emitting the raw integer when no codec is configured.
func (h *Hashid) MarshalJSON() ([]byte, error) {
	s, err := h.encoded()
	if err != nil {
		return nil, err
	}
	return []byte(`"` + s + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (h *Hashid) UnmarshalJSON(b []byte) error {
	// Handle null
	if string(b) == "null" {
		h.id, h.enc = 0, ""
		return nil
	}
	// Handle numeric value
	if len(b) > 0 && b[0] != '"' {
		n, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil || n < 0 {
			return errors.New("hashid: invalid JSON value")
		}
		h.id, h.enc = n, ""
		return nil
	}
	// Handle quoted string
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("hashid: invalid JSON string")
	}
	return h.UnmarshalText(b[1 : len(b)-1])
}

// Value implements driver.Valuer for database storage. The database only
// ever sees the raw integer.
func (h *Hashid) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return h.id, nil
}

// Scan implements sql.Scanner for database retrieval.
func (h *Hashid) Scan(src interface{}) error {
	if src == nil {
		h.id, h.enc = 0, ""
		return nil
	}
	switch v := src.(type) {
	case int64:
		if v < 0 {
			return fmt.Errorf("%w: %d", ErrInvalid, v)
		}
		h.id, h.enc = v, ""
		return nil
	case []byte:
		return h.UnmarshalText(v)
	case string:
		return h.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("hashid: cannot scan %T", src)
	}
}
