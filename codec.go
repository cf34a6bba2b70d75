package hashid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speps/go-hashids/v2"
)

var (
	// ErrInvalid is returned when a value is neither a non-negative integer
	// nor a decodable hashid string.
	ErrInvalid = errors.New("hashid: value must be a non-negative integer or a valid hashid string")

	// ErrInvalidHashid is returned when a string cannot be decoded under the
	// configured salt, alphabet, and prefix.
	ErrInvalidHashid = errors.New("hashid: value must be a valid hashid string")

	// ErrAlphabetTooShort is returned when an alphabet has fewer than 16
	// distinct characters.
	ErrAlphabetTooShort = errors.New("hashid: alphabet must contain at least 16 distinct characters")
)

// Config holds the encoding parameters for a field. Set once at field
// definition time and immutable thereafter.
type Config struct {
	// Salt perturbs the encoding so the same id produces different strings
	// under different salts. Empty is allowed but flagged by Check.
	Salt string

	// MinLength is the minimum length of the encoded string.
	MinLength int

	// Alphabet is the set of characters used by the encoding. Must contain
	// at least 16 distinct characters.
	Alphabet string

	// Prefix is prepended to every encoded string and stripped on decode.
	Prefix string

	// AllowIntLookup permits raw integers in query lookups alongside
	// hashid strings.
	AllowIntLookup bool
}

// withDefaults fills zero values from the package-level defaults.
func (c Config) withDefaults() Config {
	if c.Salt == "" {
		c.Salt = DefaultSalt
	}
	if c.MinLength == 0 {
		c.MinLength = DefaultMinLength
	}
	if c.Alphabet == "" {
		c.Alphabet = DefaultAlphabet
	}
	if DefaultAllowIntLookup {
		c.AllowIntLookup = true
	}
	return c
}

// CheckLevel is the severity of a configuration check message.
type CheckLevel int

const (
	CheckWarning CheckLevel = iota
	CheckError
)

// CheckMessage is a single configuration check result.
type CheckMessage struct {
	ID    string
	Level CheckLevel
	Msg   string
	Hint  string
}

// Check validates the configuration. Messages at CheckError level make the
// configuration unusable; warnings are advisory.
func (c Config) Check() []CheckMessage {
	c = c.withDefaults()
	var msgs []CheckMessage
	if distinctChars(c.Alphabet) < 16 {
		msgs = append(msgs, CheckMessage{
			ID:    "hashid.E001",
			Level: CheckError,
			Msg:   "'Alphabet' must contain a minimum of 16 distinct characters",
			Hint:  "Add more characters to the custom 'Alphabet'",
		})
	}
	if c.Salt == "" {
		msgs = append(msgs, CheckMessage{
			ID:    "hashid.W001",
			Level: CheckWarning,
			Msg:   "'Salt' is not set",
			Hint:  "Pass a salt in the field Config or set hashid.DefaultSalt",
		})
	}
	return msgs
}

func distinctChars(s string) int {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// Codec encodes and decodes integer ids under a fixed salt, alphabet,
// minimum length, and prefix. Safe for concurrent use once constructed.
type Codec struct {
	cfg Config
	h   *hashids.HashID
}

// NewCodec builds a Codec from cfg, filling unset values from the package
// defaults. Returns ErrAlphabetTooShort when the alphabet cannot support
// the encoding.
func NewCodec(cfg Config) (*Codec, error) {
	cfg = cfg.withDefaults()
	if distinctChars(cfg.Alphabet) < 16 {
		return nil, ErrAlphabetTooShort
	}
	hd := hashids.NewData()
	hd.Salt = cfg.Salt
	hd.MinLength = cfg.MinLength
	hd.Alphabet = cfg.Alphabet
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("hashid: %w", err)
	}
	return &Codec{cfg: cfg, h: h}, nil
}

// MustCodec is NewCodec that panics on error.
func MustCodec(cfg Config) *Codec {
	c, err := NewCodec(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// Config returns the resolved configuration of the codec.
func (c *Codec) Config() Config {
	return c.cfg
}

// Encode returns the hashid string for id, prefix included. The result is
// always at least MinLength characters long (before the prefix).
func (c *Codec) Encode(id int64) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalid, id)
	}
	s, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		return "", fmt.Errorf("hashid: encode %d: %w", id, err)
	}
	return c.cfg.Prefix + s, nil
}

// Decode parses a hashid string back to its id. The configured prefix must
// be present. Strings that do not round-trip under this codec's salt and
// alphabet are rejected.
func (c *Codec) Decode(s string) (int64, error) {
	if c.cfg.Prefix != "" {
		rest, ok := strings.CutPrefix(s, c.cfg.Prefix)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidHashid, s)
		}
		s = rest
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidHashid)
	}
	ids, err := c.h.DecodeInt64WithError(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHashid, s)
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHashid, s)
	}
	return ids[0], nil
}

// Wrap normalizes v into a *Hashid bound to this codec. Accepts a
// non-negative integer of any width, a decodable hashid string, or an
// existing *Hashid (returned unchanged).
func (c *Codec) Wrap(v any) (*Hashid, error) {
	switch x := v.(type) {
	case *Hashid:
		return x, nil
	case int:
		return c.wrapInt64(int64(x))
	case int8:
		return c.wrapInt64(int64(x))
	case int16:
		return c.wrapInt64(int64(x))
	case int32:
		return c.wrapInt64(int64(x))
	case int64:
		return c.wrapInt64(x)
	case uint:
		return c.wrapUint64(uint64(x))
	case uint8:
		return c.wrapInt64(int64(x))
	case uint16:
		return c.wrapInt64(int64(x))
	case uint32:
		return c.wrapInt64(int64(x))
	case uint64:
		return c.wrapUint64(x)
	case string:
		id, err := c.Decode(x)
		if err != nil {
			return nil, err
		}
		return &Hashid{id: id, codec: c, enc: x}, nil
	default:
		return nil, fmt.Errorf("%w: %v (%T)", ErrInvalid, v, v)
	}
}

// MustWrap is Wrap that panics on error.
func (c *Codec) MustWrap(v any) *Hashid {
	h, err := c.Wrap(v)
	if err != nil {
		panic(err)
	}
	return h
}

func (c *Codec) wrapInt64(id int64) (*Hashid, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalid, id)
	}
	return &Hashid{id: id, codec: c}, nil
}

func (c *Codec) wrapUint64(id uint64) (*Hashid, error) {
	if id > 1<<63-1 {
		return nil, fmt.Errorf("%w: %d overflows int64", ErrInvalid, id)
	}
	return &Hashid{id: int64(id), codec: c}, nil
}
