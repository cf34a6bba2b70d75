package hashid

import "github.com/speps/go-hashids/v2"

// Process-wide defaults for field configuration. Set these once at startup,
// before any codec or field is constructed.
var (
	DefaultSalt           = ""
	DefaultMinLength      = 7
	DefaultAlphabet       = hashids.DefaultAlphabet
	DefaultAllowIntLookup = false
)

// DefaultCodec, when set, handles the configuration-free paths: scanning
// into a zero Hashid, unmarshaling JSON or text, and the package-level
// Wrap. Set it once at startup via SetDefault.
var DefaultCodec *Codec

// SetDefault installs the process-wide codec and updates the package
// defaults so later per-field codecs inherit the same configuration.
// Call once at startup.
func SetDefault(cfg Config) error {
	c, err := NewCodec(cfg)
	if err != nil {
		return err
	}
	DefaultCodec = c
	DefaultSalt = c.cfg.Salt
	DefaultMinLength = c.cfg.MinLength
	DefaultAlphabet = c.cfg.Alphabet
	DefaultAllowIntLookup = c.cfg.AllowIntLookup
	return nil
}

// Wrap normalizes v into a *Hashid using the DefaultCodec.
// Returns ErrUnconfigured if SetDefault has not been called.
func Wrap(v any) (*Hashid, error) {
	if DefaultCodec == nil {
		return nil, ErrUnconfigured
	}
	return DefaultCodec.Wrap(v)
}

// Must panics if err is not nil
func Must(h *Hashid, err error) *Hashid {
	if err != nil {
		panic(err)
	}
	return h
}
