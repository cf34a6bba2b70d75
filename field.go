package hashid

import (
	"database/sql/driver"
	"fmt"
)

// ColumnRef resolves to a database column name. *Field and *AutoField
// satisfy it; a ProxyField holds one to mirror its target's column.
type ColumnRef interface {
	Column() string
}

// Field maps an integer database column to hashid-wrapped application
// values. Configuration is fixed at construction and shared by every
// value the field produces.
type Field struct {
	name           string
	column         string
	codec          *Codec
	allowIntLookup bool

	// target is set on proxy fields only; the field then owns no column
	// of its own and always resolves to the target's.
	target ColumnRef
}

// NewField builds a plain field named name, stored in a column of the same
// name. Fails when the configuration fails its checks (see Config.Check).
func NewField(name string, cfg Config) (*Field, error) {
	cfg = cfg.withDefaults()
	codec, err := NewCodec(cfg)
	if err != nil {
		return nil, fmt.Errorf("hashid: field %q: %w", name, err)
	}
	return &Field{
		name:           name,
		column:         name,
		codec:          codec,
		allowIntLookup: cfg.AllowIntLookup,
	}, nil
}

// Name returns the application-level attribute name.
func (f *Field) Name() string {
	return f.name
}

// Column returns the database column the field reads and writes. A proxy
// field resolves to its target's column.
func (f *Field) Column() string {
	if f.target != nil {
		return f.target.Column()
	}
	return f.column
}

// Virtual reports whether the field owns no storage column of its own.
func (f *Field) Virtual() bool {
	return f.target != nil
}

// Codec returns the field's codec.
func (f *Field) Codec() *Codec {
	return f.codec
}

// Check runs the configuration checks for the field.
func (f *Field) Check() []CheckMessage {
	return f.codec.cfg.Check()
}

// Descriptor returns the attribute interceptor for this field.
func (f *Field) Descriptor() *Descriptor {
	return &Descriptor{Name: f.name, codec: f.codec}
}

// Wrap converts v to the canonical wrapped form for application-level use.
// Accepts a non-negative integer, a hashid string, or a *Hashid; anything
// else is a validation error.
func (f *Field) Wrap(v any) (*Hashid, error) {
	if v == nil {
		return nil, nil
	}
	return f.codec.Wrap(v)
}

// PrepValue coerces v to the plain integer stored in the database. Unlike
// attribute assignment, an undecodable value here is an error.
func (f *Field) PrepValue(v any) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok && s == "" {
		return nil, nil
	}
	h, err := f.codec.Wrap(v)
	if err != nil {
		return nil, err
	}
	return h.Int64(), nil
}

// HTMLInputType returns the form input type for the field. Hashid strings
// are text, not numbers, so forms and admin UIs must render a text input.
func (f *Field) HTMLInputType() string {
	return "text"
}

// AutoField is a Field whose values come from an auto-incrementing integer
// sequence at the storage layer. Outside the database it allocates from an
// in-process Sequence; under Postgres, pair it with postgres.NextID.
type AutoField struct {
	Field
	seq *Sequence
}

// NewAutoField builds an auto-incrementing primary-key field.
func NewAutoField(name string, cfg Config) (*AutoField, error) {
	f, err := NewField(name, cfg)
	if err != nil {
		return nil, err
	}
	return &AutoField{Field: *f, seq: NewSequence(1)}, nil
}

// Sequence returns the field's in-process allocator.
func (f *AutoField) Sequence() *Sequence {
	return f.seq
}

// Next allocates the next id from the in-process sequence and returns it
// in wrapped form.
func (f *AutoField) Next() *Hashid {
	return &Hashid{id: f.seq.Next(), codec: f.codec}
}

// ProxyField is a virtual field mirroring another field's column. It never
// allocates storage of its own; it exists so a generated integer key can
// be exposed under a different name, with hashid encoding.
type ProxyField struct {
	Field
}

// NewProxyField builds a virtual field named name whose column always
// resolves to target's column.
func NewProxyField(name string, target ColumnRef, cfg Config) (*ProxyField, error) {
	f, err := NewField(name, cfg)
	if err != nil {
		return nil, err
	}
	f.column = ""
	f.target = target
	return &ProxyField{Field: *f}, nil
}
