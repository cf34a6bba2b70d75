package hashid

// Descriptor is the per-attribute interceptor installed by a field: a
// getter/setter pair closing over the field's codec. One descriptor is
// built per field instance because salt, alphabet, minimum length, and
// prefix are per-field.
type Descriptor struct {
	// Name is the attribute the descriptor is installed under.
	Name string

	codec *Codec
}

// Get intercepts an attribute read. A stored raw value is wrapped into a
// *Hashid; an absent value (nil) passes through. A stored value that
// cannot be wrapped under this field's configuration is returned verbatim,
// mirroring the permissive write path.
func (d *Descriptor) Get(stored any) any {
	if stored == nil {
		return nil
	}
	if h, ok := stored.(*Hashid); ok {
		return h
	}
	h, err := d.codec.Wrap(stored)
	if err != nil {
		return stored
	}
	return h
}

// Set intercepts an attribute write. An already-wrapped value or nil is
// stored unchanged. Anything else is wrapped; if wrapping fails the raw
// value is stored as-is rather than raising, so bulk-construction code
// paths keep working. Strict validation happens in Field.PrepValue when
// the value is coerced for the database.
func (d *Descriptor) Set(value any) any {
	if value == nil {
		return nil
	}
	if h, ok := value.(*Hashid); ok {
		return h
	}
	h, err := d.codec.Wrap(value)
	if err != nil {
		return value
	}
	return h
}
