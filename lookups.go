package hashid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedLookup is returned for lookup kinds the field does not
	// translate. Callers surface their own "no such lookup" error.
	ErrUnsupportedLookup = errors.New("hashid: unsupported lookup")

	// ErrEmptyResult means the translated filter can match no rows, e.g. an
	// exact lookup on an undecodable string or an in lookup whose every
	// element was dropped.
	ErrEmptyResult = errors.New("hashid: lookup matches no rows")
)

// Lookup translates a filter value from its hashid-string form to the
// underlying integer form used against the database.
type Lookup func(value any) (any, error)

// Lookup kinds by category. Equality-style lookups decode the value to its
// integer; the membership lookup decodes per element; null checks pass
// through; everything else is unsupported.
var (
	exactLookups       = []string{"exact", "iexact", "contains", "icontains"}
	iterableLookups    = []string{"in"}
	passthroughLookups = []string{"isnull"}
)

// GetLookup returns the translator for the named lookup kind, or false
// when the kind is not allowed on hashid fields.
func (f *Field) GetLookup(name string) (Lookup, bool) {
	for _, n := range exactLookups {
		if name == n {
			return f.exactLookup, true
		}
	}
	for _, n := range iterableLookups {
		if name == n {
			return f.inLookup, true
		}
	}
	for _, n := range passthroughLookups {
		if name == n {
			return passthrough, true
		}
	}
	return nil, false
}

// Translate runs the named lookup's translator over value.
func (f *Field) Translate(name string, value any) (any, error) {
	lk, ok := f.GetLookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLookup, name)
	}
	return lk(value)
}

func (f *Field) exactLookup(value any) (any, error) {
	id, ok := f.lookupID(value)
	if !ok {
		return nil, ErrEmptyResult
	}
	return id, nil
}

// inLookup decodes each element individually. Elements that fail to decode
// are dropped; raw integers pass through only under AllowIntLookup. An
// empty translated list matches nothing.
func (f *Field) inLookup(value any) (any, error) {
	elems, err := anySlice(value)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(elems))
	for _, e := range elems {
		if id, ok := f.lookupID(e); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrEmptyResult
	}
	return ids, nil
}

func passthrough(value any) (any, error) {
	return value, nil
}

// lookupID resolves a single filter value to its integer. Wrapped values
// carry their id; strings are decoded under the field's codec; raw
// integers are honored only when AllowIntLookup is set.
func (f *Field) lookupID(v any) (int64, bool) {
	switch x := v.(type) {
	case *Hashid:
		return x.Int64(), true
	case string:
		id, err := f.codec.Decode(x)
		return id, err == nil
	case int:
		return f.intLookup(int64(x))
	case int32:
		return f.intLookup(int64(x))
	case int64:
		return f.intLookup(x)
	case uint:
		return f.intLookup(int64(x))
	case uint32:
		return f.intLookup(int64(x))
	case uint64:
		if x > 1<<63-1 {
			return 0, false
		}
		return f.intLookup(int64(x))
	default:
		return 0, false
	}
}

func (f *Field) intLookup(id int64) (int64, bool) {
	if !f.allowIntLookup || id < 0 {
		return 0, false
	}
	return id, true
}

func anySlice(value any) ([]any, error) {
	switch xs := value.(type) {
	case []any:
		return xs, nil
	case []string:
		out := make([]any, len(xs))
		for i, x := range xs {
			out[i] = x
		}
		return out, nil
	case []int64:
		out := make([]any, len(xs))
		for i, x := range xs {
			out[i] = x
		}
		return out, nil
	case []int:
		out := make([]any, len(xs))
		for i, x := range xs {
			out[i] = x
		}
		return out, nil
	case []*Hashid:
		out := make([]any, len(xs))
		for i, x := range xs {
			out[i] = x
		}
		return out, nil
	default:
		return nil, fmt.Errorf("hashid: in lookup needs a slice, got %T", value)
	}
}

// Where builds a WHERE fragment with ?-placeholders from a lookup
// translation. A translation that can match nothing becomes the
// never-matching clause "1 = 0" instead of an error, so the containing
// query simply returns no rows.
func (f *Field) Where(lookup string, value any) (string, []any, error) {
	v, err := f.Translate(lookup, value)
	if errors.Is(err, ErrEmptyResult) {
		return "1 = 0", nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	col := f.Column()
	switch lookup {
	case "isnull":
		isNull, ok := v.(bool)
		if !ok {
			return "", nil, fmt.Errorf("hashid: isnull lookup needs a bool, got %T", v)
		}
		if isNull {
			return col + " IS NULL", nil, nil
		}
		return col + " IS NOT NULL", nil, nil
	case "in":
		ids := v.([]int64)
		args := make([]any, len(ids))
		ph := make([]string, len(ids))
		for i, id := range ids {
			args[i] = id
			ph[i] = "?"
		}
		return col + " IN (" + strings.Join(ph, ", ") + ")", args, nil
	default:
		return col + " = ?", []any{v}, nil
	}
}
