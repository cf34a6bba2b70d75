package hashid

import (
	"errors"
	"testing"
)

func lookupField(t *testing.T, allowInt bool) *Field {
	t.Helper()
	cfg := testConfig
	cfg.AllowIntLookup = allowInt
	f, err := NewField("id", cfg)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestGetLookup(t *testing.T) {
	f := lookupField(t, false)

	supported := []string{"exact", "iexact", "contains", "icontains", "in", "isnull"}
	for _, name := range supported {
		if _, ok := f.GetLookup(name); !ok {
			t.Errorf("GetLookup(%q) = false, want true", name)
		}
	}

	unsupported := []string{"gt", "gte", "lt", "lte", "range", "startswith", "regex"}
	for _, name := range unsupported {
		if _, ok := f.GetLookup(name); ok {
			t.Errorf("GetLookup(%q) = true, want false", name)
		}
	}

	if _, err := f.Translate("gt", 5); !errors.Is(err, ErrUnsupportedLookup) {
		t.Errorf("Translate(gt) err = %v, want ErrUnsupportedLookup", err)
	}
}

func TestExactLookup(t *testing.T) {
	f := lookupField(t, false)
	s, _ := f.Codec().Encode(42)

	for _, name := range []string{"exact", "iexact", "contains", "icontains"} {
		t.Run(name, func(t *testing.T) {
			got, err := f.Translate(name, s)
			if err != nil {
				t.Fatal(err)
			}
			if got != int64(42) {
				t.Errorf("Translate(%s, %q) = %v, want 42", name, s, got)
			}
		})
	}

	t.Run("Wrapped", func(t *testing.T) {
		got, err := f.Translate("exact", f.Codec().MustWrap(42))
		if err != nil {
			t.Fatal(err)
		}
		if got != int64(42) {
			t.Errorf("Translate(exact, *Hashid) = %v, want 42", got)
		}
	})
	t.Run("Undecodable", func(t *testing.T) {
		if _, err := f.Translate("exact", "!!!bad!!!"); !errors.Is(err, ErrEmptyResult) {
			t.Errorf("Translate err = %v, want ErrEmptyResult", err)
		}
	})
	t.Run("IntDisallowed", func(t *testing.T) {
		if _, err := f.Translate("exact", 42); !errors.Is(err, ErrEmptyResult) {
			t.Errorf("Translate(exact, 42) err = %v, want ErrEmptyResult", err)
		}
	})
	t.Run("IntAllowed", func(t *testing.T) {
		allow := lookupField(t, true)
		got, err := allow.Translate("exact", 42)
		if err != nil {
			t.Fatal(err)
		}
		if got != int64(42) {
			t.Errorf("Translate(exact, 42) = %v, want 42", got)
		}
	})
}

func TestInLookup(t *testing.T) {
	f := lookupField(t, false)
	a, _ := f.Codec().Encode(1)
	b, _ := f.Codec().Encode(2)

	t.Run("AllValid", func(t *testing.T) {
		got, err := f.Translate("in", []string{a, b})
		if err != nil {
			t.Fatal(err)
		}
		ids := got.([]int64)
		if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
			t.Errorf("Translate(in) = %v, want [1 2]", ids)
		}
	})
	t.Run("DropsUndecodable", func(t *testing.T) {
		got, err := f.Translate("in", []string{a, "!!!bad!!!", b})
		if err != nil {
			t.Fatal(err)
		}
		ids := got.([]int64)
		if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
			t.Errorf("Translate(in) = %v, want [1 2] with bad entry dropped", ids)
		}
	})
	t.Run("AllDropped", func(t *testing.T) {
		if _, err := f.Translate("in", []string{"!!!bad!!!", "also bad"}); !errors.Is(err, ErrEmptyResult) {
			t.Errorf("Translate err = %v, want ErrEmptyResult", err)
		}
	})
	t.Run("IntsDisallowed", func(t *testing.T) {
		// Raw integers are dropped unless AllowIntLookup is set
		got, err := f.Translate("in", []any{a, 2})
		if err != nil {
			t.Fatal(err)
		}
		ids := got.([]int64)
		if len(ids) != 1 || ids[0] != 1 {
			t.Errorf("Translate(in) = %v, want [1]", ids)
		}
	})
	t.Run("IntsAllowed", func(t *testing.T) {
		allow := lookupField(t, true)
		sa, _ := allow.Codec().Encode(1)
		got, err := allow.Translate("in", []any{sa, 2})
		if err != nil {
			t.Fatal(err)
		}
		ids := got.([]int64)
		if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
			t.Errorf("Translate(in) = %v, want [1 2]", ids)
		}
	})
	t.Run("NotASlice", func(t *testing.T) {
		if _, err := f.Translate("in", 42); err == nil {
			t.Error("Translate(in, 42) succeeded, want error")
		}
	})
}

func TestIsNullLookup(t *testing.T) {
	f := lookupField(t, false)
	got, err := f.Translate("isnull", true)
	if err != nil {
		t.Fatal(err)
	}
	if got != true {
		t.Errorf("Translate(isnull, true) = %v, want true", got)
	}
}

func TestWhere(t *testing.T) {
	f := lookupField(t, false)
	s, _ := f.Codec().Encode(42)

	t.Run("Exact", func(t *testing.T) {
		clause, args, err := f.Where("exact", s)
		if err != nil {
			t.Fatal(err)
		}
		if clause != "id = ?" {
			t.Errorf("clause = %q, want %q", clause, "id = ?")
		}
		if len(args) != 1 || args[0] != int64(42) {
			t.Errorf("args = %v, want [42]", args)
		}
	})
	t.Run("In", func(t *testing.T) {
		a, _ := f.Codec().Encode(1)
		b, _ := f.Codec().Encode(2)
		clause, args, err := f.Where("in", []string{a, b})
		if err != nil {
			t.Fatal(err)
		}
		if clause != "id IN (?, ?)" {
			t.Errorf("clause = %q, want %q", clause, "id IN (?, ?)")
		}
		if len(args) != 2 || args[0] != int64(1) || args[1] != int64(2) {
			t.Errorf("args = %v, want [1 2]", args)
		}
	})
	t.Run("IsNull", func(t *testing.T) {
		clause, args, err := f.Where("isnull", true)
		if err != nil {
			t.Fatal(err)
		}
		if clause != "id IS NULL" || args != nil {
			t.Errorf("Where(isnull, true) = (%q, %v)", clause, args)
		}
		clause, _, err = f.Where("isnull", false)
		if err != nil {
			t.Fatal(err)
		}
		if clause != "id IS NOT NULL" {
			t.Errorf("Where(isnull, false) = %q", clause)
		}
	})
	t.Run("EmptyResult", func(t *testing.T) {
		// An undecodable filter value matches nothing rather than erroring
		clause, args, err := f.Where("exact", "!!!bad!!!")
		if err != nil {
			t.Fatal(err)
		}
		if clause != "1 = 0" || args != nil {
			t.Errorf("Where of undecodable value = (%q, %v), want (1 = 0, nil)", clause, args)
		}
	})
	t.Run("Unsupported", func(t *testing.T) {
		if _, _, err := f.Where("gt", 5); !errors.Is(err, ErrUnsupportedLookup) {
			t.Errorf("Where(gt) err = %v, want ErrUnsupportedLookup", err)
		}
	})
}
