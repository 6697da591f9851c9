package types

import (
	"encoding/json"
	"testing"
)

func TestValue_DecodeByShape(t *testing.T) {
	var m map[string]Value
	input := []byte(`{"a":"3","b":4,"c":null,"d":3.7,"e":{"nested":true}}`)
	if err := json.Unmarshal(input, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m["a"].Kind != KindNumber || m["a"].Number != "3" {
		t.Errorf("a = %+v, want number %q", m["a"], "3")
	}
	if m["b"].Kind != KindStars || m["b"].Stars != 4 {
		t.Errorf("b = %+v, want 4 stars", m["b"])
	}
	if !m["c"].IsUnset() {
		t.Errorf("c = %+v, want unset", m["c"])
	}
	if m["d"].Kind != KindRaw {
		t.Errorf("d = %+v, want raw", m["d"])
	}
	if m["e"].Kind != KindRaw {
		t.Errorf("e = %+v, want raw", m["e"])
	}
}

func TestValue_RoundTripExact(t *testing.T) {
	// The field-to-value key contract must round-trip exactly: what was
	// fetched is what a no-edit save sends back.
	input := []byte(`{"a":"3","b":4,"c":null,"d":3.7}`)
	var m map[string]Value
	if err := json.Unmarshal(input, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var before, after map[string]any
	json.Unmarshal(input, &before)
	json.Unmarshal(out, &after)
	for k, v := range before {
		if got := after[k]; got != v {
			t.Errorf("key %s = %v (%T), want %v (%T)", k, got, got, v, v)
		}
	}
}

func TestValue_NonCanonicalIntegerStaysRaw(t *testing.T) {
	// 4.0 and 4e0 are numerically ratings but would re-encode as 4;
	// they must survive byte-for-byte instead of being canonicalized.
	for _, lex := range []string{`4.0`, `4e0`, `5.00`} {
		var v Value
		if err := json.Unmarshal([]byte(lex), &v); err != nil {
			t.Fatalf("unmarshal %s: %v", lex, err)
		}
		if v.Kind != KindRaw {
			t.Errorf("%s decoded as %+v, want raw", lex, v)
			continue
		}
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", lex, err)
		}
		if string(out) != lex {
			t.Errorf("%s re-encoded as %s", lex, out)
		}
	}

	var v Value
	if err := json.Unmarshal([]byte(`4`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Kind != KindStars || v.Stars != 4 {
		t.Errorf("bare 4 = %+v, want 4 stars", v)
	}
}

func TestStarsValue_Clamped(t *testing.T) {
	if v := StarsValue(9); v.Stars != 5 {
		t.Errorf("stars = %d, want 5", v.Stars)
	}
	if v := StarsValue(-1); v.Stars != 0 {
		t.Errorf("stars = %d, want 0", v.Stars)
	}
}
