package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags the variants of Value.
type ValueKind int

const (
	// KindUnset means no value has been entered for the field yet.
	// Every field known to the account gets an unset slot in a draft so
	// the editor can render an input for it.
	KindUnset ValueKind = iota
	// KindNumber holds string-encoded numeric content, the way a text
	// input produces it.
	KindNumber
	// KindStars holds a five-level rating, 0 through 5.
	KindStars
	// KindRaw preserves a stored JSON value that matches no declared
	// shape. It round-trips byte-for-byte.
	KindRaw
)

// Value is the value stored for one field on one entry, represented as a
// tagged union over the declared field types. The zero Value is unset.
type Value struct {
	Kind   ValueKind
	Number string          // KindNumber
	Stars  int             // KindStars, 0-5
	Raw    json.RawMessage // KindRaw
}

// Unset returns the unset value.
func Unset() Value { return Value{} }

// NumberValue returns a number-typed value.
func NumberValue(s string) Value { return Value{Kind: KindNumber, Number: s} }

// StarsValue returns a fivestar value. Out-of-range input is clamped to
// the 0-5 scale.
func StarsValue(n int) Value {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return Value{Kind: KindStars, Stars: n}
}

// IsUnset reports whether no value has been entered.
func (v Value) IsUnset() bool { return v.Kind == KindUnset }

// String renders the value the way a text input would show it.
func (v Value) String() string {
	switch v.Kind {
	case KindUnset:
		return ""
	case KindNumber:
		return v.Number
	case KindStars:
		return strconv.Itoa(v.Stars)
	case KindRaw:
		var s string
		if err := json.Unmarshal(v.Raw, &s); err == nil {
			return s
		}
		return string(v.Raw)
	}
	return ""
}

// MarshalJSON encodes the union. Field-to-value mappings must round-trip
// exactly in every direction, so unset encodes as null and raw values are
// emitted unchanged.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindUnset:
		return []byte("null"), nil
	case KindNumber:
		return json.Marshal(v.Number)
	case KindStars:
		return json.Marshal(v.Stars)
	case KindRaw:
		return append([]byte(nil), v.Raw...), nil
	}
	return nil, fmt.Errorf("types: unknown value kind %d", v.Kind)
}

// UnmarshalJSON decodes a stored value by JSON shape: null is unset, a
// string is a number field's content, a bare 0-5 integer is a rating.
// Anything else is kept raw so it survives a save unmodified — including
// non-canonical rating lexemes like 4.0, which would re-encode as 4 and
// break the byte-exact round trip.
func (v *Value) UnmarshalJSON(data []byte) error {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch p := probe.(type) {
	case nil:
		*v = Unset()
	case string:
		*v = NumberValue(p)
	case float64:
		if lex := string(bytes.TrimSpace(data)); len(lex) == 1 && lex[0] >= '0' && lex[0] <= '5' {
			*v = Value{Kind: KindStars, Stars: int(lex[0] - '0')}
			return nil
		}
		*v = Value{Kind: KindRaw, Raw: append([]byte(nil), data...)}
	default:
		*v = Value{Kind: KindRaw, Raw: append([]byte(nil), data...)}
	}
	return nil
}
