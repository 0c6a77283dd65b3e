package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
	KindMap
	KindList
)

// Value is a closed sum over the types a document field may hold:
// null, string, number, bool, timestamp, nested map or list.
// Numbers are decimals so payloads round-trip through JSON storage without
// float precision loss. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  decimal.Decimal
	b    bool
	ts   time.Time
	m    *Fields
	list []Value
}

// Constructors, one per kind.

func Null() Value            { return Value{kind: KindNull} }
func String(s string) Value  { return Value{kind: KindString, str: s} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value { return Value{kind: KindTime, ts: t} }
func Map(f *Fields) Value    { return Value{kind: KindMap, m: f} }
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }
func Int(n int64) Value      { return Value{kind: KindNumber, num: decimal.NewFromInt(n)} }

func Number(d decimal.Decimal) Value {
	return Value{kind: KindNumber, num: d}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// Typed accessors. The bool result is false when the value holds another kind.

func (v Value) AsString() (string, bool)          { return v.str, v.kind == KindString }
func (v Value) AsNumber() (decimal.Decimal, bool) { return v.num, v.kind == KindNumber }
func (v Value) AsBool() (bool, bool)              { return v.b, v.kind == KindBool }
func (v Value) AsTime() (time.Time, bool)         { return v.ts, v.kind == KindTime }
func (v Value) AsMap() (*Fields, bool)            { return v.m, v.kind == KindMap }
func (v Value) AsList() ([]Value, bool)           { return v.list, v.kind == KindList }

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Equal compares two values structurally. Timestamps compare with
// time.Time.Equal, numbers with decimal equality, maps key-order-insensitively.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num.Equal(o.num)
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.ts.Equal(o.ts)
	case KindMap:
		return v.m.Equal(o.m)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	switch v.kind {
	case KindMap:
		return Map(v.m.Clone())
	case KindList:
		out := make([]Value, len(v.list))
		for i := range v.list {
			out[i] = v.list[i].Clone()
		}
		return Value{kind: KindList, list: out}
	default:
		return v
	}
}

// MarshalJSON encodes the value in its canonical JSON form.
// Timestamps encode as RFC3339Nano strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(v.num.String()), nil
	case KindBool:
		if v.b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindTime:
		return json.Marshal(v.ts.Format(time.RFC3339Nano))
	case KindMap:
		return v.m.MarshalJSON()
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("value: unknown kind %d", v.kind)
}

// decodeValue reads one JSON value from the decoder.
// Strings that parse as RFC3339 timestamps become KindTime so our own
// timestamp writes (createdAt, migratedAt) round-trip stably.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return Time(ts), nil
		}
		return String(t), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return Value{}, fmt.Errorf("value: parse number %q: %w", t.String(), err)
		}
		return Number(d), nil
	case json.Delim:
		switch t {
		case '{':
			m, err := decodeFields(dec)
			if err != nil {
				return Value{}, err
			}
			return Map(m), nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return List(items...), nil
		}
	}
	return Value{}, fmt.Errorf("value: unexpected token %v", tok)
}
