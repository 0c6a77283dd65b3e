package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fields is an insertion-ordered map from field name to Value, the payload of
// a document. Order is preserved across JSON round-trips so stored documents
// stay byte-stable between migration runs.
type Fields struct {
	keys   []string
	values map[string]Value
}

// NewFields returns an empty field set.
func NewFields() *Fields {
	return &Fields{values: make(map[string]Value)}
}

// Set inserts or replaces a field. New keys append at the end.
func (f *Fields) Set(key string, v Value) *Fields {
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = v
	return f
}

// Get returns the value for key, and whether it exists.
func (f *Fields) Get(key string) (Value, bool) {
	if f == nil || f.values == nil {
		return Value{}, false
	}
	v, ok := f.values[key]
	return v, ok
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the field names in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Clone returns a deep copy.
func (f *Fields) Clone() *Fields {
	out := NewFields()
	if f == nil {
		return out
	}
	for _, k := range f.keys {
		out.Set(k, f.values[k].Clone())
	}
	return out
}

// Equal compares two field sets by content, ignoring key order.
func (f *Fields) Equal(o *Fields) bool {
	if f.Len() != o.Len() {
		return false
	}
	for _, k := range f.Keys() {
		ov, ok := o.Get(k)
		if !ok {
			return false
		}
		v, _ := f.Get(k)
		if !v.Equal(ov) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the fields as a JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := f.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("fields: marshal %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (f *Fields) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("fields: expected object, got %v", tok)
	}
	parsed, err := decodeFields(dec)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// decodeFields reads object members until the closing brace.
// The opening '{' must already be consumed.
func decodeFields(dec *json.Decoder) (*Fields, error) {
	f := NewFields()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("fields: expected object key, got %v", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("fields: decode %q: %w", key, err)
		}
		f.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return f, nil
}
