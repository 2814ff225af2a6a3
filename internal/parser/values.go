package parser

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a coerced value from a generic key:value block. It is one of
// String, Int, Float or Disabled.
type Value interface {
	// Raw returns the value as written (for Disabled, the raw value without the marker).
	Raw() string
	isValue()
}

// String is an unparsed value.
type String string

// Int is a value written as one or more digits.
type Int int64

// Float is a value written as digits.digits.
type Float float64

// Disabled is an entry whose key carried the `~` prefix. Its value is never
// numeric-coerced.
type Disabled struct {
	Value string
}

func (v String) Raw() string   { return string(v) }
func (v Int) Raw() string      { return strconv.FormatInt(int64(v), 10) }
func (v Float) Raw() string    { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v Disabled) Raw() string { return v.Value }

func (String) isValue()   {}
func (Int) isValue()      {}
func (Float) isValue()    {}
func (Disabled) isValue() {}

// MarshalJSON encodes a disabled entry as {"value": "...", "disabled": true}.
func (v Disabled) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value    string `json:"value"`
		Disabled bool   `json:"disabled"`
	}{v.Value, true})
}

// Pair is one entry in a KeyValues list.
type Pair struct {
	Key   string
	Value Value
}

// Disabled reports whether the entry was written with a `~` prefix.
func (p Pair) Disabled() bool {
	_, ok := p.Value.(Disabled)
	return ok
}

// KeyValues is an insertion-ordered map. Setting an existing key replaces its
// value without moving it.
type KeyValues []Pair

// Set assigns key, replacing any previous value in place.
func (kv *KeyValues) Set(key string, v Value) {
	for i := range *kv {
		if (*kv)[i].Key == key {
			(*kv)[i].Value = v
			return
		}
	}
	*kv = append(*kv, Pair{Key: key, Value: v})
}

// Get returns the value stored under key.
func (kv KeyValues) Get(key string) (Value, bool) {
	for _, p := range kv {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (kv KeyValues) Len() int { return len(kv) }

// Map returns the entries keyed by name with raw string values.
func (kv KeyValues) Map() map[string]string {
	m := make(map[string]string, len(kv))
	for _, p := range kv {
		m[p.Key] = p.Value.Raw()
	}
	return m
}

// Enabled returns the entries that are not disabled.
func (kv KeyValues) Enabled() KeyValues {
	var out KeyValues
	for _, p := range kv {
		if !p.Disabled() {
			out = append(out, p)
		}
	}
	return out
}

// MarshalJSON encodes the list as a JSON object in insertion order.
func (kv KeyValues) MarshalJSON() ([]byte, error) {
	if kv == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range kv {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
