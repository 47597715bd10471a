// Package jsonval provides a tagged-variant representation of a parsed JSON
// document for shape-based discovery.
//
// The discovery core locates geometric records by structural pattern, not by
// schema path, so it needs a value type it can walk and match explicitly:
// every Value carries one of six kinds (Object, Array, String, Number, Bool,
// Null) and exposes typed accessors that report whether the conversion was
// possible. No reflection is involved.
//
// Two properties distinguish this from a bare map[string]any tree:
//
//   - Object member order is preserved by [Decode], so a pre-order walk of
//     the document is deterministic and matches the source text.
//   - Numbers keep their source literal, so 64-bit unsigned indices up to
//     the "no such index" sentinel (math.MaxUint64) round-trip exactly.
//     A float64-backed tree cannot represent that value.
package jsonval

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "invalid"
}

// Member is a single key/value pair of an Object, in source order.
type Member struct {
	Key   string
	Value Value
}

// Value is one node of a parsed JSON document.
// The zero value is Null.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  []Member
	idx  map[string]int // key -> position in obj
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Member returns the value of the named object member.
// The second return is false if v is not an object or the key is absent.
func (v Value) Member(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	i, ok := v.idx[key]
	if !ok {
		return Value{}, false
	}
	return v.obj[i].Value, true
}

// Has reports whether v is an object with the named member.
func (v Value) Has(key string) bool {
	_, ok := v.Member(key)
	return ok
}

// Members returns the object members in source order, or nil if v is not
// an object. The returned slice must not be modified.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.obj
}

// Items returns the array elements, or nil if v is not an array.
// The returned slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// Len returns the number of array elements or object members, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	}
	return 0
}

// Float returns the value as a float64. The second return is false if v is
// not a number or the literal does not parse.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.num.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Uint returns the value as a uint64. The second return is false if v is
// not a number or the literal is not an unsigned integer in range. Unlike
// Float, this is exact for the full uint64 range, including the max-uint64
// "no such index" sentinel.
func (v Value) Uint() (uint64, bool) {
	if v.kind != Number {
		return 0, false
	}
	u, err := strconv.ParseUint(v.num.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return u, true
}

// Str returns the value as a string. The second return is false if v is
// not a JSON string.
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

// BoolVal returns the value as a bool. The second return is false if v is
// not a JSON boolean.
func (v Value) BoolVal() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// Truthy reports whether v is a non-zero, non-empty, non-null value,
// mirroring the looseness of the source generator's optional fields:
// null, false, 0, "", [] and {} are all falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case Null:
		return false
	case Bool:
		return v.b
	case Number:
		f, ok := v.Float()
		return ok && f != 0
	case String:
		return v.str != ""
	case Array:
		return len(v.arr) > 0
	case Object:
		return len(v.obj) > 0
	}
	return false
}

// =============================================================================
// Decoding
// =============================================================================

// Decode parses a complete JSON document from r, preserving object member
// order. Numbers are kept as source literals.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("decode: %w", err)
	}
	// Trailing garbage after the document is an error.
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("decode: trailing data after document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return Value{kind: String, str: t}, nil
	case json.Number:
		return Value{kind: Number, num: t}, nil
	case bool:
		return Value{kind: Bool, b: t}, nil
	case nil:
		return Value{}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	v := Value{kind: Object, idx: map[string]int{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		member, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		// Duplicate keys keep the last value, like encoding/json.
		if i, dup := v.idx[key]; dup {
			v.obj[i].Value = member
			continue
		}
		v.idx[key] = len(v.obj)
		v.obj = append(v.obj, Member{Key: key, Value: member})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return Value{}, err
	}
	return v, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	v := Value{kind: Array}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.arr = append(v.arr, item)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return Value{}, err
	}
	return v, nil
}

// =============================================================================
// Adapting pre-decoded trees
// =============================================================================

// FromAny adapts an already-decoded generic JSON tree (as produced by
// encoding/json into any) into a Value. Object members are ordered by
// sorted key, since the original ordering is lost in a Go map; callers that
// need source order should decode with [Decode] instead.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Value{}
	case bool:
		return Value{kind: Bool, b: t}
	case float64:
		return Value{kind: Number, num: json.Number(strconv.FormatFloat(t, 'g', -1, 64))}
	case json.Number:
		return Value{kind: Number, num: t}
	case int:
		return Value{kind: Number, num: json.Number(strconv.Itoa(t))}
	case uint64:
		return Value{kind: Number, num: json.Number(strconv.FormatUint(t, 10))}
	case string:
		return Value{kind: String, str: t}
	case []any:
		v := Value{kind: Array, arr: make([]Value, len(t))}
		for i, item := range t {
			v.arr[i] = FromAny(item)
		}
		return v
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		v := Value{kind: Object, idx: make(map[string]int, len(t))}
		for _, k := range keys {
			v.idx[k] = len(v.obj)
			v.obj = append(v.obj, Member{Key: k, Value: FromAny(t[k])})
		}
		return v
	}
	// Unknown dynamic types decode to null rather than panicking; the
	// discoverer treats them as unmatched scalars.
	return Value{}
}

// Obj builds an object Value from ordered members. Test helper quality:
// later duplicate keys overwrite earlier ones.
func Obj(members ...Member) Value {
	v := Value{kind: Object, idx: map[string]int{}}
	for _, m := range members {
		if i, dup := v.idx[m.Key]; dup {
			v.obj[i].Value = m.Value
			continue
		}
		v.idx[m.Key] = len(v.obj)
		v.obj = append(v.obj, m)
	}
	return v
}

// Arr builds an array Value from elements.
func Arr(items ...Value) Value { return Value{kind: Array, arr: items} }

// Num builds a number Value from a float64.
func Num(f float64) Value {
	return Value{kind: Number, num: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// UintNum builds a number Value from a uint64, exact over the full range.
func UintNum(u uint64) Value {
	return Value{kind: Number, num: json.Number(strconv.FormatUint(u, 10))}
}

// Text builds a string Value.
func Text(s string) Value { return Value{kind: String, str: s} }
