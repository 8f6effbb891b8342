package strictconf

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
)

// Kind identifies the shape variant of a Value.
// The set is closed: every value a Provider can return is one of these.
type Kind int

const (
	// KindAbsent means the provider has no value for the key.
	// It is distinct from KindNull, which is a present-but-null value.
	KindAbsent Kind = iota
	// KindNull is an explicit null.
	KindNull
	// KindBool is a boolean.
	KindBool
	// KindInt is a signed integer. Never satisfied by a float.
	KindInt
	// KindFloat is a floating-point number. Never satisfied by an integer.
	KindFloat
	// KindString is a string.
	KindString
	// KindList is an ordered sequence of Values.
	KindList
	// KindMap is a sequence of key/value entries. Keys are Values too:
	// source mappings may carry non-string keys, and the map getters
	// must be able to reject them.
	KindMap
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is an opaque configuration value: a tagged union over the closed
// set of shapes a Provider may return. The zero Value is Absent.
//
// Values are immutable once constructed and safe to share across
// goroutines.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	list    []Value
	entries []MapEntry
}

// MapEntry is a single key/value pair of a map-shaped Value.
// The key is itself a Value because source mappings are not required
// to be string-keyed; the accessor validates key kinds on read.
type MapEntry struct {
	Key Value
	Val Value
}

// Absent returns the absent value. Providers return it for missing keys.
func Absent() Value {
	return Value{kind: KindAbsent}
}

// Null returns the explicit null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an integer Value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a floating-point Value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// List returns a list Value holding the given elements in order.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: elems}
}

// Map returns a map Value built from a string-keyed Go map.
// Entries are ordered by key so that iteration is deterministic.
func Map(m map[string]Value) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]MapEntry, 0, len(m))
	for _, k := range keys {
		entries = append(entries, MapEntry{Key: String(k), Val: m[k]})
	}
	return Value{kind: KindMap, entries: entries}
}

// MapFromEntries returns a map Value from explicit entries.
// Unlike Map, the entry keys may be of any kind; the map getters will
// reject non-string keys at read time.
func MapFromEntries(entries []MapEntry) Value {
	return Value{kind: KindMap, entries: entries}
}

// Kind returns the shape variant of v.
func (v Value) Kind() Kind {
	return v.kind
}

// AsBool returns the boolean payload. ok is false unless v is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer payload. ok is false unless v is an int;
// floats never satisfy AsInt.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat returns the float payload. ok is false unless v is a float;
// integers never satisfy AsFloat.
func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsString returns the string payload. ok is false unless v is a string.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsList returns the elements of a list value.
// The returned slice must not be modified.
func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// AsMap returns the entries of a map value.
// The returned slice must not be modified.
func (v Value) AsMap() ([]MapEntry, bool) {
	return v.entries, v.kind == KindMap
}

// IsMissing reports whether v is absent or null. The non-nullable
// getters treat both the same way, as do Chain providers.
func (v Value) IsMissing() bool {
	return v.kind == KindAbsent || v.kind == KindNull
}

// String renders the value for failure messages: scalars literally
// (quoted strings, bare numbers, true/false), absent and null as NULL,
// and composites as a short type token.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent, KindNull:
		return "NULL"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// FromAny converts a dynamically-typed Go value into a Value. It covers
// the shapes produced by yaml.v3 and encoding/json decoding (including
// json.Number and map[any]any), plus typed slices and maps via
// reflection. Conversion never changes a value's kind: integers stay
// integers and floats stay floats.
//
// Values of types outside the closed set (structs, channels, funcs)
// convert to Null.
func FromAny(raw any) Value {
	switch val := raw.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case bool:
		return Bool(val)
	case int:
		return Int(int64(val))
	case int8:
		return Int(int64(val))
	case int16:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case uint:
		return Int(int64(val))
	case uint8:
		return Int(int64(val))
	case uint16:
		return Int(int64(val))
	case uint32:
		return Int(int64(val))
	case uint64:
		return Int(int64(val))
	case float32:
		return Float(float64(val))
	case float64:
		return Float(val)
	case string:
		return String(val)
	case json.Number:
		// Decoders that use json.Number keep the int/float distinction
		// out of the wire text: no decimal point means integer.
		if i, err := val.Int64(); err == nil {
			return Int(i)
		}
		if f, err := val.Float64(); err == nil {
			return Float(f)
		}
		return String(val.String())
	case []any:
		elems := make([]Value, len(val))
		for i, e := range val {
			elems[i] = FromAny(e)
		}
		return List(elems...)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]MapEntry, 0, len(val))
		for _, k := range keys {
			entries = append(entries, MapEntry{Key: String(k), Val: FromAny(val[k])})
		}
		return MapFromEntries(entries)
	case map[any]any:
		entries := make([]MapEntry, 0, len(val))
		for k, e := range val {
			entries = append(entries, MapEntry{Key: FromAny(k), Val: FromAny(e)})
		}
		sortEntries(entries)
		return MapFromEntries(entries)
	}
	return fromReflect(raw)
}

// fromReflect handles typed slices and maps ([]string, map[string]int, ...)
// that don't match the concrete cases in FromAny.
func fromReflect(raw any) Value {
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())
		for i := range elems {
			elems[i] = FromAny(rv.Index(i).Interface())
		}
		return List(elems...)
	case reflect.Map:
		entries := make([]MapEntry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, MapEntry{
				Key: FromAny(iter.Key().Interface()),
				Val: FromAny(iter.Value().Interface()),
			})
		}
		sortEntries(entries)
		return MapFromEntries(entries)
	}
	return Null()
}

// sortEntries orders map entries by their rendered key for determinism.
func sortEntries(entries []MapEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.String() < entries[j].Key.String()
	})
}
