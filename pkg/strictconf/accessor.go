package strictconf

import (
	"errors"
	"fmt"
)

// Accessor is the validating facade over a single Provider. Each getter
// retrieves the raw value for a key and either returns it with the
// requested Go type or fails with *TypeMismatchError. No coercion is
// ever applied: "123" never satisfies Int, 1 never satisfies Float,
// and 1 never satisfies Bool.
//
// Accessor is stateless apart from the provider reference; one
// instance can be shared by any number of goroutines.
type Accessor struct {
	provider Provider
}

// New creates an Accessor over p. The provider cannot be swapped
// afterward; construction is the only configuration point. A nil
// provider behaves like an empty Static.
func New(p Provider) Accessor {
	if p == nil {
		p = NewStatic(nil)
	}
	return Accessor{provider: p}
}

// Shape descriptors used in failure messages.
const (
	wantString = "string"
	wantInt    = "int"
	wantBool   = "bool"
	wantFloat  = "float"
)

// get retrieves key and requires exactly the shape checked by as.
// Absent and null both fail: a non-nullable getter has no answer for a
// missing value.
func get[T any](a Accessor, key, want string, as func(Value) (T, bool)) (T, error) {
	var zero T
	v, err := a.provider.Get(key)
	if err != nil {
		return zero, err
	}
	t, ok := as(v)
	if !ok {
		return zero, mismatch(key, want, v)
	}
	return t, nil
}

// getNullable is get with absent and null mapped to a nil result.
// The two are indistinguishable at this layer.
func getNullable[T any](a Accessor, key, want string, as func(Value) (T, bool)) (*T, error) {
	v, err := a.provider.Get(key)
	if err != nil {
		return nil, err
	}
	if v.IsMissing() {
		return nil, nil
	}
	t, ok := as(v)
	if !ok {
		return nil, mismatch(key, want+"|null", v)
	}
	return &t, nil
}

// getOr substitutes def for exactly the mismatch failures of get.
// Provider errors are not mismatches and pass through.
func getOr[T any](a Accessor, key, want string, def T, as func(Value) (T, bool)) (T, error) {
	t, err := get(a, key, want, as)
	if err != nil {
		var zero T
		var typeErr *TypeMismatchError
		if errors.As(err, &typeErr) {
			return def, nil
		}
		return zero, err
	}
	return t, nil
}

// getList requires a list shape and validates each element in order.
// The first offending element fails with the element's own shape
// descriptor and a key localized as "key[index]".
func getList[T any](a Accessor, key, want string, as func(Value) (T, bool)) ([]T, error) {
	v, err := a.provider.Get(key)
	if err != nil {
		return nil, err
	}
	elems, ok := v.AsList()
	if !ok {
		return nil, mismatch(key, "list<"+want+">", v)
	}
	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		t, ok := as(elem)
		if !ok {
			return nil, mismatch(fmt.Sprintf("%s[%d]", key, i), want, elem)
		}
		out = append(out, t)
	}
	return out, nil
}

// getMap requires a map shape with string keys and values of the
// requested kind. Violations fail with the outer key; map failures are
// deliberately not localized to the offending entry, unlike lists.
func getMap[T any](a Accessor, key, want string, as func(Value) (T, bool)) (map[string]T, error) {
	v, err := a.provider.Get(key)
	if err != nil {
		return nil, err
	}
	wantMap := "map<string," + want + ">"
	entries, ok := v.AsMap()
	if !ok {
		return nil, mismatch(key, wantMap, v)
	}
	out := make(map[string]T, len(entries))
	for _, entry := range entries {
		name, ok := entry.Key.AsString()
		if !ok {
			return nil, mismatch(key, wantMap, v)
		}
		t, ok := as(entry.Val)
		if !ok {
			return nil, mismatch(key, wantMap, v)
		}
		out[name] = t
	}
	return out, nil
}

// String returns the string value for key.
// Fails with *TypeMismatchError if the value is missing or not a string.
func (a Accessor) String(key string) (string, error) {
	return get(a, key, wantString, Value.AsString)
}

// Int returns the integer value for key.
// Floats do not satisfy Int, whole-valued or not.
func (a Accessor) Int(key string) (int64, error) {
	return get(a, key, wantInt, Value.AsInt)
}

// Bool returns the boolean value for key.
func (a Accessor) Bool(key string) (bool, error) {
	return get(a, key, wantBool, Value.AsBool)
}

// Float returns the floating-point value for key.
// Integers do not satisfy Float; there is no numeric widening.
func (a Accessor) Float(key string) (float64, error) {
	return get(a, key, wantFloat, Value.AsFloat)
}

// NullableString returns the string value for key, or nil if the key
// is missing or explicitly null.
func (a Accessor) NullableString(key string) (*string, error) {
	return getNullable(a, key, wantString, Value.AsString)
}

// NullableInt returns the integer value for key, or nil if the key is
// missing or explicitly null.
func (a Accessor) NullableInt(key string) (*int64, error) {
	return getNullable(a, key, wantInt, Value.AsInt)
}

// NullableBool returns the boolean value for key, or nil if the key is
// missing or explicitly null.
func (a Accessor) NullableBool(key string) (*bool, error) {
	return getNullable(a, key, wantBool, Value.AsBool)
}

// NullableFloat returns the floating-point value for key, or nil if
// the key is missing or explicitly null.
func (a Accessor) NullableFloat(key string) (*float64, error) {
	return getNullable(a, key, wantFloat, Value.AsFloat)
}

// StringOr returns the string value for key, or def if the key is
// missing, null, or holds a value of the wrong type. Provider errors
// are returned unchanged, never replaced by the default.
func (a Accessor) StringOr(key, def string) (string, error) {
	return getOr(a, key, wantString, def, Value.AsString)
}

// IntOr returns the integer value for key, or def on any type mismatch.
func (a Accessor) IntOr(key string, def int64) (int64, error) {
	return getOr(a, key, wantInt, def, Value.AsInt)
}

// BoolOr returns the boolean value for key, or def on any type mismatch.
func (a Accessor) BoolOr(key string, def bool) (bool, error) {
	return getOr(a, key, wantBool, def, Value.AsBool)
}

// FloatOr returns the float value for key, or def on any type mismatch.
func (a Accessor) FloatOr(key string, def float64) (float64, error) {
	return getOr(a, key, wantFloat, def, Value.AsFloat)
}

// StringList returns the homogeneous string list stored under key.
// An empty list is valid. Element mismatches localize to "key[i]".
func (a Accessor) StringList(key string) ([]string, error) {
	return getList(a, key, wantString, Value.AsString)
}

// IntList returns the homogeneous integer list stored under key.
func (a Accessor) IntList(key string) ([]int64, error) {
	return getList(a, key, wantInt, Value.AsInt)
}

// BoolList returns the homogeneous boolean list stored under key.
func (a Accessor) BoolList(key string) ([]bool, error) {
	return getList(a, key, wantBool, Value.AsBool)
}

// FloatList returns the homogeneous float list stored under key.
func (a Accessor) FloatList(key string) ([]float64, error) {
	return getList(a, key, wantFloat, Value.AsFloat)
}

// StringMap returns the string-keyed map of strings stored under key.
// An empty map is valid. Both a non-string entry key and a wrongly
// typed entry value fail with the outer key.
func (a Accessor) StringMap(key string) (map[string]string, error) {
	return getMap(a, key, wantString, Value.AsString)
}

// IntMap returns the string-keyed map of integers stored under key.
func (a Accessor) IntMap(key string) (map[string]int64, error) {
	return getMap(a, key, wantInt, Value.AsInt)
}

// BoolMap returns the string-keyed map of booleans stored under key.
func (a Accessor) BoolMap(key string) (map[string]bool, error) {
	return getMap(a, key, wantBool, Value.AsBool)
}

// FloatMap returns the string-keyed map of floats stored under key.
func (a Accessor) FloatMap(key string) (map[string]float64, error) {
	return getMap(a, key, wantFloat, Value.AsFloat)
}
