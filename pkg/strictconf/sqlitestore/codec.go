package sqlitestore

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/strictconf/strictconf/pkg/strictconf"
)

// wireValue is the stored JSON form of a strictconf.Value. The kind
// tag drives decoding; numbers travel as decimal strings so the
// int/float distinction and full int64 range survive the round trip.
type wireValue struct {
	Kind string      `json:"kind"`
	Bool bool        `json:"bool,omitempty"`
	Num  string      `json:"num,omitempty"`
	Str  string      `json:"str,omitempty"`
	List []wireValue `json:"list,omitempty"`
	Map  []wireEntry `json:"map,omitempty"`
}

// wireEntry is a stored map entry. Keys are full values because source
// mappings may carry non-string keys.
type wireEntry struct {
	Key wireValue `json:"key"`
	Val wireValue `json:"val"`
}

// encode serializes a value to its stored JSON form.
func encode(v strictconf.Value) ([]byte, error) {
	w, err := toWire(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// decode deserializes a stored JSON form back into a value.
func decode(data []byte) (strictconf.Value, error) {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return strictconf.Absent(), fmt.Errorf("decode config value: %w", err)
	}
	return fromWire(w)
}

func toWire(v strictconf.Value) (wireValue, error) {
	switch v.Kind() {
	case strictconf.KindNull:
		return wireValue{Kind: "null"}, nil
	case strictconf.KindBool:
		b, _ := v.AsBool()
		return wireValue{Kind: "bool", Bool: b}, nil
	case strictconf.KindInt:
		i, _ := v.AsInt()
		return wireValue{Kind: "int", Num: strconv.FormatInt(i, 10)}, nil
	case strictconf.KindFloat:
		f, _ := v.AsFloat()
		return wireValue{Kind: "float", Num: strconv.FormatFloat(f, 'g', -1, 64)}, nil
	case strictconf.KindString:
		s, _ := v.AsString()
		return wireValue{Kind: "string", Str: s}, nil
	case strictconf.KindList:
		elems, _ := v.AsList()
		list := make([]wireValue, len(elems))
		for i, elem := range elems {
			w, err := toWire(elem)
			if err != nil {
				return wireValue{}, err
			}
			list[i] = w
		}
		return wireValue{Kind: "list", List: list}, nil
	case strictconf.KindMap:
		entries, _ := v.AsMap()
		m := make([]wireEntry, len(entries))
		for i, entry := range entries {
			key, err := toWire(entry.Key)
			if err != nil {
				return wireValue{}, err
			}
			val, err := toWire(entry.Val)
			if err != nil {
				return wireValue{}, err
			}
			m[i] = wireEntry{Key: key, Val: val}
		}
		return wireValue{Kind: "map", Map: m}, nil
	default:
		return wireValue{}, fmt.Errorf("cannot encode %s value", v.Kind())
	}
}

func fromWire(w wireValue) (strictconf.Value, error) {
	switch w.Kind {
	case "null":
		return strictconf.Null(), nil
	case "bool":
		return strictconf.Bool(w.Bool), nil
	case "int":
		i, err := strconv.ParseInt(w.Num, 10, 64)
		if err != nil {
			return strictconf.Absent(), fmt.Errorf("decode int value %q: %w", w.Num, err)
		}
		return strictconf.Int(i), nil
	case "float":
		f, err := strconv.ParseFloat(w.Num, 64)
		if err != nil {
			return strictconf.Absent(), fmt.Errorf("decode float value %q: %w", w.Num, err)
		}
		return strictconf.Float(f), nil
	case "string":
		return strictconf.String(w.Str), nil
	case "list":
		if len(w.List) == 0 {
			return strictconf.List(), nil
		}
		elems := make([]strictconf.Value, len(w.List))
		for i, elem := range w.List {
			v, err := fromWire(elem)
			if err != nil {
				return strictconf.Absent(), err
			}
			elems[i] = v
		}
		return strictconf.List(elems...), nil
	case "map":
		if len(w.Map) == 0 {
			return strictconf.MapFromEntries(nil), nil
		}
		entries := make([]strictconf.MapEntry, len(w.Map))
		for i, entry := range w.Map {
			key, err := fromWire(entry.Key)
			if err != nil {
				return strictconf.Absent(), err
			}
			val, err := fromWire(entry.Val)
			if err != nil {
				return strictconf.Absent(), err
			}
			entries[i] = strictconf.MapEntry{Key: key, Val: val}
		}
		return strictconf.MapFromEntries(entries), nil
	default:
		return strictconf.Absent(), fmt.Errorf("unknown stored value kind %q", w.Kind)
	}
}
