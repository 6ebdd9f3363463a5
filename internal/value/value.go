// Package value implements the tagged JSON value type used for
// attributes, feature values and condition arguments. Casting rules
// follow Javascript semantics so that evaluation results match the
// reference Javascript SDK exactly.
package value

import (
	"reflect"
	"strconv"
)

// Value is one of: undefined, null, bool, number, string, array,
// object. Undefined is distinct from null: it is produced only by
// failed attribute/path lookups and is what `$exists` and
// `$type: "undefined"` observe.
type Value interface {
	// Type returns the ValueType tag.
	Type() ValueType
	// Cast converts to another type following JS rules.
	Cast(ValueType) Value
	// String returns the canonical JS string form.
	String() string
}

type ValueType int

const (
	UndefType ValueType = iota
	NullType
	BoolType
	NumType
	StrType
	ArrType
	ObjType
)

func New(a any) Value {
	if a == nil {
		return Null()
	}
	switch v := a.(type) {
	case Value:
		return v
	default:
		return fromAny(a)
	}
}

func Equal(v1, v2 Value) bool {
	if v1.Type() != v2.Type() {
		return false
	}
	switch v1.Type() {
	case ArrType:
		a1, a2 := v1.(ArrValue), v2.(ArrValue)
		if len(a1) != len(a2) {
			return false
		}
		for i, v := range a1 {
			if !Equal(v, a2[i]) {
				return false
			}
		}
		return true
	case ObjType:
		o1, o2 := v1.(ObjValue), v2.(ObjValue)
		if len(o1) != len(o2) {
			return false
		}
		for k, v := range o1 {
			if !Equal(v, o2[k]) {
				return false
			}
		}
		return true
	default:
		return v1 == v2
	}
}

// Path resolves a pre-split dot path against nested objects and
// arrays. Object segments are map keys, array segments are decimal
// indexes. Resolution never fails: any missing or unindexable segment
// yields Undef.
func Path(v Value, path ...string) Value {
	cur := v
	for _, seg := range path {
		switch c := cur.(type) {
		case ObjValue:
			val, ok := c[seg]
			if !ok {
				return Undef()
			}
			cur = val
		case ArrValue:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return Undef()
			}
			cur = c[i]
		default:
			return Undef()
		}
	}
	return cur
}

func fromAny(a any) Value {
	ref := reflect.ValueOf(a)
	switch {
	case ref.CanFloat():
		return Num(ref.Float())
	case ref.CanInt():
		return Num(ref.Int())
	case ref.CanUint():
		return Num(ref.Uint())
	}
	switch ref.Kind() {
	case reflect.Bool:
		return Bool(ref.Bool())
	case reflect.String:
		return Str(ref.String())
	case reflect.Array, reflect.Slice:
		arr := make(ArrValue, ref.Len())
		for i := 0; i < ref.Len(); i++ {
			arr[i] = New(ref.Index(i).Interface())
		}
		return arr
	case reflect.Map:
		obj := ObjValue{}
		iter := ref.MapRange()
		for iter.Next() {
			k := iter.Key()
			if k.Kind() != reflect.String {
				continue
			}
			obj[k.String()] = New(iter.Value().Interface())
		}
		return obj
	default:
		return Null()
	}
}
