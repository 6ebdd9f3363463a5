package value

type ObjValue map[string]Value

func Obj(args map[string]any) ObjValue {
	res := make(ObjValue, len(args))
	for k, v := range args {
		res[k] = New(v)
	}
	return res
}

func (o ObjValue) Type() ValueType {
	return ObjType
}

func IsObj(v Value) bool {
	return v.Type() == ObjType
}

func (o ObjValue) Cast(t ValueType) Value {
	switch t {
	case BoolType:
		return True()
	case ObjType:
		return o
	}
	return Null()
}

// Path resolves a field path against the object, yielding Undef for
// anything missing.
func (o ObjValue) Path(path ...string) Value {
	return Path(o, path...)
}

func (o ObjValue) String() string {
	return "[object Object]"
}
