package value

// UndefValue marks a failed attribute or path lookup. It is not a
// JSON value and never round-trips through serialization.
type UndefValue struct{}

func Undef() Value {
	return UndefValue{}
}

func (u UndefValue) Type() ValueType {
	return UndefType
}

func (u UndefValue) Cast(t ValueType) Value {
	switch t {
	case BoolType:
		return False()
	case StrType:
		return Str(u.String())
	default:
		return Null()
	}
}

func IsUndef(v Value) bool {
	return v.Type() == UndefType
}

func (u UndefValue) String() string {
	return "undefined"
}
