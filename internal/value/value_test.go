package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueCreation(t *testing.T) {
	t.Run("Undef", func(t *testing.T) {
		require.Equal(t, Undef(), Undef())
		require.True(t, IsUndef(Undef()))
		require.False(t, IsNull(Undef()))
	})

	t.Run("Null", func(t *testing.T) {
		require.Equal(t, Null(), Null())
		require.True(t, IsNull(Null()))
		require.False(t, IsUndef(Null()))
	})

	t.Run("Bool", func(t *testing.T) {
		require.Equal(t, True(), True())
		require.Equal(t, False(), False())
		require.NotEqual(t, True(), False())
		require.True(t, IsBool(Bool(true)))
	})

	t.Run("Num", func(t *testing.T) {
		require.Equal(t, Num(10), Num(10.0))
		require.NotEqual(t, Num(10.0), Num(10.1))
		require.True(t, IsNum(Num(10)))
	})

	t.Run("Str", func(t *testing.T) {
		require.Equal(t, Str("test"), Str("test"))
		require.NotEqual(t, Str("test"), Str("notest"))
		require.True(t, IsStr(Str("test")))
	})

	t.Run("Arr", func(t *testing.T) {
		require.True(t, IsArr(Arr(10, Num(20), Str("test"))))
	})

	t.Run("Obj", func(t *testing.T) {
		obj := Obj(map[string]any{
			"n": Num(10),
			"s": Str("test"),
			"b": True(),
			"a": Arr(1, "test"),
			"o": ObjValue{"id": Num(10), "name": Str("Object10")},
		})
		require.True(t, IsObj(obj))
	})
}

func TestNew(t *testing.T) {
	type myint int
	type mybool bool
	type mystring string

	tests := []struct {
		name     string
		expected Value
		input    any
	}{
		{"nil", Null(), nil},
		{"bool", True(), true},
		{"named bool", False(), mybool(false)},
		{"int", Num(42), 42},
		{"named int", Num(42), myint(42)},
		{"uint", Num(42), uint8(42)},
		{"float", Num(1.5), 1.5},
		{"string", Str("test"), "test"},
		{"named string", Str("test"), mystring("test")},
		{"slice", Arr(1, 2), []int{1, 2}},
		{"map", ObjValue{"id": Num(1)}, map[string]any{"id": 1}},
		{"value passthrough", Undef(), Undef()},
		{"unsupported", Null(), struct{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, New(tt.input))
		})
	}
}

func TestCast(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		to       ValueType
		expected Value
	}{
		{"null to bool", Null(), BoolType, False()},
		{"null to num", Null(), NumType, Num(0)},
		{"undef to bool", Undef(), BoolType, False()},
		{"bool to num", True(), NumType, Null()},
		{"num to bool", Num(0), BoolType, False()},
		{"num to str", Num(10), StrType, Str("10")},
		{"str to num", Str("2"), NumType, Num(2)},
		{"empty str to bool", Str(""), BoolType, False()},
		{"arr to num", Arr(5), NumType, Num(5)},
		{"empty arr to num", Arr(), NumType, Num(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.input.Cast(tt.to))
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		input    Value
		expected string
	}{
		{Undef(), "undefined"},
		{Null(), "null"},
		{True(), "true"},
		{Num(1.5), "1.5"},
		{Num(10), "10"},
		{Str("test"), "test"},
		{Arr(1, "a"), "1,a"},
		{ObjValue{}, "[object Object]"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.input.String())
	}
}

func TestPath(t *testing.T) {
	obj := ObjValue{
		"user": ObjValue{
			"name": Str("Alice"),
			"tags": Arr("a", "b"),
		},
	}

	tests := []struct {
		name     string
		path     []string
		expected Value
	}{
		{"empty path", nil, obj},
		{"object key", []string{"user", "name"}, Str("Alice")},
		{"array index", []string{"user", "tags", "1"}, Str("b")},
		{"missing key", []string{"user", "email"}, Undef()},
		{"index out of range", []string{"user", "tags", "2"}, Undef()},
		{"non-numeric index", []string{"user", "tags", "first"}, Undef()},
		{"through scalar", []string{"user", "name", "x"}, Undef()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Path(obj, tt.path...))
		})
	}
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(Num(1), Num(1)))
	require.False(t, Equal(Num(1), Str("1")))
	require.False(t, Equal(Null(), Undef()))
	require.True(t, Equal(Arr(1, 2), Arr(1, 2)))
	require.False(t, Equal(Arr(1, 2), Arr(2, 1)))
	require.True(t, Equal(ObjValue{"a": Num(1)}, ObjValue{"a": Num(1)}))
	require.False(t, Equal(ObjValue{"a": Num(1)}, ObjValue{"a": Num(2)}))
}
