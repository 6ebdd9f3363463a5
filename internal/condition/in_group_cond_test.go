package condition

import (
	"testing"

	"github.com/growthbook/growthbook-go/internal/value"
	"github.com/stretchr/testify/require"
)

func TestInGroupCond(t *testing.T) {
	groups := SavedGroups{"beta": value.Arr("u1", "u2")}

	c := NewInGroupCond("beta")
	require.True(t, c.Eval(value.Str("u1"), groups))
	require.False(t, c.Eval(value.Str("u3"), groups))
	require.False(t, c.Eval(value.Str("u1"), nil))

	t.Run("unknown group", func(t *testing.T) {
		c := NewInGroupCond("missing")
		require.False(t, c.Eval(value.Str("u1"), groups))
	})

	t.Run("not in group", func(t *testing.T) {
		c := NewNotInGroupCond("beta")
		require.False(t, c.Eval(value.Str("u1"), groups))
		require.True(t, c.Eval(value.Str("u3"), groups))
		require.True(t, c.Eval(value.Str("u1"), nil))
	})
}

func TestSavedGroupsUnmarshal(t *testing.T) {
	var sg SavedGroups
	err := sg.UnmarshalJSON([]byte(`{"beta": ["u1", 2], "empty": []}`))
	require.NoError(t, err)
	require.Equal(t, value.Arr("u1", 2), sg["beta"])
	require.Equal(t, value.Arr(), sg["empty"])
}
