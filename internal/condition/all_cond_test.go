package condition

import (
	"testing"

	"github.com/growthbook/growthbook-go/internal/value"
	"github.com/stretchr/testify/require"
)

func TestAllConds(t *testing.T) {
	cs := AllConds{NewValueCond("a"), NewValueCond("b")}

	require.True(t, cs.Eval(value.Arr("a", "b", "c"), nil))
	require.False(t, cs.Eval(value.Arr("a", "c"), nil))
	require.False(t, cs.Eval(value.Str("a"), nil))
	require.False(t, cs.Eval(value.Arr(), nil))

	require.True(t, AllConds{}.Eval(value.Arr(), nil))
}
