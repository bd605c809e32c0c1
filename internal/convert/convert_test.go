package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestPrimitives(t *testing.T) {
	testCases := []struct {
		name      string
		typ       Type
		token     string
		expected  any
		expectErr bool
	}{
		{name: "string", typ: String, token: "milk", expected: "milk"},
		{name: "int", typ: Int, token: "50", expected: 50},
		{name: "negative int", typ: Int, token: "-1", expected: -1},
		{name: "int rejects fraction", typ: Int, token: "1.5", expectErr: true},
		{name: "int rejects word", typ: Int, token: "many", expectErr: true},
		{name: "float", typ: Float, token: "1.4", expected: 1.4},
		{name: "bool true", typ: Bool, token: "true", expected: true},
		{name: "bool false", typ: Bool, token: "false", expected: false},
		{name: "bool rejects word", typ: Bool, token: "maybe", expectErr: true},
		{name: "positive int", typ: PositiveInt, token: "5", expected: 5},
		{name: "positive int rejects negative", typ: PositiveInt, token: "-5", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.typ.Convert(tc.token)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestPositiveInt_IsNotATypeError(t *testing.T) {
	_, err := PositiveInt.Convert("-1")
	require.Error(t, err)

	var typeErr *TypeError
	assert.False(t, errors.As(err, &typeErr), "plain errors are reported with the generic wording")
}

func TestFromCty(t *testing.T) {
	num, err := FromCty(cty.Number)
	require.NoError(t, err)

	v, err := num.Convert("50")
	require.NoError(t, err)
	assert.Equal(t, 50, v)

	v, err = num.Convert("0.5")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	str, err := FromCty(cty.DynamicPseudoType)
	require.NoError(t, err)
	assert.Equal(t, "str", str.Name)

	_, err = FromCty(cty.List(cty.String))
	require.Error(t, err)
}

func TestToNative(t *testing.T) {
	val := cty.ObjectVal(map[string]cty.Value{
		"name":   cty.StringVal("joe"),
		"count":  cty.NumberIntVal(2),
		"ratio":  cty.NumberFloatVal(0.25),
		"active": cty.True,
		"tags":   cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
		"none":   cty.NullVal(cty.String),
	})

	got, err := ToNative(val)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "joe",
		"count":  2,
		"ratio":  0.25,
		"active": true,
		"tags":   []any{"a", "b"},
		"none":   nil,
	}, got)
}

func TestDSV(t *testing.T) {
	ints := DSV(Int, ",")

	got, err := ints.Convert("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, got)
	assert.Equal(t, "1,2,3", ints.Render(got))
	assert.Equal(t, "dsv(int)", ints.Name)

	_, err = ints.Convert("1,x")
	require.Error(t, err)
}

func TestOneOf(t *testing.T) {
	numberOrSlice := OneOf(Int, Slice)

	got, err := numberOrSlice.Convert("4")
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	got, err = numberOrSlice.Convert("1:3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got.(Subset).Positions(10))

	_, err = numberOrSlice.Convert("abc")
	require.Error(t, err)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Contains(t, typeErr.Msg, "does not match any of allowed types: int, slice")
}

func TestNTuple(t *testing.T) {
	pair := NTuple(2, Float, ",")

	got, err := pair.Convert("0.5,2")
	require.NoError(t, err)
	assert.Equal(t, []any{0.5, 2.0}, got)

	_, err = pair.Convert("1,2,3")
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "2-tuple requires exactly 2 items (3 received)", typeErr.Msg)
}
