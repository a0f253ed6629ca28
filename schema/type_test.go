package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{in: "int", want: Int},
		{in: "float", want: Float},
		{in: "float64", want: Float},
		{in: "str", want: String},
		{in: " string ", want: String},
		{in: "bool", want: Bool},
		{in: "[]int", want: List(Int)},
		{in: "[]bool", want: List(Bool)},
		{in: "[3]float", want: Tuple(Float, 3)},
		{in: "[ 2 ]string", want: Tuple(String, 2)},
		{in: "complex", wantErr: true},
		{in: "[0]int", wantErr: true},
		{in: "[x]int", wantErr: true},
		{in: "[2int", wantErr: true},
		{in: "[][]int", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedType)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := map[string]Type{
		"int":        Int,
		"float64":    Float,
		"string":     String,
		"bool":       Bool,
		"[]string":   List(String),
		"[3]float64": Tuple(Float, 3),
		"invalid":    {},
	}

	for want, typ := range tests {
		assert.Equal(t, want, typ.String())
	}
}

func TestTypeArity(t *testing.T) {
	assert.Equal(t, 1, Int.Arity())
	assert.Equal(t, 4, Tuple(Bool, 4).Arity())
	assert.Equal(t, -1, List(Int).Arity())
	assert.False(t, String.IsContainer())
	assert.True(t, List(String).IsContainer())
	assert.True(t, Tuple(String, 1).IsContainer())
}

func TestTypeValidate(t *testing.T) {
	require.NoError(t, Int.validate())
	require.NoError(t, List(Float).validate())
	require.ErrorIs(t, Type{}.validate(), ErrUnsupportedType)
	require.ErrorIs(t, List(List(Int)).validate(), ErrUnsupportedType)
	require.ErrorIs(t, Tuple(Int, 0).validate(), ErrUnsupportedType)
	require.ErrorIs(t, Type{Kind: KindScalar, Elem: ElemBool + 1}.validate(), ErrUnsupportedType)
}
