package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_Value(t *testing.T) {
	v, err := StringSlice(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringSlice{"1", "5"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["1","5"]`, v)
}

func TestStringSlice_Scan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  StringSlice
	}{
		{"nil", nil, StringSlice{}},
		{"empty string", "", StringSlice{}},
		{"null literal", "null", StringSlice{}},
		{"bytes", []byte(`["a","b"]`), StringSlice{"a", "b"}},
		{"string", `["c"]`, StringSlice{"c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			require.NoError(t, s.Scan(tt.input))
			assert.Equal(t, tt.want, s)
		})
	}

	var s StringSlice
	assert.Error(t, s.Scan(42))
	assert.Error(t, s.Scan("{not json"))
}

func TestFloatSlice(t *testing.T) {
	v, err := FloatSlice{10, 25.5}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[10,25.5]", v)

	var f FloatSlice
	require.NoError(t, f.Scan("[10,25.5]"))
	assert.Equal(t, FloatSlice{10, 25.5}, f)

	require.NoError(t, f.Scan(nil))
	assert.Equal(t, FloatSlice{}, f)
}

func TestJSONMap(t *testing.T) {
	v, err := JSONMap(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = JSONMap{"score": 80}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"score":80}`, v)

	var m JSONMap
	require.NoError(t, m.Scan([]byte(`{"score":80,"strengths":["x"]}`)))
	assert.Equal(t, float64(80), m["score"])
	assert.Equal(t, []interface{}{"x"}, m["strengths"])

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)
}
