package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ToArgs_FromArgs_RoundTrip(t *testing.T) {
	encoded, err := Default.ToArgs(7, "x", true)
	require.NoError(t, err)
	assert.Equal(t, `[[7,"x",true],{}]`, encoded)

	var n int
	var s string
	var b bool
	require.NoError(t, Default.FromArgs(encoded, &n, &s, &b))
	assert.Equal(t, 7, n)
	assert.Equal(t, "x", s)
	assert.True(t, b)
}

func Test_ToArgs_NoArgs(t *testing.T) {
	encoded, err := Default.ToArgs()
	require.NoError(t, err)
	assert.Equal(t, `[[],{}]`, encoded)
}

func Test_FromArgs_FewerPointersThanArgs(t *testing.T) {
	encoded, err := Default.ToArgs(1, 2, 3)
	require.NoError(t, err)

	var first int
	require.NoError(t, Default.FromArgs(encoded, &first))
	assert.Equal(t, 1, first)
}

func Test_FromArgs_MorePointersThanArgs(t *testing.T) {
	encoded, err := Default.ToArgs(1)
	require.NoError(t, err)

	var a, b int
	b = 99
	require.NoError(t, Default.FromArgs(encoded, &a, &b))
	assert.Equal(t, 1, a)
	assert.Equal(t, 99, b, "an unfilled pointer is left untouched, not zeroed")
}

func Test_ToValue_FromValue_RoundTrip_Scalar(t *testing.T) {
	encoded, err := Default.ToValue(14)
	require.NoError(t, err)
	assert.Equal(t, "14", encoded)

	var out int
	require.NoError(t, Default.FromValue(encoded, &out))
	assert.Equal(t, 14, out)
}

func Test_ToValue_FromValue_RoundTrip_String(t *testing.T) {
	encoded, err := Default.ToValue("ok")
	require.NoError(t, err)
	assert.Equal(t, `"ok"`, encoded)

	var out string
	require.NoError(t, Default.FromValue(encoded, &out))
	assert.Equal(t, "ok", out)
}

func Test_ToValue_FromValue_RoundTrip_Struct(t *testing.T) {
	type payload struct {
		Count int    `json:"count"`
		Name  string `json:"name"`
	}
	in := payload{Count: 3, Name: "widgets"}

	encoded, err := Default.ToValue(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, Default.FromValue(encoded, &out))
	assert.Equal(t, in, out)
}

func Test_FromValue_Malformed(t *testing.T) {
	var out int
	err := Default.FromValue("not-json", &out)
	assert.Error(t, err)
}

func Test_FromArgs_Malformed(t *testing.T) {
	var out int
	err := Default.FromArgs("not-an-envelope", &out)
	assert.Error(t, err)
}
