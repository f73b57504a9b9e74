package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/expki/go-colorquant/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, compute.CentroidSet{{0, 0, 0.5}, {10, 10, 10.5}, {255, 1e-7, 128.25}}))
	assert.Equal(t, "0,0,0.5\n10,10,10.5\n255,0.0000001,128.25\n", buf.String())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	centroids := compute.CentroidSet{
		{0.1 + 0.2, 1.0 / 3.0, 2.0 / 3.0},
		{254.99999999, 0, 17},
		{123.456789012345, 98.7654321, 0.000001},
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, centroids))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, len(centroids))
	for i := range centroids {
		for j := range centroids[i] {
			assert.InDelta(t, centroids[i][j], decoded[i][j], 1e-6)
		}
	}
	// shortest round-trip formatting is exact
	assert.Equal(t, centroids, decoded)
}

func TestDecode_SkipsBlankLines(t *testing.T) {
	decoded, err := Decode(strings.NewReader("\n1,2,3\n  \n4.5, 5 ,6\n"))
	require.NoError(t, err)
	assert.Equal(t, compute.CentroidSet{{1, 2, 3}, {4.5, 5, 6}}, decoded)
}

func TestDecode_Empty(t *testing.T) {
	decoded, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("1,2\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = Decode(strings.NewReader("1,2,3\n1,x,3\n"))
	assert.ErrorContains(t, err, "line 2")
}
