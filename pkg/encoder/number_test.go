package encoder

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFloat(t *testing.T) {
	cases := []struct {
		f    float64
		bits int
		want string
	}{
		{2.5, 64, "2.5"},
		{0, 64, "0"},
		{math.Copysign(0, -1), 64, "-0"},
		{100, 64, "100"},
		{-1.25, 64, "-1.25"},
		{0.000001, 64, "0.000001"},
		{1e-7, 64, "1e-7"},
		{1e21, 64, "1e+21"},
		{123456789012345680000, 64, "123456789012345680000"},
		{math.MaxFloat64, 64, "1.7976931348623157e+308"},
		{5e-324, 64, "5e-324"},
		{float64(float32(0.1)), 32, "0.1"},
		{float64(float32(1e-7)), 32, "1e-7"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, string(appendFloat(nil, c.f, c.bits)), "float %v", c.f)
	}
}

func TestAppendFloatRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		f := math.Float64frombits(r.Uint64())
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		out := string(appendFloat(nil, f, 64))
		got, err := strconv.ParseFloat(out, 64)
		require.NoError(t, err, out)
		require.Equal(t, f, got, out)
	}

	for i := 0; i < 10000; i++ {
		f := math.Float32frombits(r.Uint32())
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			continue
		}
		out := string(appendFloat(nil, float64(f), 32))
		got, err := strconv.ParseFloat(out, 32)
		require.NoError(t, err, out)
		require.Equal(t, f, float32(got), out)
	}
}
