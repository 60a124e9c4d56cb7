package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStreamflow(t *testing.T) {
	spec := StreamflowSpec{Amplitude: 1.0, LogMean: 7.8, LogSigma: 0.5, Seed: 42}

	t.Run("is deterministic for a fixed seed", func(t *testing.T) {
		first, err := GenerateStreamflow(520, spec)
		require.NoError(t, err)
		second, err := GenerateStreamflow(520, spec)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		other := spec
		other.Seed = 43
		third, err := GenerateStreamflow(520, other)
		require.NoError(t, err)
		assert.NotEqual(t, first, third)
	})

	t.Run("flows are strictly positive", func(t *testing.T) {
		flows, err := GenerateStreamflow(1040, spec)
		require.NoError(t, err)
		for _, flow := range flows {
			assert.Greater(t, flow, 0.0)
		}
	})

	t.Run("whitened log flows center on zero at the season start", func(t *testing.T) {
		// At week i with i % 52 == 0 the sinusoid vanishes, so
		// (ln(flow) - logMean) / logSigma is standard normal.
		nWeeks := 52 * 1000
		flows, err := GenerateStreamflow(nWeeks, spec)
		require.NoError(t, err)

		var sum float64
		var count int
		for i := 0; i < nWeeks; i += 52 {
			sum += (math.Log(flows[i]) - spec.LogMean) / spec.LogSigma
			count++
		}

		assert.InDelta(t, 0.0, sum/float64(count), 0.15)
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		_, err := GenerateStreamflow(0, spec)
		assert.ErrorContains(t, err, "cannot generate")

		bad := spec
		bad.LogSigma = -1
		_, err = GenerateStreamflow(52, bad)
		assert.ErrorContains(t, err, "negative")
	})
}
