package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("unit length output", func(t *testing.T) {
		got := Normalize([]float32{3, 4})

		var magnitude float64
		for _, v := range got {
			magnitude += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-6)
		assert.InDelta(t, 0.6, float64(got[0]), 1e-6)
		assert.InDelta(t, 0.8, float64(got[1]), 1e-6)
	})

	t.Run("zero vector unchanged", func(t *testing.T) {
		assert.Equal(t, []float32{0, 0, 0}, Normalize([]float32{0, 0, 0}))
	})
}
