package utils

import "math/rand"

type ColorFloat [4]float32

// RandomMaterialColors generates n distinguishable display colors for
// submesh materials. Pure function of the seed; hosts apply it after decode,
// the colors are never persisted to file.
func RandomMaterialColors(seed int64, n int) []ColorFloat {
	rnd := rand.New(rand.NewSource(seed))
	colors := make([]ColorFloat, n)
	for i := range colors {
		for c := 0; c < 3; c++ {
			colors[i][c] = 0.4 + rnd.Float32()*0.6
		}
		colors[i][3] = 1.0
	}
	return colors
}
