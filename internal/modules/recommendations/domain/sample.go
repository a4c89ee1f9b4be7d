package domain

import "math/rand/v2"

// RecommendationSize is the maximum number of products a recommendation returns.
const RecommendationSize = 4

// Sample picks min(n, len(products)) distinct products uniformly at random
// using a partial Fisher-Yates shuffle over a copy of the input.
func Sample(products []Product, n int, rng *rand.Rand) []Product {
	if n <= 0 || len(products) == 0 {
		return []Product{}
	}
	if n > len(products) {
		n = len(products)
	}

	pool := make([]Product, len(products))
	copy(pool, products)

	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n]
}
