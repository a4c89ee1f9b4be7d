package domain

import (
	"math/rand/v2"
	"strconv"
	"testing"
)

func makeProducts(n int) []Product {
	products := make([]Product, n)
	for i := range products {
		products[i] = Product{ID: ProductID(strconv.Itoa(i + 1)), Name: "Product " + strconv.Itoa(i+1)}
	}
	return products
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		name      string
		available int
		n         int
		wantLen   int
	}{
		{name: "more than requested", available: 10, n: RecommendationSize, wantLen: 4},
		{name: "exactly requested", available: 4, n: RecommendationSize, wantLen: 4},
		{name: "fewer than requested", available: 2, n: RecommendationSize, wantLen: 2},
		{name: "empty", available: 0, n: RecommendationSize, wantLen: 0},
		{name: "zero requested", available: 5, n: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sample(makeProducts(tt.available), tt.n, rng)
			if got == nil {
				t.Fatal("Sample() returned nil, want non-nil slice")
			}
			if len(got) != tt.wantLen {
				t.Errorf("Sample() len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	products := makeProducts(6)

	for run := 0; run < 200; run++ {
		seen := make(map[ProductID]bool)
		for _, p := range Sample(products, RecommendationSize, rng) {
			if seen[p.ID] {
				t.Fatalf("run %d: duplicate product %s", run, p.ID)
			}
			seen[p.ID] = true
		}
	}
}

func TestSampleDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	products := makeProducts(8)

	Sample(products, RecommendationSize, rng)

	for i, p := range products {
		if want := ProductID(strconv.Itoa(i + 1)); p.ID != want {
			t.Errorf("products[%d].ID = %s, want %s", i, p.ID, want)
		}
	}
}

func TestSampleCoversAllProducts(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	products := makeProducts(6)
	counts := make(map[ProductID]int)

	for run := 0; run < 600; run++ {
		for _, p := range Sample(products, RecommendationSize, rng) {
			counts[p.ID]++
		}
	}

	for _, p := range products {
		if counts[p.ID] == 0 {
			t.Errorf("product %s was never sampled", p.ID)
		}
	}
}
