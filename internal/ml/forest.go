package ml

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Forest is a random forest of CART trees. Probabilities are the mean
// of the per-tree leaf distributions.
type Forest struct {
	Trees      []*TreeNode `json:"trees"`
	NumTrees   int         `json:"n_estimators"`
	NumClasses int         `json:"n_classes"`
	Seed       int64       `json:"seed"`
}

type ForestOptions struct {
	NumTrees int
	MaxDepth int
	Seed     int64
}

func DefaultForestOptions() ForestOptions {
	return ForestOptions{
		NumTrees: 100,
		MaxDepth: 32,
		Seed:     42,
	}
}

// FitForest trains opts.NumTrees trees on bootstrap resamples of the
// training set. Tree seeds are drawn up front from the forest seed, so
// the result is deterministic even though trees fit concurrently.
func FitForest(x []SparseVector, y []int, numClasses int, opts ForestOptions) *Forest {
	numFeatures := 0
	for _, vec := range x {
		for idx := range vec {
			if idx+1 > numFeatures {
				numFeatures = idx + 1
			}
		}
	}

	mtry := int(math.Sqrt(float64(numFeatures)))
	if mtry < 1 {
		mtry = 1
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	seeds := make([]int64, opts.NumTrees)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	forest := &Forest{
		Trees:      make([]*TreeNode, opts.NumTrees),
		NumTrees:   opts.NumTrees,
		NumClasses: numClasses,
		Seed:       opts.Seed,
	}

	var wg sync.WaitGroup
	for t := 0; t < opts.NumTrees; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			treeRng := rand.New(rand.NewSource(seeds[t]))

			sample := make([]int, len(x))
			for i := range sample {
				sample[i] = treeRng.Intn(len(x))
			}

			builder := &treeBuilder{
				x:           x,
				y:           y,
				numClasses:  numClasses,
				numFeatures: numFeatures,
				mtry:        mtry,
				maxDepth:    opts.MaxDepth,
				rng:         treeRng,
			}
			forest.Trees[t] = builder.build(sample, 0)
		}(t)
	}
	wg.Wait()

	return forest
}

// PredictProba averages the class distributions of every tree.
func (f *Forest) PredictProba(x SparseVector) []float64 {
	probs := make([]float64, f.NumClasses)
	for _, tree := range f.Trees {
		floats.Add(probs, tree.predictProba(x))
	}
	floats.Scale(1/float64(len(f.Trees)), probs)
	return probs
}

// Predict returns the class id with the highest mean probability.
func (f *Forest) Predict(x SparseVector) int {
	return floats.MaxIdx(f.PredictProba(x))
}
