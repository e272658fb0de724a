package ml

import (
	"math"
	"math/rand"
	"sort"
)

// TreeNode is one node of a CART decision tree. Leaf nodes carry the
// class distribution of the training samples that reached them;
// internal nodes route on Feature <= Threshold.
type TreeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
	Probs     []float64 `json:"probs,omitempty"`
}

func (n *TreeNode) isLeaf() bool { return n.Left == nil }

func (n *TreeNode) predictProba(x SparseVector) []float64 {
	node := n
	for !node.isLeaf() {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Probs
}

type treeBuilder struct {
	x           []SparseVector
	y           []int
	numClasses  int
	numFeatures int
	mtry        int
	maxDepth    int
	rng         *rand.Rand
}

func (b *treeBuilder) build(indices []int, depth int) *TreeNode {
	counts := make([]int, b.numClasses)
	for _, i := range indices {
		counts[b.y[i]]++
	}

	if depth >= b.maxDepth || len(indices) < 2 || isPure(counts) {
		return leafNode(counts)
	}

	feature, threshold, ok := b.bestSplit(indices, counts)
	if !ok {
		return leafNode(counts)
	}

	var left, right []int
	for _, i := range indices {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leafNode(counts)
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

// bestSplit scans a random subset of mtry features and returns the
// feature/threshold pair with the lowest weighted Gini impurity.
func (b *treeBuilder) bestSplit(indices []int, parentCounts []int) (int, float64, bool) {
	bestGini := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	for _, feature := range b.sampleFeatures() {
		values := make([]float64, len(indices))
		for j, i := range indices {
			values[j] = b.x[i][feature]
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		for j := 1; j < len(sorted); j++ {
			if sorted[j] == sorted[j-1] {
				continue
			}
			threshold := (sorted[j] + sorted[j-1]) / 2

			leftCounts := make([]int, b.numClasses)
			rightCounts := make([]int, b.numClasses)
			nLeft := 0
			for k, i := range indices {
				if values[k] <= threshold {
					leftCounts[b.y[i]]++
					nLeft++
				} else {
					rightCounts[b.y[i]]++
				}
			}
			nRight := len(indices) - nLeft
			if nLeft == 0 || nRight == 0 {
				continue
			}

			gini := (float64(nLeft)*giniImpurity(leftCounts, nLeft) +
				float64(nRight)*giniImpurity(rightCounts, nRight)) / float64(len(indices))
			if gini < bestGini {
				bestGini = gini
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	if bestGini >= giniImpurity(parentCounts, len(indices)) {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func (b *treeBuilder) sampleFeatures() []int {
	if b.mtry >= b.numFeatures {
		all := make([]int, b.numFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return b.rng.Perm(b.numFeatures)[:b.mtry]
}

func isPure(counts []int) bool {
	nonzero := 0
	for _, c := range counts {
		if c > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

func giniImpurity(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func leafNode(counts []int) *TreeNode {
	total := 0
	for _, c := range counts {
		total += c
	}
	probs := make([]float64, len(counts))
	if total > 0 {
		for i, c := range counts {
			probs[i] = float64(c) / float64(total)
		}
	}
	return &TreeNode{Probs: probs}
}
