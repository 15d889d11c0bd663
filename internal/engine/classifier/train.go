package classifier

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// splitThreshold separates absent (0) from present (1) indicators.
const splitThreshold = 0.5

// TrainConfig controls tree growth.
type TrainConfig struct {
	MaxDepth int // 0 means unlimited
	MinLeaf  int // minimum samples per leaf, values < 1 mean 1
}

// Train fits a CART decision tree with Gini impurity on a binary indicator
// matrix. Feature iteration order is fixed, so training is deterministic:
// the same table always yields the same tree.
func Train(X *mat.Dense, y []int, features, classes []string, cfg TrainConfig) (*Model, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return nil, fmt.Errorf("classifier: empty training matrix")
	}
	if len(y) != rows {
		return nil, fmt.Errorf("classifier: %d rows but %d labels", rows, len(y))
	}
	if len(features) != cols {
		return nil, fmt.Errorf("classifier: %d columns but %d feature names", cols, len(features))
	}
	for i, label := range y {
		if label < 0 || label >= len(classes) {
			return nil, fmt.Errorf("classifier: row %d: label %d out of range", i, label)
		}
	}
	if cfg.MinLeaf < 1 {
		cfg.MinLeaf = 1
	}

	b := &treeBuilder{X: X, y: y, nClasses: len(classes), cfg: cfg}
	samples := make([]int, rows)
	for i := range samples {
		samples[i] = i
	}
	b.build(samples, 0)

	return New(features, classes, b.nodes), nil
}

type treeBuilder struct {
	X        *mat.Dense
	y        []int
	nClasses int
	cfg      TrainConfig
	nodes    []Node
}

// build grows the subtree for the given sample set and returns its root
// node index.
func (b *treeBuilder) build(samples []int, depth int) int {
	counts := b.classCounts(samples)
	majority := majorityClass(counts)

	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: -1, Class: majority})

	if gini(counts, len(samples)) == 0 {
		return idx
	}
	if b.cfg.MaxDepth > 0 && depth >= b.cfg.MaxDepth {
		return idx
	}

	feature, ok := b.bestSplit(samples, counts)
	if !ok {
		return idx
	}

	left, right := b.partition(samples, feature)
	b.nodes[idx] = Node{Feature: feature, Threshold: splitThreshold, Class: majority}
	b.nodes[idx].Left = b.build(left, depth+1)
	b.nodes[idx].Right = b.build(right, depth+1)
	return idx
}

// bestSplit picks the feature whose absent/present partition minimizes
// weighted Gini impurity. Ties go to the lowest feature index. Returns false
// when no feature improves on the parent impurity.
func (b *treeBuilder) bestSplit(samples []int, parentCounts []int) (int, bool) {
	_, cols := b.X.Dims()
	parent := gini(parentCounts, len(samples))

	best := -1
	bestImpurity := parent

	leftCounts := make([]int, b.nClasses)
	rightCounts := make([]int, b.nClasses)

	for j := 0; j < cols; j++ {
		for i := range leftCounts {
			leftCounts[i], rightCounts[i] = 0, 0
		}
		nLeft, nRight := 0, 0
		for _, s := range samples {
			if b.X.At(s, j) <= splitThreshold {
				leftCounts[b.y[s]]++
				nLeft++
			} else {
				rightCounts[b.y[s]]++
				nRight++
			}
		}
		if nLeft < b.cfg.MinLeaf || nRight < b.cfg.MinLeaf {
			continue
		}
		n := float64(len(samples))
		impurity := float64(nLeft)/n*gini(leftCounts, nLeft) + float64(nRight)/n*gini(rightCounts, nRight)
		if impurity < bestImpurity {
			bestImpurity = impurity
			best = j
		}
	}
	return best, best >= 0
}

func (b *treeBuilder) partition(samples []int, feature int) (left, right []int) {
	for _, s := range samples {
		if b.X.At(s, feature) <= splitThreshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return left, right
}

func (b *treeBuilder) classCounts(samples []int) []int {
	counts := make([]int, b.nClasses)
	for _, s := range samples {
		counts[b.y[s]]++
	}
	return counts
}

// gini computes Gini impurity for the class counts over n samples.
func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

// majorityClass returns the most frequent class, lowest index on ties.
func majorityClass(counts []int) int {
	best, bestCount := 0, -1
	for c, n := range counts {
		if n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}
