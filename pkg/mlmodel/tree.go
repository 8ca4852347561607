package mlmodel

import (
	"fmt"
)

// SplitRule decides which side of a threshold the left child covers.
type SplitRule string

const (
	// SplitLessEqual sends x <= threshold left (scikit-learn trees).
	SplitLessEqual SplitRule = "le"
	// SplitLess sends x < threshold left (XGBoost trees).
	SplitLess SplitRule = "lt"
)

// Node is one entry of a flattened tree. Internal nodes test
// x[Feature] against Threshold; leaves carry Value.
type Node struct {
	Feature   int       `yaml:"feature"`
	Threshold float64   `yaml:"threshold"`
	Left      int       `yaml:"left"`
	Right     int       `yaml:"right"`
	Leaf      bool      `yaml:"leaf"`
	Value     []float64 `yaml:"value"`
	// Cover is the training sample weight that reached this node.
	Cover float64 `yaml:"cover"`
}

type Tree struct {
	Nodes []Node `yaml:"nodes"`
}

// Validate checks indices and leaf widths. Node 0 is the root.
func (t *Tree) Validate(dim, outputs int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			if len(n.Value) != outputs {
				return fmt.Errorf("leaf %d has %d outputs, want %d", i, len(n.Value), outputs)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= dim {
			return fmt.Errorf("node %d splits on feature %d, width is %d", i, n.Feature, dim)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

// GoesLeft reports whether value v follows the left branch of n.
func (r SplitRule) GoesLeft(n Node, v float64) bool {
	if r == SplitLess {
		return v < n.Threshold
	}
	return v <= n.Threshold
}

// LeafIndex drops x down the tree and returns the index of the leaf reached.
func (t *Tree) LeafIndex(x []float64, rule SplitRule) int {
	i := 0
	for !t.Nodes[i].Leaf {
		n := t.Nodes[i]
		if rule.GoesLeft(n, x[n.Feature]) {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return i
}

// Evaluate returns the leaf value reached by x.
func (t *Tree) Evaluate(x []float64, rule SplitRule) []float64 {
	return t.Nodes[t.LeafIndex(x, rule)].Value
}
