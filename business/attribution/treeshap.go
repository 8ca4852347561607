package attribution

import (
	"fmt"

	"liverRisk/pkg/mlmodel"
)

// treeBackend computes exact path-dependent TreeSHAP values over one tree
// ensemble member. Boosted members are explained in margin space and return
// a single array; forests return one array per class.
type treeBackend struct {
	est      *mlmodel.Estimator
	width    int
	expected []float64
}

func newTreeBackend(est *mlmodel.Estimator, width int) (*treeBackend, error) {
	if est.Kind != mlmodel.KindGBDT && est.Kind != mlmodel.KindForest {
		return nil, fmt.Errorf("estimator %q of kind %q is not a tree ensemble", est.Name, est.Kind)
	}
	outputs := est.Outputs()
	expected := make([]float64, outputs)
	for t := range est.Trees {
		tree := &est.Trees[t]
		for i, n := range tree.Nodes {
			if n.Cover <= 0 {
				return nil, fmt.Errorf("tree %d node %d has no cover", t, i)
			}
			if !n.Leaf && n.Feature >= width {
				return nil, fmt.Errorf("tree %d node %d splits on feature %d, width is %d", t, i, n.Feature, width)
			}
		}
		for k, v := range treeExpectation(tree, 0, outputs) {
			expected[k] += v
		}
	}

	if est.Kind == mlmodel.KindForest {
		n := float64(len(est.Trees))
		for k := range expected {
			expected[k] /= n
		}
	} else {
		expected[0] += est.BaseMargin
	}

	return &treeBackend{est: est, width: width, expected: expected}, nil
}

// treeExpectation is the cover-weighted mean leaf value under node.
func treeExpectation(t *mlmodel.Tree, node, outputs int) []float64 {
	n := t.Nodes[node]
	if n.Leaf {
		return n.Value
	}
	left := treeExpectation(t, n.Left, outputs)
	right := treeExpectation(t, n.Right, outputs)
	wl := t.Nodes[n.Left].Cover / n.Cover
	wr := t.Nodes[n.Right].Cover / n.Cover
	out := make([]float64, outputs)
	for k := range out {
		out[k] = wl*left[k] + wr*right[k]
	}
	return out
}

func (b *treeBackend) ExpectedValue() BaseValue {
	if b.est.Kind == mlmodel.KindForest {
		return PerClassBase(append([]float64(nil), b.expected...))
	}
	return ScalarBase(b.expected[0])
}

func (b *treeBackend) ShapValues(x [][]float64) (Values, error) {
	outputs := b.est.Outputs()
	// phi[class][sample][feature]
	phi := make([][][]float64, outputs)
	for k := range phi {
		phi[k] = make([][]float64, len(x))
	}

	rule := b.est.Rule()
	for s, row := range x {
		if len(row) != b.width {
			return Values{}, fmt.Errorf("sample %d has %d features, want %d: %w", s, len(row), b.width, mlmodel.ErrDimension)
		}
		acc := make([][]float64, outputs)
		for k := range acc {
			acc[k] = make([]float64, b.width)
		}
		for t := range b.est.Trees {
			w := treeWalker{tree: &b.est.Trees[t], rule: rule, x: row, phi: acc}
			w.recurse(0, nil, 1, 1, -1)
		}
		if b.est.Kind == mlmodel.KindForest {
			n := float64(len(b.est.Trees))
			for k := range acc {
				for j := range acc[k] {
					acc[k][j] /= n
				}
			}
		}
		for k := range acc {
			phi[k][s] = acc[k]
		}
	}

	if b.est.Kind == mlmodel.KindForest {
		return PerClassValues(phi), nil
	}
	return SingleValues(phi[0]), nil
}

type pathElement struct {
	feature int
	zero    float64
	one     float64
	weight  float64
}

type treeWalker struct {
	tree *mlmodel.Tree
	rule mlmodel.SplitRule
	x    []float64
	phi  [][]float64
}

func (w *treeWalker) recurse(node int, parent []pathElement, zero, one float64, feature int) {
	path := make([]pathElement, len(parent), len(parent)+1)
	copy(path, parent)
	path = extendPath(path, zero, one, feature)

	n := w.tree.Nodes[node]
	if n.Leaf {
		for i := 1; i < len(path); i++ {
			el := path[i]
			scale := unwoundPathSum(path, i) * (el.one - el.zero)
			for k, v := range n.Value {
				w.phi[k][el.feature] += scale * v
			}
		}
		return
	}

	hot, cold := n.Right, n.Left
	if w.rule.GoesLeft(n, w.x[n.Feature]) {
		hot, cold = n.Left, n.Right
	}

	inZero, inOne := 1.0, 1.0
	for k := range path {
		if path[k].feature == n.Feature {
			inZero, inOne = path[k].zero, path[k].one
			path = unwindPath(path, k)
			break
		}
	}

	hotZero := w.tree.Nodes[hot].Cover / n.Cover
	coldZero := w.tree.Nodes[cold].Cover / n.Cover
	w.recurse(hot, path, hotZero*inZero, inOne, n.Feature)
	w.recurse(cold, path, coldZero*inZero, 0, n.Feature)
}

// extendPath grows the unique path by one split, updating the permutation
// weights of every subset size.
func extendPath(path []pathElement, zero, one float64, feature int) []pathElement {
	depth := len(path)
	weight := 0.0
	if depth == 0 {
		weight = 1
	}
	path = append(path, pathElement{feature: feature, zero: zero, one: one, weight: weight})
	for i := depth - 1; i >= 0; i-- {
		path[i+1].weight += one * path[i].weight * float64(i+1) / float64(depth+1)
		path[i].weight = zero * path[i].weight * float64(depth-i) / float64(depth+1)
	}
	return path
}

// unwindPath undoes the extension at index i. It mutates path in place and
// returns it one element shorter.
func unwindPath(path []pathElement, i int) []pathElement {
	depth := len(path) - 1
	one, zero := path[i].one, path[i].zero
	next := path[depth].weight
	for j := depth - 1; j >= 0; j-- {
		if one != 0 {
			tmp := path[j].weight
			path[j].weight = next * float64(depth+1) / (float64(j+1) * one)
			next = tmp - path[j].weight*zero*float64(depth-j)/float64(depth+1)
		} else {
			path[j].weight = path[j].weight * float64(depth+1) / (zero * float64(depth-j))
		}
	}
	for j := i; j < depth; j++ {
		path[j].feature = path[j+1].feature
		path[j].zero = path[j+1].zero
		path[j].one = path[j+1].one
	}
	return path[:depth]
}

// unwoundPathSum is the total weight the path would have with element i
// removed, without modifying path.
func unwoundPathSum(path []pathElement, i int) float64 {
	depth := len(path) - 1
	one, zero := path[i].one, path[i].zero
	next := path[depth].weight
	total := 0.0
	if one != 0 {
		for j := depth - 1; j >= 0; j-- {
			tmp := next / (float64(j+1) * one)
			total += tmp
			next = path[j].weight - tmp*zero*float64(depth-j)
		}
	} else {
		for j := depth - 1; j >= 0; j-- {
			total += path[j].weight / (zero * float64(depth-j))
		}
	}
	return total * float64(depth+1)
}
