package microgbt

// node is one entry of a Tree's arena. Internal nodes carry the split
// (feature, bin) and the arena indices of their children; leaves carry
// the constant output weight.
type node struct {
	leaf    bool
	feature int
	bin     int
	left    int
	right   int
	weight  float64
	gain    float64
}

// Tree is a single regression tree over binned features. Nodes live in a
// flat arena indexed by integers, with the root at index 0.
type Tree struct {
	nodes []node
}

// workItem is a pending node on the depth-first growth stack. Each item
// owns the histogram of its rows, so the parent's buffer can be released
// as soon as both children are queued.
type workItem struct {
	nodeID int
	rows   []int
	depth  int
	hist   *histogram
	stats  nodeStats
}

// growTree fits one regression tree to the gradient statistics of the
// given rows. Growth is depth-first with an explicit stack, terminating a
// node to a leaf when it reaches MaxDepth, holds fewer than 2*MinTreeSize
// rows, or admits no valid split.
func growTree(ds *Dataset, rows []int, grad, hess []float64, cfg *Config) *Tree {
	t := &Tree{nodes: make([]node, 0, 2*cfg.MaxDepth+1)}

	rootHist := newHistogram(ds.nFeatures, ds.maxBin)
	rootHist.accumulate(ds, rows, grad, hess)

	stack := []workItem{{
		nodeID: t.addNode(),
		rows:   rows,
		depth:  0,
		hist:   rootHist,
		stats:  rootHist.total(),
	}}

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if w.depth >= cfg.MaxDepth || w.stats.count < 2*cfg.MinTreeSize {
			t.makeLeaf(w.nodeID, w.stats, cfg.Lambda)
			continue
		}

		sp, ok := findBestSplit(w.hist, w.stats, cfg)
		if !ok {
			t.makeLeaf(w.nodeID, w.stats, cfg.Lambda)
			continue
		}

		leftRows, rightRows := partitionRows(ds, w.rows, sp.feature, sp.bin)

		// Aggregate the smaller child directly and derive its sibling
		// by subtraction from the parent histogram.
		leftHist := newHistogram(ds.nFeatures, ds.maxBin)
		rightHist := newHistogram(ds.nFeatures, ds.maxBin)
		if len(leftRows) <= len(rightRows) {
			leftHist.accumulate(ds, leftRows, grad, hess)
			rightHist.subtractFrom(w.hist, leftHist)
		} else {
			rightHist.accumulate(ds, rightRows, grad, hess)
			leftHist.subtractFrom(w.hist, rightHist)
		}

		leftID := t.addNode()
		rightID := t.addNode()
		t.nodes[w.nodeID] = node{
			feature: sp.feature,
			bin:     sp.bin,
			left:    leftID,
			right:   rightID,
			gain:    sp.gain,
		}

		// Push right first so the left child is grown next (depth-first,
		// left-to-right), keeping node visitation order deterministic.
		stack = append(stack,
			workItem{nodeID: rightID, rows: rightRows, depth: w.depth + 1, hist: rightHist, stats: sp.right},
			workItem{nodeID: leftID, rows: leftRows, depth: w.depth + 1, hist: leftHist, stats: sp.left},
		)
	}
	return t
}

func (t *Tree) addNode() int {
	t.nodes = append(t.nodes, node{})
	return len(t.nodes) - 1
}

func (t *Tree) makeLeaf(nodeID int, stats nodeStats, lambda float64) {
	t.nodes[nodeID] = node{leaf: true, weight: leafWeight(stats, lambda)}
}

// partitionRows routes rows left when their bin index is at or below the
// threshold bin, right otherwise, preserving relative order.
func partitionRows(ds *Dataset, rows []int, feature, bin int) (left, right []int) {
	for _, i := range rows {
		if int(ds.row(i)[feature]) <= bin {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

// predictBinned traverses the tree with an already-binned training row.
func (t *Tree) predictBinned(binnedRow []uint8) float64 {
	i := 0
	for !t.nodes[i].leaf {
		n := &t.nodes[i]
		if int(binnedRow[n.feature]) <= n.bin {
			i = n.left
		} else {
			i = n.right
		}
	}
	return t.nodes[i].weight
}

// predict traverses the tree with a raw feature vector, binning each
// visited feature on the fly through the dataset's edges.
func (t *Tree) predict(ds *Dataset, x []float64) float64 {
	i := 0
	for !t.nodes[i].leaf {
		n := &t.nodes[i]
		if int(ds.binOf(n.feature, x[n.feature])) <= n.bin {
			i = n.left
		} else {
			i = n.right
		}
	}
	return t.nodes[i].weight
}

// numLeaves counts the tree's leaf nodes.
func (t *Tree) numLeaves() int {
	leaves := 0
	for i := range t.nodes {
		if t.nodes[i].leaf {
			leaves++
		}
	}
	return leaves
}

// collectGains adds each internal node's realized gain to the entry of
// its split feature, for gain-based feature importance.
func (t *Tree) collectGains(res []float64) {
	for i := range t.nodes {
		if !t.nodes[i].leaf {
			res[t.nodes[i].feature] += t.nodes[i].gain
		}
	}
}
