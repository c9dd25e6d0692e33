package estimate

// Sample draws one outcome. Operation nodes draw their left and right
// sub-trees independently and combine the draws; division by a sampled zero
// yields ±Inf or NaN.
func (n *Node) Sample() float64 {
	if n.IsLeaf() {
		return n.dist.Sample()
	}
	return n.op.Apply(n.left.Sample(), n.right.Sample())
}

// NSample draws size independent outcomes in order. size <= 0 yields an
// empty slice.
func (n *Node) NSample(size int) []float64 {
	if size < 0 {
		size = 0
	}
	if n.IsLeaf() {
		return n.dist.BatchSample(size)
	}
	out := n.left.NSample(size)
	right := n.right.NSample(size)
	for i := range out {
		out[i] = n.op.Apply(out[i], right[i])
	}
	return out
}
