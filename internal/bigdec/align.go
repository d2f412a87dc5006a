package bigdec

// alignedView presents a BigDec as if it were padded to a common target
// scale and a common chunk length, without mutating or reallocating the
// operand itself. chunkAt computes each
// virtual chunk on demand from the real digit data plus the padding
// arithmetic, rather than physically materializing padded chunks.
type alignedView struct {
	b           *BigDec
	scaleT      int // target scale, >= b.scale
	totalChunks int // virtual chunk-length of the aligned view
}

// relLen is the digit count of b's real (non-beg-padded) magnitude.
func relLen(b *BigDec) int {
	return (len(b.chunks) - b.beg) * K
}

func newAlignedView(b *BigDec, scaleT, totalChunks int) alignedView {
	return alignedView{b: b, scaleT: scaleT, totalChunks: totalChunks}
}

// digitAt returns the digit at position i (0 = leftmost) of the aligned,
// totalChunks*K-digit-wide view. begPadDigits virtual zero digits are
// implied on the left (expressed in digits rather than whole chunks
// since the scale shift need not be a whole number of chunks);
// endPadDigits zero digits are implied on the
// right, covering both the intra-chunk fractional shift and any extra
// chunk-length padding.
func (v alignedView) digitAt(i int) int {
	widenedLen := relLen(v.b) + (v.scaleT - v.b.scale) // length after right-padding for the scale shift
	begPad := v.totalChunks*K - widenedLen
	if i < begPad {
		return 0
	}
	k := i - begPad
	if k >= relLen(v.b) {
		return 0
	}
	return digitAt(v.b.chunks, v.b.beg*K+k)
}

// chunkAt returns the aligned chunk value at virtual chunk index ci
// (0 = most significant).
func (v alignedView) chunkAt(ci int) uint64 {
	var val uint64
	base := ci * K
	for j := 0; j < K; j++ {
		val = val*10 + uint64(v.digitAt(base+j))
	}
	return val
}

// ceilDivK rounds n up to the nearest multiple of K, expressed in chunks.
func ceilDivK(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + K - 1) / K
}
