package bigdec

// leadingZeroDigits counts how many of a chunk's K decimal digits (read
// most-significant first) are zero.
func leadingZeroDigits(chunk uint64) int {
	count := 0
	for j := 0; j < K; j++ {
		d := (chunk / pow10[K-1-j]) % 10
		if d != 0 {
			break
		}
		count++
	}
	return count
}

// intDigitCount is the number of digits of b that lie left of the decimal
// point.
func intDigitCount(b *BigDec) int {
	return relLen(b) - leadingZeroDigits(b.chunks[b.beg]) - b.scale
}

// absCompare compares |x| and |y|, ignoring sign.
func absCompare(x, y *BigDec) int {
	ix, iy := intDigitCount(x), intDigitCount(y)
	if ix != iy {
		if ix > iy {
			return 1
		}
		return -1
	}
	scaleT := max(x.scale, y.scale)
	totalChunks := max(
		ceilDivK(relLen(x)+(scaleT-x.scale)),
		ceilDivK(relLen(y)+(scaleT-y.scale)),
	) + 1
	vx := newAlignedView(x, scaleT, totalChunks)
	vy := newAlignedView(y, scaleT, totalChunks)
	for ci := 0; ci < totalChunks; ci++ {
		cx, cy := vx.chunkAt(ci), vy.chunkAt(ci)
		if cx != cy {
			if cx > cy {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Compare returns -1, 0, or 1 as x is less than, equal to, or greater
// than y.
func Compare(x, y *BigDec) int {
	if x.IsZero() && y.IsZero() {
		return 0
	}
	if x.sign != y.sign {
		if x.sign == Positive {
			return 1
		}
		return -1
	}
	c := absCompare(x, y)
	if x.sign == Negative {
		c = -c
	}
	return c
}

// magAdd adds |x| and |y|, ignoring sign, returning a positive result.
func magAdd(x, y *BigDec) *BigDec {
	scaleT := max(x.scale, y.scale)
	lenX := relLen(x) + (scaleT - x.scale)
	lenY := relLen(y) + (scaleT - y.scale)
	totalChunks := max(ceilDivK(lenX), ceilDivK(lenY)) + 1
	vx := newAlignedView(x, scaleT, totalChunks)
	vy := newAlignedView(y, scaleT, totalChunks)

	chunks := make([]chunkT, totalChunks)
	var carry uint64
	for ci := totalChunks - 1; ci >= 0; ci-- {
		sum := vx.chunkAt(ci) + vy.chunkAt(ci) + carry
		if sum >= BASE {
			chunks[ci] = sum - BASE
			carry = 1
		} else {
			chunks[ci] = sum
			carry = 0
		}
	}
	return &BigDec{chunks: chunks, beg: 0, scale: scaleT, sign: Positive}
}

// magSub computes |x|-|y|, returning Positive if |x|>=|y| and Negative
// (still holding the magnitude of the difference) otherwise. The caller
// attributes the real sign.
func magSub(x, y *BigDec) *BigDec {
	swapped := false
	if absCompare(x, y) < 0 {
		x, y = y, x
		swapped = true
	}
	scaleT := max(x.scale, y.scale)
	lenX := relLen(x) + (scaleT - x.scale)
	lenY := relLen(y) + (scaleT - y.scale)
	totalChunks := max(ceilDivK(lenX), ceilDivK(lenY)) + 1
	vx := newAlignedView(x, scaleT, totalChunks)
	vy := newAlignedView(y, scaleT, totalChunks)

	chunks := make([]chunkT, totalChunks)
	var borrow uint64
	for ci := totalChunks - 1; ci >= 0; ci-- {
		xv := vx.chunkAt(ci)
		sub := vy.chunkAt(ci) + borrow
		if sub > xv {
			chunks[ci] = xv + BASE - sub
			borrow = 1
		} else {
			chunks[ci] = xv - sub
			borrow = 0
		}
	}
	sign := Positive
	if swapped {
		sign = Negative
	}
	return &BigDec{chunks: chunks, beg: 0, scale: scaleT, sign: sign}
}

// Add returns x+y. Same-sign addends add magnitudes directly;
// differing-sign addends subtract magnitudes and attribute the larger
// operand's sign.
func Add(x, y *BigDec) *BigDec {
	var r *BigDec
	if x.sign == y.sign {
		r = magAdd(x, y)
		r.sign = x.sign
	} else {
		r = magSub(x, y)
		if r.sign == Positive {
			r.sign = x.sign
		} else {
			r.sign = y.sign
		}
	}
	r.trim()
	return r
}

// Subtract returns x-y, delegating to Add(x, -y).
func Subtract(x, y *BigDec) *BigDec {
	negY := y.Clone()
	negY.Negate()
	return Add(x, negY)
}

// revIdx converts a from-the-right position into an MSB-first slice index.
func revIdx(totalLen, fromRight int) int { return totalLen - 1 - fromRight }

// Multiply returns x*y via schoolbook long multiplication over base-BASE
// chunks. The half-width digit layout guarantees that each partial
// product plus the carry and the result chunk it lands in fits in a
// uint64; that sum is then normalized modulo BASE.
func Multiply(x, y *BigDec) *BigDec {
	realA := x.chunks[x.beg:]
	realB := y.chunks[y.beg:]
	na, nb := len(realA), len(realB)
	if na < nb {
		realA, realB = realB, realA
		na, nb = nb, na
	}
	result := make([]uint64, na+nb)
	for kb := 0; kb < nb; kb++ {
		bVal := realB[revIdx(nb, kb)]
		if bVal == 0 {
			continue
		}
		var carry uint64
		for ka := 0; ka < na; ka++ {
			aVal := realA[revIdx(na, ka)]
			idx := revIdx(na+nb, ka+kb)
			prod := aVal*bVal + result[idx] + carry
			result[idx] = prod % BASE
			carry = prod / BASE
		}
		idx := revIdx(na+nb, na+kb)
		for carry > 0 && idx >= 0 {
			prod := result[idx] + carry
			result[idx] = prod % BASE
			carry = prod / BASE
			idx--
		}
	}
	sign := Positive
	if x.sign != y.sign {
		sign = Negative
	}
	r := &BigDec{chunks: result, beg: 0, scale: x.scale + y.scale, sign: sign}
	r.trim()
	return r
}

// Div is an intentional no-op that returns the left operand unchanged.
// Long division is unimplemented; "/" and "/=" dispatch here so the
// expression layer parses them without producing a quotient.
func Div(x, y *BigDec) *BigDec {
	return x.Clone()
}
