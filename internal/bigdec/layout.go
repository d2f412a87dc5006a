// Package bigdec implements an arbitrary-precision signed decimal number:
// a chunked base-10^K magnitude, a soft-trim marker, a decimal scale, and
// a sign.
package bigdec

// K is the number of decimal digits packed into one chunk. Chosen so a
// single long-multiplication column (two chunk values plus a carry) never
// overflows the chunk storage type: BASE*(BASE-1) + (BASE-1) must fit in
// chunkT. For a 64-bit chunk, K=9 is the largest K for which that holds
// (K=10 overflows uint64 in the worst case column).
const K = 9

// BASE is 10^K, the radix of one chunk.
const BASE uint64 = 1_000_000_000

// chunkT is the storage type for one chunk; only the lower K decimal
// digits of its range are ever used, leaving headroom for carries.
type chunkT = uint64

// pow10 holds the first twenty powers of ten, initialized once and
// read-only thereafter.
var pow10 = [20]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000,
	1000000000, 10000000000, 100000000000, 1000000000000,
	10000000000000, 100000000000000, 1000000000000000,
	10000000000000000, 100000000000000000, 1000000000000000000,
	10000000000000000000,
}

// Sign is the sign of a BigDec's magnitude.
type Sign int8

const (
	Positive Sign = 1
	Negative Sign = -1
)

func (s Sign) flip() Sign {
	if s == Positive {
		return Negative
	}
	return Positive
}

func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// digitAt reads the decimal digit at global position p within chunks,
// where position 0 is the leftmost digit of chunks[0] and p increases
// left to right; position p maps to chunk p/K, intra-chunk digit p%K.
func digitAt(chunks []chunkT, p int) int {
	c, j := p/K, p%K
	if c < 0 || c >= len(chunks) {
		return 0
	}
	return int((chunks[c] / pow10[K-1-j]) % 10)
}

// setDigitAt writes decimal digit d at global position p, adjusting the
// owning chunk by (d-current)*10^(K-1-j).
func setDigitAt(chunks []chunkT, p int, d int) {
	c, j := p/K, p%K
	cur := int((chunks[c] / pow10[K-1-j]) % 10)
	delta := int64(d-cur) * int64(pow10[K-1-j])
	chunks[c] = uint64(int64(chunks[c]) + delta)
}
