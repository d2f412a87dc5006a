package bigdec

import "strings"

// zeroPointX, when true, prints a single "0" before the decimal point of
// a value with no integer part ("0.3" instead of ".3").
const zeroPointX = false

// digitString renders the nd = relLen(b) digits from beg onward, most
// significant first, as literal characters.
func (b *BigDec) digitString() string {
	nd := relLen(b)
	var sb strings.Builder
	sb.Grow(nd)
	for p := 0; p < nd; p++ {
		sb.WriteByte(byte('0' + digitAt(b.chunks[b.beg:], p)))
	}
	return sb.String()
}

// String formats b: zero prints "0"; a purely fractional
// value prints ".ddd" with no leading "0"; trailing zero digits within
// the final chunk are suppressed, but never zeros that are part of the
// integer portion.
func (b *BigDec) String() string {
	if b.IsZero() {
		return "0"
	}
	nd := relLen(b)
	digits := b.digitString()

	var body string
	switch {
	case b.scale >= nd:
		// Fully fractional.
		frac := strings.TrimRight(digits, "0")
		body = "." + strings.Repeat("0", b.scale-nd) + frac
	case b.scale < 0:
		// Integer with a trailing power-of-ten shift. The leading zeros
		// within chunks[beg] are not part of the value.
		body = strings.TrimLeft(digits, "0") + strings.Repeat("0", -b.scale)
	default:
		intCount := nd - b.scale
		intPart := strings.TrimLeft(digits[:intCount], "0")
		fracPart := strings.TrimRight(digits[intCount:], "0")
		body = intPart
		if fracPart != "" {
			body += "." + fracPart
		}
		if body == "" {
			body = "0"
		}
	}
	if zeroPointX && strings.HasPrefix(body, ".") {
		body = "0" + body
	}
	if b.sign == Negative {
		return "-" + body
	}
	return body
}
