package similarity

import "math"

// Norms are stored by index writers as a single byte: a float with 3 bits of
// mantissa and an exponent bias of 15.
//
//   smallest non-zero value = 5.820766E-10
//   largest value = 7.5161928E9
//   epsilon = 0.125
const (
	mantissaBits = 3
	zeroExponent = 15
	fzero        = (63 - zeroExponent) << mantissaBits
)

// EncodeNorm encodes a norm into a single byte. Values are rounded down;
// positive values too small to be represented are encoded as 1, values too
// large as 255. Zero, negative values and NaN are encoded as 0.
func EncodeNorm(f float32) byte {
	if !(f > 0) {
		return 0
	}
	bits := math.Float32bits(f)
	smallfloat := bits >> (24 - mantissaBits)
	if smallfloat <= fzero {
		return 1
	}
	if smallfloat >= fzero+0x100 {
		return 0xff
	}
	return byte(smallfloat - fzero)
}

var normTable = buildNormTable()

func buildNormTable() [256]float32 {
	var table [256]float32
	for i := range table {
		table[i] = decodeNorm(byte(i))
	}
	return table
}

func decodeNorm(b byte) float32 {
	if b == 0 {
		return 0
	}
	bits := uint32(b) << (24 - mantissaBits)
	bits += (63 - zeroExponent) << 24
	return math.Float32frombits(bits)
}

// DecodeNorm decodes a norm byte, as encoded by EncodeNorm.
func DecodeNorm(b byte) float32 {
	return normTable[b]
}
