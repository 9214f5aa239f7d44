package probe

import "strconv"

// hash32 is the rolling multiply-and-add hash used to fingerprint
// canvas and WebGL output: h = (h<<5) - h + c, masked to 32 bits.
// Not cryptographic; it only has to make different renders produce
// different short strings.
func hash32(data []byte) uint32 {
	var h int32
	for _, c := range data {
		h = (h << 5) - h + int32(c)
	}
	return uint32(h)
}

// fingerprint encodes hash32 in base 36, the canonical encoding for
// every consumer in this repository.
func fingerprint(data []byte) string {
	return strconv.FormatUint(uint64(hash32(data)), 36)
}
