package fontsource

// ChecksumKey identifies font binaries by content.
type ChecksumKey = uint64

const adlerPrime = 65521

// nmax is the largest number of bytes which can be summed up before s2
// overflows 32 bits (the bound used by zlib's Adler-32).
const nmax = 5552

// Checksum computes a 64-bit content checksum of a font binary.
//
// The checksum combines the two Adler sums with the length of the binary.
// It is not cryptographic; the store compares bytes on every checksum hit
// and moves colliding binaries to a different key.
func Checksum(data []byte) ChecksumKey {
	var s1, s2 uint32 = 1, 0
	for p := data; len(p) > 0; {
		n := min(len(p), nmax)
		for _, b := range p[:n] {
			s1 += uint32(b)
			s2 += s1
		}
		s1 %= adlerPrime
		s2 %= adlerPrime
		p = p[n:]
	}
	return uint64(s2)<<48 | uint64(s1)<<32 | uint64(uint32(len(data)))
}
