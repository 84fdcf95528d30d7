package ks13

// zeroize overwrites b in place.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
