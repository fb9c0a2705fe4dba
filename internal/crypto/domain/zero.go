package domain

// Zero overwrites b with zeros so decoded key material does not linger in memory.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
