package combat

// Rand is the random source the combat rolls draw from. *math/rand.Rand
// satisfies it; tests substitute scripted sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// byteReader adapts a Rand to io.Reader so instance ids come from the same
// seeded source as every other roll.
type byteReader struct {
	rng Rand
}

func (b byteReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(b.rng.Intn(256))
	}
	return len(p), nil
}
