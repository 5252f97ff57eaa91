package event

import "math/rand/v2"

// randomRecords returns n deterministic pseudo-random records with valid color indexes.
func randomRecords(n int, seed uint64) []Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			Time:   rng.Uint32(),
			UserID: rng.Uint32(),
			X:      uint16(rng.IntN(2000)),
			Y:      uint16(rng.IntN(2000)),
			Color:  uint8(rng.IntN(32)),
		}
	}

	return records
}
