package engine

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// Rand is the randomness the engine needs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a deterministic generator for seed. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	_, _ = h.Write(buf[:])
	hi := h.Sum64()
	// #nosec G404 -- game randomness, reproducible by seed
	return rand.New(rand.NewPCG(hi, hi^streamMix))
}

// streamMix derives the second PCG word from the first.
const streamMix = 0x9e3779b97f4a7c15
