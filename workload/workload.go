// Package workload is the benchmark body both lanes execute. The dispatcher
// treats it as an opaque entry point writing into its own accumulator.
package workload

import (
	"encoding/binary"
	"hash/crc32"

	"golang.org/x/crypto/sha3"
)

// Results is one lane's accumulator. Seed and Iterations are inputs; the
// remaining fields are written by Iterate.
type Results struct {
	Lane       int
	Seed       uint64
	Iterations int

	Executed int
	Digest   [32]byte
	Checksum uint32
}

// Reset clears the outputs and sets the inputs for the next run.
func (r *Results) Reset(lane int, seed uint64, iterations int) {
	*r = Results{Lane: lane, Seed: seed, Iterations: iterations}
}

// Iterate runs r.Iterations rounds of the workload. Each round chains a
// Keccak-256 over the previous digest and the round counter, then folds the
// digest into the checksum, so the result depends on every round in order
// and two lanes with equal seeds and counts agree bit for bit.
func Iterate(r *Results) {
	h := sha3.NewLegacyKeccak256()
	var block [40]byte

	binary.LittleEndian.PutUint64(block[:8], r.Seed+uint64(r.Executed))
	copy(block[8:], r.Digest[:])

	crc := r.Checksum
	for i := 0; i < r.Iterations; i++ {
		h.Reset()
		h.Write(block[:])
		h.Sum(block[8:8])

		binary.LittleEndian.PutUint64(block[:8], r.Seed+uint64(r.Executed+i+1))
		crc = crc32.Update(crc, crc32.IEEETable, block[8:])
	}

	copy(r.Digest[:], block[8:])
	r.Checksum = crc
	r.Executed += r.Iterations
}
