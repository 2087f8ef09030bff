// Package hash fingerprints encoded streams and decoded output buffers.
package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of data.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates a fingerprint over several writes.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds p to the running fingerprint. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

// Sum64 returns the fingerprint of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
