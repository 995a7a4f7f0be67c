package bitset

import "github.com/cespare/xxhash/v2"

// Checksum returns an xxhash of the serialized word stream, used by
// the round-trip tests and the cbitset CLI's verify subcommand to
// confirm a buffer survived a serialize/deserialize cycle untouched.
// This is the same checksum concern oriumgames-bevi's dependency
// graph pulls xxhash in for (a fast, non-cryptographic hash over a
// byte buffer); it has no bearing on canonical form.
func (b *Bitset) Checksum() uint64 {
	return xxhash.Sum64(b.Bytes())
}
