// Package hashkernel implements the depth-aware rolling-prefix hash that
// backs the file index: a pure, order-sensitive hash over a lowercased
// file name, and the bit-packing that combines it with a path depth into
// a single lookup key.
package hashkernel

import "strings"

// RollingHash is the hash state after consuming some prefix of a
// lowercased file name.
type RollingHash struct {
	NumC uint16
	Hash uint32
}

// StackHash packs a path depth and a RollingHash into one 64-bit key:
//
//	bits 63..48 : stack  (depth)
//	bits 47..32 : numC
//	bits 31..0  : hash
type StackHash uint64

// MakeStackHash composes a depth and a RollingHash into a StackHash.
func MakeStackHash(stack uint16, h RollingHash) StackHash {
	return StackHash(uint64(stack)<<48 | uint64(h.NumC)<<32 | uint64(h.Hash))
}

// Stack, NumC and Hash recover the three packed fields. They exist mainly
// for tests that check the packing is bijective (spec §8.5).
func (s StackHash) Stack() uint16 { return uint16(s >> 48) }
func (s StackHash) NumC() uint16  { return uint16(s >> 32) }
func (s StackHash) Hash() uint32  { return uint32(s) }

// sequence runs the rolling hash over the lowercased name, calling emit
// after every character with the hash state reached so far. It is the Go
// translation of the original `hash_it!` macro: num_c is the current
// character's low byte shifted into the high byte, ORed with the whole
// previous num_c. Because the first num_c has a zero low byte, the low
// byte stays zero throughout and the high byte accumulates the OR of the
// low bytes of every character seen so far, so num_c is not a bigram. It
// is deterministic and prefix-stable, so it is preserved exactly.
func sequence(name string, emit func(RollingHash)) {
	lower := strings.ToLower(name)

	var i uint32 = 255
	var rollingHash uint32 = 2
	var lastC uint16 = 0

	for _, c := range lower {
		numC := uint16(c)<<8 | lastC
		rollingHash = (rollingHash + uint32(numC)) % i
		emit(RollingHash{NumC: numC, Hash: rollingHash})
		lastC = numC
		i++
	}
}

// Hash returns the terminal rolling-hash state after consuming all of
// name (get_hash in the original source).
func Hash(name string) RollingHash {
	var state RollingHash
	sequence(name, func(h RollingHash) { state = h })
	return state
}

// HashName emits one StackHash per prefix length of name, at the given
// depth: the indexer inserts the file's path under every one of these
// keys (get_hashset).
func HashName(stack uint16, name string) []StackHash {
	if name == "" {
		return nil
	}
	hashes := make([]StackHash, 0, len([]rune(name)))
	sequence(name, func(h RollingHash) {
		hashes = append(hashes, MakeStackHash(stack, h))
	})
	return hashes
}

// PossibleHashes computes the terminal hash of query and emits one
// StackHash per depth in [0, maxStack): the set of buckets that could
// possibly contain a match for query at any depth below maxStack
// (get_possible_hashes).
func PossibleHashes(maxStack uint16, query string) []StackHash {
	h := Hash(query)
	hashes := make([]StackHash, 0, int(maxStack))
	for d := uint16(0); d < maxStack; d++ {
		hashes = append(hashes, MakeStackHash(d, h))
	}
	return hashes
}
