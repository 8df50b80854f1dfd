package hashkernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastPathSegment(t *testing.T) {
	cases := []struct{ in, want string }{
		{"apple/banana/orange/grape", "grape"},
		{"./src/main.rs", "main.rs"},
		{"apple/banana/orange", "orange"},
		{"apple-banana-orange", "apple-banana-orange"},
		{"", ""},
		{"/", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LastPathSegment(c.in), "input %q", c.in)
	}
}

func TestHasPrefixFold(t *testing.T) {
	assert.True(t, HasPrefixFold("apple/banana/orange", "apple"))
	assert.False(t, HasPrefixFold("apple-banana-orange", "banana"))
	assert.True(t, HasPrefixFold("HELLO", "he"))
}

func TestHashDeterminism(t *testing.T) {
	a := Hash("MainFile.rs")
	b := Hash("MainFile.rs")
	assert.Equal(t, a, b)
}

func TestHashPrefixStability(t *testing.T) {
	// If lowercase(a) is a prefix of lowercase(b) of length k, hashing
	// lowercase(b)[:k] must equal hashing a.
	a := "main"
	b := "MainFile.RS"
	k := len(a)
	got := Hash(b[:k])
	want := Hash(a)
	require.Equal(t, want, got)
}

func TestHashCaseInsensitive(t *testing.T) {
	a := Hash("mainfile.rs")
	b := Hash("MainFile.RS")
	c := Hash("MAINFILE.RS")
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestStackHashPacking(t *testing.T) {
	cases := []struct {
		stack, numC uint16
		hash        uint32
	}{
		{0, 0, 0},
		{1, 1, 1},
		{65535, 65535, 4294967295},
		{12345, 6789, 0xdeadbeef},
	}
	for _, c := range cases {
		sh := MakeStackHash(c.stack, RollingHash{NumC: c.numC, Hash: c.hash})
		assert.Equal(t, c.stack, sh.Stack())
		assert.Equal(t, c.numC, sh.NumC())
		assert.Equal(t, c.hash, sh.Hash())
	}
}

func TestHashNameProducesOnePrefixPerCharacter(t *testing.T) {
	name := "cd.txt"
	hashes := HashName(1, name)
	assert.Len(t, hashes, len([]rune(name)))

	// The final entry must equal the stack-hash of the full name's
	// terminal rolling-hash state.
	want := MakeStackHash(1, Hash(name))
	assert.Equal(t, want, hashes[len(hashes)-1])
}

func TestPossibleHashesFansOutByDepth(t *testing.T) {
	hashes := PossibleHashes(4, "c")
	require.Len(t, hashes, 4)
	for d, h := range hashes {
		assert.Equal(t, uint16(d), h.Stack())
	}
}

func TestHashNameEmptyName(t *testing.T) {
	assert.Empty(t, HashName(1, ""))
}
