package version

// Version tokens are opaque change detectors. A token is only ever compared
// for equality: it is never ordered, parsed, or interpreted. Whichever
// phase produces a member decides what its tokens look like; this package
// provides content-hash tokens for phases that want them, but a monotonic
// counter rendered as a string is just as valid.
//
// An absent token means "treat as always changed". This is not the same as
// "unchanged": synthetically regenerated members get no token precisely so
// that nothing downstream ever reuses a cached artifact for them.

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// A Token is an optional opaque version value. The zero Token is absent.
// The value is unexported so that every consumer goes through OK() and
// cannot accidentally treat an absent token as an empty-but-valid one.
type Token struct {
	value string
	ok    bool
}

func MakeToken(value string) Token {
	return Token{value: value, ok: true}
}

// OK reports whether a token is present at all.
func (t Token) OK() bool {
	return t.ok
}

// Value returns the underlying token text. Calling this on an absent token
// is an internal error: callers must check OK() first.
func (t Token) Value() string {
	if !t.ok {
		panic("Internal error: reading an absent version token")
	}
	return t.value
}

// Same implements the cache-equivalence rule: two tokens only license
// reuse when both are present and equal. Either side being absent forces
// recomputation.
func Same(a Token, b Token) bool {
	return a.ok && b.ok && a.value == b.value
}

// HashToken derives a content-hash token from serialized data, typically a
// method body. Identical content always hashes to the same token, so a
// front-end that re-emits an unchanged method still produces a cache hit.
func HashToken(data []byte) Token {
	sum := blake3.Sum256(data)
	return MakeToken(hex.EncodeToString(sum[:]))
}

// HashTokenOfStrings hashes a sequence of strings, length-prefixed so that
// ["ab","c"] and ["a","bc"] cannot collide.
func HashTokenOfStrings(parts ...string) Token {
	h := blake3.New()
	var lenBuf [4]byte
	for _, part := range parts {
		writeUint32(h, &lenBuf, uint32(len(part)))
		h.WriteString(part)
	}
	sum := h.Sum(nil)
	return MakeToken(hex.EncodeToString(sum))
}

// CacheKey combines the class-level version with the versions of every
// member the consumer looked at. The class-level version deliberately does
// not cover the member collections, so using it alone as a cache key is a
// correctness bug; this function exists so callers have no reason to
// hand-roll that combination and forget a part. If any input token is
// absent the combined key is absent, which forces recomputation.
func CacheKey(class Token, members ...Token) Token {
	if !class.ok {
		return Token{}
	}
	h := blake3.New()
	var lenBuf [4]byte
	writeUint32(h, &lenBuf, uint32(len(class.value)))
	h.WriteString(class.value)
	for _, member := range members {
		if !member.ok {
			return Token{}
		}
		writeUint32(h, &lenBuf, uint32(len(member.value)))
		h.WriteString(member.value)
	}
	sum := h.Sum(nil)
	return MakeToken(hex.EncodeToString(sum))
}

func writeUint32(h *blake3.Hasher, buf *[4]byte, v uint32) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
	h.Write(buf[:])
}
