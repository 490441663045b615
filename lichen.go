package lichen

import (
	"lukechampine.com/blake3"

	"myceliumweb.org/lichen/internal/ident"
)

type (
	// FID is the fingerprint identifying a global entity or a term shape.
	FID = ident.ID

	HashFunc = ident.HashFunc
)

const (
	// FIDSize is the size of a fingerprint in bytes.
	FIDSize = ident.IDSize
)

// Hash calculates the fingerprint of x.
// If tag == nil, then the hash is unkeyed.
// If tag != nil, then the hash will be keyed with the tag.
func Hash(tag *ident.ID, x []byte) (ret ident.ID) {
	var key []byte
	if tag != nil {
		key = tag[:]
	}
	h := blake3.New(32, key)
	h.Write(x)
	h.Sum(ret[:0])
	return ret
}
