package term

import (
	"encoding/binary"

	"myceliumweb.org/lichen"
	"myceliumweb.org/lichen/internal/ident"
)

const (
	tagRef = 1 + iota
	tagApp
	tagLocal
	tagLam
)

// AppendBinary appends a canonical encoding of x to out.
// Locations are not part of the encoding, so terms that differ only
// in their locations encode the same.
func AppendBinary(out []byte, x Term) []byte {
	switch x := x.(type) {
	case Ref:
		out = append(out, tagRef)
		fid := x.Global.FID()
		out = append(out, fid[:]...)
	case App:
		out = append(out, tagApp)
		out = binary.AppendUvarint(out, uint64(len(x.Args)))
		out = AppendBinary(out, x.Fn)
		for i := range x.Args {
			out = AppendBinary(out, x.Args[i])
		}
	case Local:
		out = append(out, tagLocal)
		out = binary.AppendUvarint(out, uint64(x.Index))
	case Lam:
		out = append(out, tagLam)
		out = binary.AppendUvarint(out, uint64(len(x.Binder)))
		out = append(out, x.Binder...)
		out = AppendBinary(out, x.Body)
	default:
		panic(x)
	}
	return out
}

// Fingerprint hashes the canonical encoding of x.
func Fingerprint(x Term) ident.ID {
	return lichen.Hash(nil, AppendBinary(nil, x))
}
