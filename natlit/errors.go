package natlit

import (
	"fmt"
	"math/big"

	"myceliumweb.org/lichen/term"
)

// ErrNegative is returned by Encode for negative inputs.
type ErrNegative struct {
	Loc term.Loc
	N   *big.Int
}

func (e ErrNegative) Error() string {
	return fmt.Sprintf("Encode: cannot interpret negative number %v as a unary numeral", e.N)
}
