package term

import "fmt"

// Pos is a byte offset within the input.
type Pos uint32

// Loc is the region of the input a term came from.
// Codecs thread it through unchanged; only diagnostics read it.
type Loc struct {
	Begin Pos
	End   Pos
}

func (l Loc) String() string {
	return fmt.Sprintf("[%d, %d)", l.Begin, l.End)
}

func (l Loc) IsZero() bool {
	return l == Loc{}
}
