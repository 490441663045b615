package main

import (
	"go.brendoncarroll.net/star"

	"myceliumweb.org/lichen/licmd"
)

func main() {
	star.Main(licmd.Root())
}
