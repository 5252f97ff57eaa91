package main

import (
	"fmt"
	"io"

	"github.com/arloliu/placecloud/palette"
)

func runLegend(stdout io.Writer) error {
	p := palette.Default()
	for i, c := range p {
		fmt.Fprintf(stdout, "%2d  %s  rgb(%3d,%3d,%3d)\n", i, c.Hex(), c.R, c.G, c.B)
	}

	return nil
}
