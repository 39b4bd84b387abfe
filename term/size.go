package term

import (
	"os"

	"golang.org/x/term"
)

type termSize struct {
	Height int
	Width  int
}

// Size reports the current size of the controlling terminal. Falls back
// to a conservative 80x24 default when stdout isn't a terminal (piped
// output, CI).
func Size() (*termSize, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return &termSize{Height: 24, Width: 80}, nil
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return nil, err
	}
	return &termSize{Height: height, Width: width}, nil
}
