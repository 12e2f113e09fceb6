//go:build windows

package interaction

import (
	"os"

	"golang.org/x/term"
)

// enableRawMode sets the console to raw mode on Windows and returns a
// function restoring the previous state.
func enableRawMode() (func() error, error) {
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	return func() error {
		return term.Restore(fd, oldState)
	}, nil
}
