package display

import (
	"fmt"
	"os"

	"github.com/backmassage/pqconvert/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `                                          _
 _ __   __ _  ___ ___  _ ____   _____ _ _| |_
| '_ \ / _`+"`"+` |/ __/ _ \| '_ \ \ / / _ \ '_| __|
| |_) | (_| | (_| (_) | | | \ V /  __/ | | |_
| .__/ \__, |\___\___/|_| |_|\_/ \___|_|  \__|
|_|       |_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
