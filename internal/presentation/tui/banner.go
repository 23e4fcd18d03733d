package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _           _           ", "#818cf8"},
	{"| |_   _  __| |_   _ ___ ", "#a78bfa"},
	{"| | | | |/ _` | | | / __|", "#c084fc"},
	{"| | |_| | (_| | |_| \\__ \\", "#e879f9"},
	{"|_|\\__,_|\\__,_|\\__,_|___/", "#f472b6"},
}

// PrintBanner writes the ludus banner and version to w, coloured for the
// terminal profile of w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
