package qsim

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const histogramWidth = 100

/*
Histogram writes one bar per observed bitstring, scaled so a bar that spans
the full width means every shot landed on it. Colour is only emitted when w
is a terminal that supports it.
*/
func (r *Result) Histogram(w io.Writer) error {
	renderer := lipgloss.NewRenderer(w)
	bar := renderer.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	label := renderer.NewStyle().Bold(true)

	total := r.Counts.Total()
	if total == 0 {
		total = r.Shots
	}

	var sb strings.Builder
	sb.WriteString("Measurements:\n")

	for _, bits := range r.Counts.Keys() {
		n := r.Counts[bits]
		ratio := 0.0
		if total > 0 {
			ratio = float64(n) / float64(total)
		}
		filled := int(ratio*histogramWidth + 0.5)

		fmt.Fprintf(&sb, "%s |%s%s| %5.1f%% (%d/%d)\n",
			label.Render(bits),
			bar.Render(strings.Repeat("#", filled)),
			strings.Repeat(".", histogramWidth-filled),
			ratio*100, n, total,
		)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
