package qsim

import (
	"fmt"
	"strconv"
	"strings"
)

/*
cell is what one instruction draws on one row of one diagram column.
Qubit rows use all three lines; the classical row uses mid for the wire and
bot for the classical bit label.
*/
type cell struct {
	top, mid, bot string
}

type column struct {
	cells map[int]cell
}

/*
Draw renders the circuit as a text diagram. Each qubit takes three text lines
(box top, wire, box bottom) and neighbouring qubits share the line between
them; the classical register is drawn as a single bundled wire with the
target bit index printed under every measurement. Instructions are packed
greedily into columns, so operations on disjoint rows share a column.
*/
func (c *Circuit) Draw() string {
	if c.numQubits < 1 {
		return ""
	}

	cols := c.layout()
	classical := c.numQubits

	rows := make([][3]strings.Builder, c.numQubits+1)
	for _, col := range cols {
		width := 1
		for _, cl := range col.cells {
			width = max(width, runeLen(cl.top), runeLen(cl.mid), runeLen(cl.bot))
		}
		if width%2 == 0 {
			width++
		}

		for r := 0; r < c.numQubits; r++ {
			cl := col.cells[r]
			rows[r][0].WriteString(" " + center(cl.top, width, ' '))
			rows[r][1].WriteString("─" + center(cl.mid, width, '─'))
			rows[r][2].WriteString(" " + center(cl.bot, width, ' '))
		}

		if c.numClbits > 0 {
			cl := col.cells[classical]
			rows[classical][1].WriteString("═" + center(cl.mid, width, '═'))
			rows[classical][2].WriteString(" " + center(cl.bot, width, ' '))
		}
	}

	labels := c.wireLabels()
	pad := 0
	for _, l := range labels {
		pad = max(pad, runeLen(l))
	}
	blank := strings.Repeat(" ", pad)

	lines := make([]string, 0, 2*c.numQubits+3)
	prev := ""
	for r := 0; r < c.numQubits; r++ {
		top := blank + rows[r][0].String() + " "
		if r == 0 {
			lines = append(lines, top)
		} else {
			lines = append(lines, mergeLines(prev, top))
		}
		lines = append(lines, leftPad(labels[r], pad)+rows[r][1].String()+"─")
		prev = blank + rows[r][2].String() + " "
	}
	lines = append(lines, prev)

	if c.numClbits > 0 {
		lines = append(lines,
			leftPad(labels[classical], pad)+rows[classical][1].String()+"═",
			blank+rows[classical][2].String()+" ",
		)
	}

	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// layout assigns every instruction to the first column where all of the
// rows it occupies are free.
func (c *Circuit) layout() []column {
	next := make([]int, c.numQubits+1)
	var cols []column

	for _, in := range c.instructions {
		cells := c.cellsFor(in)

		at := 0
		for r := range cells {
			at = max(at, next[r])
		}
		for r := range cells {
			next[r] = at + 1
		}

		for len(cols) <= at {
			cols = append(cols, column{cells: make(map[int]cell)})
		}
		for r, cl := range cells {
			cols[at].cells[r] = cl
		}
	}

	return cols
}

func (c *Circuit) cellsFor(in Instruction) map[int]cell {
	cells := make(map[int]cell)

	switch in.Kind {
	case OpGate:
		for _, q := range in.Qubits {
			cells[q] = box(in.Gate.Label(), false, false)
		}

	case OpControlled:
		up := in.Control < in.Target
		cells[in.Target] = box(in.Gate.Label(), up, !up)

		ctl := cell{mid: "■"}
		if up {
			ctl.bot = "│"
		} else {
			ctl.top = "│"
		}
		cells[in.Control] = ctl

		lo, hi := in.Span()
		for r := lo + 1; r < hi; r++ {
			cells[r] = cell{top: "│", mid: "┼", bot: "│"}
		}

	case OpBarrier:
		for _, q := range in.Qubits {
			cells[q] = cell{top: "░", mid: "░", bot: "░"}
		}

	case OpMeasure:
		q := in.Qubits[0]
		cells[q] = cell{top: "┌─┐", mid: "┤M├", bot: "└╥┘"}
		for r := q + 1; r < c.numQubits; r++ {
			cells[r] = cell{top: "║", mid: "╫", bot: "║"}
		}
		cells[c.numQubits] = cell{mid: "╩", bot: strconv.Itoa(in.Clbit)}
	}

	return cells
}

// box draws a gate label in a frame, optionally with a connector from a
// control above (joinTop) or below (joinBottom).
func box(label string, joinTop, joinBottom bool) cell {
	inner := " " + label + " "
	if runeLen(inner)%2 == 0 {
		inner += " "
	}

	k := runeLen(inner)
	top := []rune("┌" + strings.Repeat("─", k) + "┐")
	bot := []rune("└" + strings.Repeat("─", k) + "┘")
	mid := (k + 1) / 2

	if joinTop {
		top[mid] = '┴'
	}
	if joinBottom {
		bot[mid] = '┬'
	}

	return cell{top: string(top), mid: "┤" + inner + "├", bot: string(bot)}
}

func (c *Circuit) wireLabels() []string {
	labels := make([]string, c.numQubits+1)
	for q := 0; q < c.numQubits; q++ {
		if c.initial[q] != Zero {
			labels[q] = fmt.Sprintf("q_%d %s: ", q, c.initial[q])
		} else {
			labels[q] = fmt.Sprintf("q_%d: ", q)
		}
	}
	labels[c.numQubits] = fmt.Sprintf("c: %d/", c.numClbits)
	return labels
}

// mergeLines overlays the bottom line of one qubit with the top line of the
// next. Vertical wires give way to whatever the other line draws there.
func mergeLines(upper, lower string) string {
	a, b := []rune(upper), []rune(lower)
	n := max(len(a), len(b))
	out := make([]rune, n)

	for i := 0; i < n; i++ {
		ra, rb := ' ', ' '
		if i < len(a) {
			ra = a[i]
		}
		if i < len(b) {
			rb = b[i]
		}
		out[i] = mergeRune(ra, rb)
	}

	return string(out)
}

func mergeRune(a, b rune) rune {
	switch {
	case a == ' ':
		return b
	case b == ' ':
		return a
	case a == '└' && b == '┌':
		return '├'
	case a == '┘' && b == '┐':
		return '┤'
	case b == '│' || b == '║':
		return a
	}
	return b
}

func center(s string, width int, fill rune) string {
	n := runeLen(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), right)
}

func leftPad(s string, width int) string {
	if n := runeLen(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func runeLen(s string) int {
	return len([]rune(s))
}
