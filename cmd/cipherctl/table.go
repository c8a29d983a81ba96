package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherdeck/internal/alphabet"
	"github.com/RowanDark/cipherdeck/internal/cipher"
)

// tableWriter prints left-aligned columns. Widths are measured in terminal
// cells so emoji and combining marks line up.
type tableWriter struct {
	w      io.Writer
	widths []int
}

func newTableWriter(w io.Writer, widths ...int) *tableWriter {
	return &tableWriter{w: w, widths: widths}
}

func (t *tableWriter) row(cells ...string) {
	var b strings.Builder
	for i, cell := range cells {
		if i == len(cells)-1 {
			b.WriteString(cell)
			break
		}
		width := 0
		if i < len(t.widths) {
			width = t.widths[i]
		}
		b.WriteString(runewidth.FillRight(cell, width))
		b.WriteString("  ")
	}
	fmt.Fprintln(t.w, strings.TrimRight(b.String(), " "))
}

func newSchemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List the available schemes and their traits",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := newTableWriter(a.stdout, 10, 16, 22, 20)
			w.row("SCHEME", "NAME", "TRAITS", "PARAMETERS", "DESCRIPTION")
			for _, c := range cipher.ListCodecs() {
				tr := c.Traits()
				params := make([]string, len(tr.Parameters))
				for i, p := range tr.Parameters {
					params[i] = string(p)
				}
				w.row(string(c.Scheme()), c.Name(), traitList(tr), dash(strings.Join(params, ",")), c.Description())
			}
			return nil
		},
	}
}

func traitList(t cipher.Traits) string {
	var out []string
	if t.Involution {
		out = append(out, "involution")
	}
	if t.Lossy {
		out = append(out, "lossy")
	}
	if t.Nondeterministic {
		out = append(out, "random")
	}
	return dash(strings.Join(out, ","))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var lookupTables = map[cipher.Scheme]*alphabet.Table{
	cipher.SchemeA1Z26:     alphabet.A1Z26,
	cipher.SchemeEmoji:     alphabet.Emoji,
	cipher.SchemeMorse:     alphabet.Morse,
	cipher.SchemeLeet:      alphabet.Leet,
	cipher.SchemeInvisible: alphabet.ZeroWidth,
}

func newTableCmd(a *app) *cobra.Command {
	var columns int
	cmd := &cobra.Command{
		Use:   "table <scheme>",
		Short: "Print the lookup table of a substitution scheme",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := parseSchemeArg(args[0])
			if err != nil {
				return err
			}
			table, ok := lookupTables[scheme]
			if !ok {
				return usagef("scheme %s has no lookup table", scheme)
			}
			if columns < 1 {
				columns = 1
			}

			keys := table.Keys()
			cells := make([]string, 0, len(keys))
			width := 0
			for _, k := range keys {
				v, _ := table.Encode(k)
				if scheme == cipher.SchemeInvisible {
					v = fmt.Sprintf("U+%04X", []rune(v)[0])
				}
				if k == " " {
					k = "␣"
				}
				cell := k + " " + v
				cells = append(cells, cell)
				width = max(width, runewidth.StringWidth(cell))
			}

			widths := make([]int, columns)
			for i := range widths {
				widths[i] = width
			}
			w := newTableWriter(a.stdout, widths...)
			for start := 0; start < len(cells); start += columns {
				end := min(start+columns, len(cells))
				w.row(cells[start:end]...)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&columns, "columns", "c", 4, "Entries per row")
	return cmd
}
