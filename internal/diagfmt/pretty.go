package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ember/internal/diag"
	"ember/internal/fix"
	"ember/internal/lexer"
	"ember/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Groups() (ожидается bag.Sort() заранее).
// Для каждой диагностики печатает:
// <path>:<line>:<col>: <level>[<CODE>]: <Message>
// затем контекст строки с подчёркиванием ^~~~, затем заметки и исправления.
func Pretty(w io.Writer, bag *diag.Bag, mgr *source.Manager, opts PrettyOpts) {
	p := newPrinter(w, mgr, opts)
	for _, g := range bag.Groups() {
		p.diagnostic(&g.Diagnostic)
		if !opts.ShowNotes {
			continue
		}
		for i := range g.Notes {
			p.diagnostic(&g.Notes[i])
		}
	}
}

// Summary prints the "N errors and M warnings generated." trailer.
func Summary(w io.Writer, numErrors, numWarnings int) {
	var parts []string
	if numErrors > 0 {
		parts = append(parts, plural(numErrors, "error"))
	}
	if numWarnings > 0 {
		parts = append(parts, plural(numWarnings, "warning"))
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintf(w, "%s generated.\n", strings.Join(parts, " and "))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

type printer struct {
	w    io.Writer
	mgr  *source.Manager
	opts PrettyOpts

	levels map[diag.Level]*color.Color
	bold   *color.Color
	caret  *color.Color
	hint   *color.Color
	gutter *color.Color
}

func newPrinter(w io.Writer, mgr *source.Manager, opts PrettyOpts) *printer {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	if opts.TabWidth == 0 {
		opts.TabWidth = 4
	}
	return &printer{
		w:    w,
		mgr:  mgr,
		opts: opts,
		levels: map[diag.Level]*color.Color{
			diag.LevelNote:    mk(color.FgCyan, color.Bold),
			diag.LevelRemark:  mk(color.FgBlue, color.Bold),
			diag.LevelWarning: mk(color.FgYellow, color.Bold),
			diag.LevelError:   mk(color.FgRed, color.Bold),
			diag.LevelFatal:   mk(color.FgRed, color.Bold),
		},
		bold:   mk(color.Bold),
		caret:  mk(color.FgGreen, color.Bold),
		hint:   mk(color.FgGreen),
		gutter: mk(color.FgBlue),
	}
}

func (p *printer) levelColor(l diag.Level) *color.Color {
	if c, ok := p.levels[l]; ok {
		return c
	}
	return p.bold
}

func (p *printer) diagnostic(d *diag.Diagnostic) {
	loc := d.Loc
	if loc.IsMacroID() {
		loc = p.mgr.SpellingLoc(loc)
	}
	pl := p.mgr.Presumed(loc)

	header := d.Level.String()
	if !d.IsNote() {
		header += "[" + d.Code() + "]"
	}
	if pl.IsValid() {
		where := fmt.Sprintf("%s:%d:%d:", p.opts.PathMode.format(p.mgr.File(pl.FileID), p.mgr.BaseDir()), pl.Line, pl.Col)
		fmt.Fprintf(p.w, "%s %s %s\n", p.bold.Sprint(where), p.levelColor(d.Level).Sprint(header+":"), p.bold.Sprint(d.Message))
	} else {
		fmt.Fprintf(p.w, "%s %s\n", p.levelColor(d.Level).Sprint(header+":"), p.bold.Sprint(d.Message))
	}
	if !pl.IsValid() {
		return
	}

	var edits []fix.Edit
	if p.opts.ShowFixes || p.opts.ShowPreview {
		for _, f := range d.FixIts {
			if e, err := fix.Resolve(p.mgr, f); err == nil {
				edits = append(edits, e)
			}
		}
	}
	if p.opts.Context >= 0 {
		p.excerpt(pl, d.Ranges, edits)
	}
	if p.opts.ShowFixes {
		for i, e := range edits {
			p.fixLine(i+1, e)
		}
	}
	if p.opts.ShowPreview && len(edits) > 0 {
		if pv, err := buildFixPreview(p.mgr, edits); err == nil {
			fmt.Fprintln(p.w, "  preview:")
			for _, l := range pv.before {
				fmt.Fprintf(p.w, "    - %s\n", l)
			}
			for _, l := range pv.after {
				fmt.Fprintf(p.w, "    %s\n", p.hint.Sprint("+ "+l))
			}
		}
	}
}

// excerpt prints the lines around pl with the caret line marked.
func (p *printer) excerpt(pl source.PresumedLoc, ranges []source.CharRange, edits []fix.Edit) {
	f := p.mgr.File(pl.FileID)
	lineCount := uint32(len(f.LineIdx)) + 1
	ctx := uint32(p.opts.Context)
	first := uint32(1)
	if pl.Line > ctx {
		first = pl.Line - ctx
	}
	last := min(pl.Line+ctx, lineCount)
	width := len(strconv.FormatUint(uint64(last), 10))

	for line := first; line <= last; line++ {
		text := f.Line(line)
		if line == lineCount && text == "" && line != pl.Line {
			// хвост после последнего '\n'
			continue
		}
		fmt.Fprintf(p.w, "%s %s\n", p.gutter.Sprintf("%*d |", width, line), p.expandTabs(text))
		if line != pl.Line {
			continue
		}
		lineStart := lineStartOffset(f, line)
		marks := p.markers(text, lineStart, pl.Offset, p.lineRanges(pl.FileID, lineStart, uint32(len(text)), ranges))
		fmt.Fprintf(p.w, "%s %s\n", p.gutter.Sprintf("%*s |", width, ""), p.caret.Sprint(marks))
		if hints := p.insertionHints(text, lineStart, edits, pl.FileID); hints != "" {
			fmt.Fprintf(p.w, "%s %s\n", p.gutter.Sprintf("%*s |", width, ""), p.hint.Sprint(hints))
		}
	}
}

type span struct{ start, end uint32 }

// lineRanges clips ranges to the line starting at lineStart.
func (p *printer) lineRanges(file source.FileID, lineStart, lineLen uint32, ranges []source.CharRange) []span {
	var out []span
	for _, r := range ranges {
		r = lexer.CharRange(p.mgr, r)
		fb, s := p.mgr.Decompose(r.Begin)
		fe, e := p.mgr.Decompose(r.End)
		if fb != file || fe != file || e < lineStart || s > lineStart+lineLen {
			continue
		}
		s = max(s, lineStart) - lineStart
		e = min(e, lineStart+lineLen) - lineStart
		out = append(out, span{s, e})
	}
	return out
}

// column returns the display column of byte offset off in text.
func (p *printer) column(text string, off uint32) int {
	if int(off) > len(text) {
		off = uint32(len(text))
	}
	return runewidth.StringWidth(p.expandTabs(text[:off]))
}

func (p *printer) expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := int(p.opts.TabWidth) - col%int(p.opts.TabWidth)
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// markers builds the "  ~~~^~~" line under text.
func (p *printer) markers(text string, lineStart, caretOff uint32, ranges []span) string {
	buf := []rune(strings.Repeat(" ", p.column(text, uint32(len(text)))+1))
	for _, r := range ranges {
		for c := p.column(text, r.start); c < p.column(text, r.end) && c < len(buf); c++ {
			buf[c] = '~'
		}
	}
	if caretOff >= lineStart {
		if c := p.column(text, caretOff-lineStart); c < len(buf) {
			buf[c] = '^'
		}
	}
	return strings.TrimRight(string(buf), " ")
}

// insertionHints places the text of insertions under the caret line.
func (p *printer) insertionHints(text string, lineStart uint32, edits []fix.Edit, file source.FileID) string {
	var sb strings.Builder
	width := 0
	for _, e := range sortedByStart(edits) {
		if e.File != file || !e.IsInsertion() || e.Start < lineStart || e.Start > lineStart+uint32(len(text)) {
			continue
		}
		c := p.column(text, e.Start-lineStart)
		if c < width {
			continue
		}
		sb.WriteString(strings.Repeat(" ", c-width))
		sb.WriteString(e.NewText)
		width = c + runewidth.StringWidth(e.NewText)
	}
	return sb.String()
}

func (p *printer) fixLine(n int, e fix.Edit) {
	pl := p.mgr.Presumed(p.mgr.LocForOffset(e.File, e.Start))
	var what string
	switch {
	case e.IsInsertion():
		what = fmt.Sprintf("insert %q", e.NewText)
	case e.NewText == "":
		what = fmt.Sprintf("remove %q", e.OldText)
	default:
		what = fmt.Sprintf("replace %q with %q", e.OldText, e.NewText)
	}
	fmt.Fprintf(p.w, "  %s %s at %d:%d\n", p.hint.Sprintf("fix #%d:", n), what, pl.Line, pl.Col)
}

func sortedByStart(edits []fix.Edit) []fix.Edit {
	out := append([]fix.Edit(nil), edits...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
