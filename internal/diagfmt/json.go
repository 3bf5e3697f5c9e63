package diagfmt

import (
	"encoding/json"
	"io"

	"ember/internal/diag"
	"ember/internal/fix"
	"ember/internal/lexer"
	"ember/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// FixItJSON представляет одно редактирование для JSON
type FixItJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
	OldText  string       `json:"old_text,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Level    string         `json:"level"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Location *LocationJSON  `json:"location,omitempty"`
	Ranges   []LocationJSON `json:"ranges,omitempty"`
	Notes    []NoteJSON     `json:"notes,omitempty"`
	FixIts   []FixItJSON    `json:"fixits,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

type jsonBuilder struct {
	mgr  *source.Manager
	opts JSONOpts
}

func (b jsonBuilder) location(file source.FileID, start, end uint32) LocationJSON {
	f := b.mgr.File(file)
	loc := LocationJSON{
		File:      b.opts.PathMode.format(f, b.mgr.BaseDir()),
		StartByte: start,
		EndByte:   end,
	}
	if b.opts.IncludePositions {
		sp := b.mgr.Presumed(b.mgr.LocForOffset(file, start))
		ep := b.mgr.Presumed(b.mgr.LocForOffset(file, end))
		loc.StartLine, loc.StartCol = sp.Line, sp.Col
		loc.EndLine, loc.EndCol = ep.Line, ep.Col
	}
	return loc
}

// point returns the location of the token at loc, nil for invalid locations.
func (b jsonBuilder) point(loc source.Loc) *LocationJSON {
	if loc.IsMacroID() {
		loc = b.mgr.SpellingLoc(loc)
	}
	file, off := b.mgr.Decompose(loc)
	if file.IsInvalid() {
		return nil
	}
	end := off + lexer.MeasureTokenLength(b.mgr, loc)
	l := b.location(file, off, end)
	return &l
}

func (b jsonBuilder) charRange(r source.CharRange) (LocationJSON, bool) {
	r = lexer.CharRange(b.mgr, r)
	fb, s := b.mgr.Decompose(r.Begin)
	fe, e := b.mgr.Decompose(r.End)
	if fb.IsInvalid() || fb != fe || e < s {
		return LocationJSON{}, false
	}
	return b.location(fb, s, e), true
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, mgr *source.Manager, opts JSONOpts) DiagnosticsOutput {
	b := jsonBuilder{mgr: mgr, opts: opts}
	groups := bag.Groups()
	if opts.Max > 0 && opts.Max < len(groups) {
		groups = groups[:opts.Max]
	}

	diagnostics := make([]DiagnosticJSON, 0, len(groups))
	for _, g := range groups {
		dj := DiagnosticJSON{
			Level:    g.Level.String(),
			Code:     g.Code(),
			Message:  g.Message,
			Location: b.point(g.Loc),
		}
		for _, r := range g.Ranges {
			if l, ok := b.charRange(r); ok {
				dj.Ranges = append(dj.Ranges, l)
			}
		}
		if opts.IncludeNotes {
			for _, n := range g.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Message, Location: b.point(n.Loc)})
			}
		}
		if opts.IncludeFixes {
			for _, f := range g.FixIts {
				e, err := fix.Resolve(mgr, f)
				if err != nil {
					continue
				}
				dj.FixIts = append(dj.FixIts, FixItJSON{
					Location: b.location(e.File, e.Start, e.End),
					NewText:  e.NewText,
					OldText:  e.OldText,
				})
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return DiagnosticsOutput{Diagnostics: diagnostics, Count: len(diagnostics)}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, mgr *source.Manager, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, mgr, opts))
}
