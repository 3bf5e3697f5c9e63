package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ember/internal/source"
	"ember/internal/token"
)

// TokenOutput is one token of the tokenize JSON output.
type TokenOutput struct {
	Kind  string   `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Start uint32   `json:"start"`
	End   uint32   `json:"end"`
	Line  uint32   `json:"line"`
	Col   uint32   `json:"col"`
	Flags []string `json:"flags,omitempty"`
}

func tokenFlags(tok token.Token) []string {
	var out []string
	if tok.AtStartOfLine() {
		out = append(out, "start_of_line")
	}
	if tok.HasLeadingSpace() {
		out = append(out, "leading_space")
	}
	if tok.IsAnnotation() {
		out = append(out, "annotation")
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, mgr *source.Manager) error {
	for i, tok := range tokens {
		start := mgr.Presumed(tok.Loc)
		end := mgr.Presumed(tok.EndLoc())

		fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if flags := tokenFlags(tok); len(flags) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(flags, ", "))
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, mgr *source.Manager) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		_, off := mgr.Decompose(tok.Loc)
		pl := mgr.Presumed(tok.Loc)
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: off,
			End:   off + tok.Len,
			Line:  pl.Line,
			Col:   pl.Col,
			Flags: tokenFlags(tok),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
