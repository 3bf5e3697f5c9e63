package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"ember/internal/fix"
	"ember/internal/source"
)

type fixPreview struct {
	before []string
	after  []string
}

// buildFixPreview renders the lines touched by edits before and after
// applying them. All edits must target one buffer.
func buildFixPreview(mgr *source.Manager, edits []fix.Edit) (fixPreview, error) {
	if len(edits) == 0 {
		return fixPreview{}, fmt.Errorf("no edits")
	}
	file := mgr.File(edits[0].File)
	if file == nil {
		return fixPreview{}, fmt.Errorf("file %d not found", edits[0].File)
	}
	lo, hi := edits[0].Start, edits[0].End
	for _, e := range edits[1:] {
		if e.File != edits[0].File {
			return fixPreview{}, fmt.Errorf("edits span several files")
		}
		lo = min(lo, e.Start)
		hi = max(hi, e.End)
	}

	startLine := mgr.Presumed(mgr.LocForOffset(file.ID, lo)).Line
	endLine := max(mgr.Presumed(mgr.LocForOffset(file.ID, hi)).Line, startLine)
	blockStart := lineStartOffset(file, startLine)
	blockEnd := max(lineEndOffsetInclusive(file, endLine), blockStart)

	original := file.Content[blockStart:blockEnd]
	shifted := make([]fix.Edit, len(edits))
	for i, e := range edits {
		e.Start -= blockStart
		e.End -= blockStart
		shifted[i] = e
	}
	return fixPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(fix.ApplyEdits(original, shifted)),
	}, nil
}

// splitPreviewLines drops the final newline so that it does not show up as
// an extra blank line.
func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

func lineEndOffsetInclusive(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

func contentLen(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}
