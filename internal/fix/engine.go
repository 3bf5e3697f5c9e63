package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"ember/internal/diag"
	"ember/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// Write stores the result back to disk. Virtual buffers are skipped.
	Write bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Code        string
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
	// Buffers holds the new content of every changed buffer.
	Buffers map[source.FileID][]byte
}

// candidate is every fix-it of one diagnostic; they apply together.
type candidate struct {
	id    string
	diag  diag.Diagnostic
	edits []Edit
	order int
}

// Candidates lists the fix ids that Apply would consider, in apply order.
func Candidates(mgr *source.Manager, diagnostics []diag.Diagnostic) []string {
	cands, _ := gatherCandidates(mgr, diagnostics)
	sortCandidates(mgr, cands)
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.id
	}
	return out
}

// Apply collects fix-its from diagnostics, selects a subset according to
// opts, and applies them.
func Apply(mgr *source.Manager, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{Buffers: make(map[source.FileID][]byte)}
	if mgr == nil {
		return result, fmt.Errorf("fix: source manager is nil")
	}

	candidates, skips := gatherCandidates(mgr, diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(mgr, candidates)

	selected, skips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skips, err := applyCandidates(mgr, selected, opts, result)
	result.Applied = applied
	result.Skipped = append(result.Skipped, skips...)
	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

func gatherCandidates(mgr *source.Manager, diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var cands []candidate
	var skips []SkippedFix
	for i, d := range diagnostics {
		if len(d.FixIts) == 0 {
			continue
		}
		file, off := mgr.Decompose(d.Loc)
		id := fmt.Sprintf("%s-%d-%d", d.Code(), file, off)
		edits := make([]Edit, 0, len(d.FixIts))
		var reason string
		for _, f := range d.FixIts {
			e, err := Resolve(mgr, f)
			if err != nil {
				reason = err.Error()
				break
			}
			edits = append(edits, e)
		}
		if reason != "" {
			skips = append(skips, SkippedFix{ID: id, Reason: reason})
			continue
		}
		cands = append(cands, candidate{id: id, diag: d, edits: edits, order: i})
	}
	return cands, skips
}

func sortCandidates(mgr *source.Manager, candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		li, lj := candidates[i].diag.Loc, candidates[j].diag.Loc
		if li != lj {
			return mgr.IsBeforeInTranslationUnit(li, lj)
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeOnce:
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

func applyCandidates(mgr *source.Manager, selected []candidate, opts ApplyOptions, result *ApplyResult) ([]AppliedFix, []SkippedFix, error) {
	accepted := make(map[source.FileID][]Edit)
	var applied []AppliedFix
	var skipped []SkippedFix

	for _, cand := range selected {
		reason := ""
		for _, e := range cand.edits {
			f := mgr.File(e.File)
			if opts.Write && f.Flags&source.FileVirtual != 0 {
				reason = "target file is virtual"
				break
			}
			if conflictsWithExisting(accepted[e.File], e) || conflictsWithExisting(cand.edits, e) {
				reason = fmt.Sprintf("conflicts with another edit in %s", f.FormatPath("auto", mgr.BaseDir()))
				break
			}
		}
		if reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.id, Reason: reason})
			continue
		}
		for _, e := range cand.edits {
			accepted[e.File] = append(accepted[e.File], e)
		}
		applied = append(applied, AppliedFix{
			ID:          cand.id,
			Code:        cand.diag.Code(),
			Message:     cand.diag.Message,
			PrimaryPath: formatFilePath(mgr, mgr.FileIDOf(cand.diag.Loc)),
			EditCount:   len(cand.edits),
		})
	}

	files := make([]source.FileID, 0, len(accepted))
	for id := range accepted {
		files = append(files, id)
	}
	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	for _, id := range files {
		f := mgr.File(id)
		buf := ApplyEdits(f.Content, accepted[id])
		result.Buffers[id] = buf
		if opts.Write {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(f.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(f.Path, buf, mode); err != nil {
				return applied, skipped, fmt.Errorf("write %s: %w", f.Path, err)
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      f.FormatPath("relative", mgr.BaseDir()),
			EditCount: len(accepted[id]),
		})
	}
	return applied, skipped, nil
}

// conflictsWithExisting reports whether e overlaps any other edit of existing.
func conflictsWithExisting(existing []Edit, e Edit) bool {
	for _, prev := range existing {
		if prev != e && spansConflict(prev, e) {
			return true
		}
	}
	return false
}

// sortedEdits orders edits by offset. At one offset, Before insertions
// come first, then the remaining insertions in their original order, then
// the removal starting there.
func sortedEdits(edits []Edit) []Edit {
	out := append([]Edit(nil), edits...)
	rank := func(e Edit) int {
		switch {
		case e.IsInsertion() && e.Before:
			return 0
		case e.IsInsertion():
			return 1
		}
		return 2
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return rank(out[i]) < rank(out[j])
	})
	return out
}

func formatFilePath(mgr *source.Manager, id source.FileID) string {
	f := mgr.File(id)
	if f == nil {
		return ""
	}
	return f.FormatPath("auto", mgr.BaseDir())
}
