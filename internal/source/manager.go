package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

// FileFlags records how a buffer was obtained.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // stdin, test or generated buffer
	FileHadBOM                               // UTF-8 BOM was stripped on load
	FileNormalizedCRLF                       // \r\n was rewritten to \n on load
)

// File is one buffer registered in a Manager.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
	Base    uint32 // offset of the first byte in the file space
}

// Len returns the buffer length in bytes.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("source: content length overflow: %w", err))
	}
	return n
}

// Line returns the text of a 1-based line without its newline.
func (f *File) Line(line uint32) string {
	if line == 0 {
		return ""
	}
	lenIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("source: line index length overflow: %w", err))
	}
	var start uint32
	switch {
	case line == 1:
		start = 0
	case line-2 < lenIdx:
		start = f.LineIdx[line-2] + 1
	default:
		return ""
	}
	end := f.Len()
	if line-1 < lenIdx {
		end = f.LineIdx[line-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the file path for humans.
// mode is one of "absolute", "relative", "basename", "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := relativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// PresumedLoc is a location resolved to a file name and a 1-based line/column.
type PresumedLoc struct {
	Filename string
	FileID   FileID
	Offset   uint32
	Line     uint32
	Col      uint32
}

func (p PresumedLoc) IsValid() bool { return p.FileID.IsValid() }

func (p PresumedLoc) String() string {
	if !p.IsValid() {
		return "<invalid loc>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

type expansion struct {
	base     uint32
	length   uint32
	spelling Loc
}

// Manager owns every buffer of one compilation unit and maps Loc values back
// to files, offsets and line/column pairs.
//
// Buffers are laid out back to back in the file space starting at offset 1,
// each followed by one byte of padding so that the end-of-buffer location
// still belongs to its buffer. Macro expansions get ranges in the macro space.
type Manager struct {
	files      []File
	index      map[string]FileID
	next       uint32
	expansions []expansion
	nextMacro  uint32
	baseDir    string
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		index:     make(map[string]FileID),
		next:      1,
		nextMacro: 1,
	}
}

func (m *Manager) SetBaseDir(dir string) { m.baseDir = dir }

// BaseDir returns the directory used for relative paths, the working
// directory when unset.
func (m *Manager) BaseDir() string {
	if m.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return m.baseDir
}

// Add registers normalized bytes as a new buffer.
// A new FileID is created even if the path was added before.
func (m *Manager) Add(path string, content []byte, flags FileFlags) FileID {
	size, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("source: buffer too large: %w", err))
	}
	count, err := safecast.Conv[int32](len(m.files) + 1)
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	base := m.next
	end := uint64(base) + uint64(size) + 1
	if end >= uint64(MacroIDBit) {
		panic("source: ran out of source locations")
	}
	m.next = uint32(end)

	id := FileID(count)
	normalized := normalizePath(path)
	m.files = append(m.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
		Base:    base,
	})
	m.index[normalized] = id
	return id
}

// Load reads a file from disk, strips the BOM, normalizes CRLF and adds it.
func (m *Manager) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return NoFileID, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	var flags FileFlags
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return m.Add(path, content, flags), nil
}

// AddVirtual adds a buffer that does not come from disk.
func (m *Manager) AddVirtual(name string, content []byte) FileID {
	return m.Add(name, content, FileVirtual)
}

// File returns the buffer for id or nil.
func (m *Manager) File(id FileID) *File {
	if id <= 0 || int(id) > len(m.files) {
		return nil
	}
	return &m.files[id-1]
}

// Lookup returns the latest FileID registered for path.
func (m *Manager) Lookup(path string) (FileID, bool) {
	id, ok := m.index[normalizePath(path)]
	return id, ok
}

// FileCount returns the number of buffers.
func (m *Manager) FileCount() int { return len(m.files) }

// Files returns all buffers in registration order.
func (m *Manager) Files() []File { return m.files }

func (m *Manager) mustFile(id FileID) *File {
	f := m.File(id)
	if f == nil {
		panic(fmt.Sprintf("source: unknown file id %d", id))
	}
	return f
}

// LocForStartOfFile returns the location of the first byte of id.
func (m *Manager) LocForStartOfFile(id FileID) Loc {
	return FileLoc(m.mustFile(id).Base)
}

// LocForEndOfFile returns the location one past the last byte of id.
func (m *Manager) LocForEndOfFile(id FileID) Loc {
	f := m.mustFile(id)
	return FileLoc(f.Base + f.Len())
}

// LocForOffset returns the location of byte off inside id.
func (m *Manager) LocForOffset(id FileID, off uint32) Loc {
	f := m.mustFile(id)
	if off > f.Len() {
		panic(fmt.Sprintf("source: offset %d past end of %s", off, f.Path))
	}
	return FileLoc(f.Base + off)
}

// fileIndexOf finds the buffer containing a file-space offset.
func (m *Manager) fileIndexOf(off uint32) int {
	i := sort.Search(len(m.files), func(i int) bool { return m.files[i].Base > off }) - 1
	if i < 0 {
		return -1
	}
	f := &m.files[i]
	if off > f.Base+f.Len() {
		return -1
	}
	return i
}

// Decompose splits loc into its buffer and the offset inside it.
// Macro locations are resolved to their spelling first.
func (m *Manager) Decompose(loc Loc) (FileID, uint32) {
	loc = m.SpellingLoc(loc)
	if loc.IsInvalid() {
		return NoFileID, 0
	}
	i := m.fileIndexOf(loc.Offset())
	if i < 0 {
		return NoFileID, 0
	}
	f := &m.files[i]
	return f.ID, loc.Offset() - f.Base
}

// FileIDOf returns the buffer containing loc.
func (m *Manager) FileIDOf(loc Loc) FileID {
	id, _ := m.Decompose(loc)
	return id
}

// Presumed resolves loc to a file name and line/column.
func (m *Manager) Presumed(loc Loc) PresumedLoc {
	id, off := m.Decompose(loc)
	if id.IsInvalid() {
		return PresumedLoc{}
	}
	f := m.File(id)
	lc := toLineCol(f.LineIdx, off)
	return PresumedLoc{Filename: f.Path, FileID: id, Offset: off, Line: lc.Line, Col: lc.Col}
}

// IsBeforeInTranslationUnit orders two locations across buffers.
// Buffers are ordered by registration, offsets within one buffer.
func (m *Manager) IsBeforeInTranslationUnit(a, b Loc) bool {
	fa, oa := m.Decompose(a)
	fb, ob := m.Decompose(b)
	if fa != fb {
		return fa < fb
	}
	return oa < ob
}

// CharacterData returns the buffer bytes starting at loc.
func (m *Manager) CharacterData(loc Loc) []byte {
	id, off := m.Decompose(loc)
	if id.IsInvalid() {
		return nil
	}
	return m.File(id).Content[off:]
}

// LineText returns the full line that contains loc.
func (m *Manager) LineText(loc Loc) string {
	p := m.Presumed(loc)
	if !p.IsValid() {
		return ""
	}
	return m.File(p.FileID).Line(p.Line)
}

// CreateExpansionLoc reserves length bytes in the macro space whose characters
// are spelled at spelling. The returned location is the start of the range.
func (m *Manager) CreateExpansionLoc(spelling Loc, length uint32) Loc {
	if spelling.IsInvalid() {
		panic("source: expansion of invalid location")
	}
	spelling = m.SpellingLoc(spelling)
	base := m.nextMacro
	end := uint64(base) + uint64(length) + 1
	if end >= uint64(MacroIDBit) {
		panic("source: ran out of macro locations")
	}
	m.nextMacro = uint32(end)
	m.expansions = append(m.expansions, expansion{base: base, length: length, spelling: spelling})
	return MacroLoc(base)
}

// SpellingLoc maps a macro location back to where its characters are written.
// File locations are returned unchanged.
func (m *Manager) SpellingLoc(loc Loc) Loc {
	if loc.IsInvalid() || loc.IsFileID() {
		return loc
	}
	off := loc.Offset()
	i := sort.Search(len(m.expansions), func(i int) bool { return m.expansions[i].base > off }) - 1
	if i < 0 {
		return NoLoc
	}
	e := m.expansions[i]
	if off > e.base+e.length {
		return NoLoc
	}
	return e.spelling.WithOffset(int32(off - e.base))
}
