package source

import "fmt"

// Loc encodes a position in the Manager's virtual view of all input buffers.
//
// The view is every loaded buffer (plus every macro expansion range) laid out
// back to back. One bit of the encoding tells file locations from macro
// locations; the rest is the offset into the corresponding space.
//
// Loc is 32 bits wide and must stay that way: it is copied everywhere.
// The zero value is the invalid location.
type Loc uint32

// MacroIDBit selects the macro expansion address space.
const MacroIDBit Loc = 1 << 31

// NoLoc is the invalid location.
const NoLoc Loc = 0

// FileLoc builds a file location from an offset in the file space.
func FileLoc(offset uint32) Loc {
	if Loc(offset)&MacroIDBit != 0 {
		panic("source: ran out of source locations")
	}
	return Loc(offset)
}

// MacroLoc builds a macro location from an offset in the macro space.
func MacroLoc(offset uint32) Loc {
	if Loc(offset)&MacroIDBit != 0 {
		panic("source: ran out of source locations")
	}
	return MacroIDBit | Loc(offset)
}

// LocFromRaw turns a raw encoding produced by Raw back into a Loc.
func LocFromRaw(raw uint32) Loc { return Loc(raw) }

// Raw returns the opaque encoding; only LocFromRaw should interpret it.
func (l Loc) Raw() uint32 { return uint32(l) }

func (l Loc) IsValid() bool   { return l != NoLoc }
func (l Loc) IsInvalid() bool { return l == NoLoc }
func (l Loc) IsFileID() bool  { return l&MacroIDBit == 0 }
func (l Loc) IsMacroID() bool { return l&MacroIDBit != 0 }

// Offset returns the offset inside the location's own address space.
func (l Loc) Offset() uint32 { return uint32(l &^ MacroIDBit) }

// WithOffset returns a location delta bytes away in the same address space.
// Crossing into the macro bit (or below zero) is a bug in the caller.
func (l Loc) WithOffset(delta int32) Loc {
	off := int64(l.Offset()) + int64(delta)
	if off < 0 || off >= int64(MacroIDBit) {
		panic(fmt.Sprintf("source: offset overflow: %d%+d", l.Offset(), delta))
	}
	return (l & MacroIDBit) | Loc(off)
}

// Less compares raw encodings. It only makes sense for locations in the same
// buffer; use Manager.IsBeforeInTranslationUnit otherwise.
func (l Loc) Less(other Loc) bool { return l < other }

// Hash returns the hash value used for associative containers.
func (l Loc) Hash() uint32 { return uint32(l) }

func (l Loc) String() string {
	switch {
	case l.IsInvalid():
		return "<invalid loc>"
	case l.IsMacroID():
		return fmt.Sprintf("macro:%d", l.Offset())
	default:
		return fmt.Sprintf("file:%d", l.Offset())
	}
}

// IsPairOfFileLocations reports whether both ends are valid file locations.
func IsPairOfFileLocations(start, end Loc) bool {
	return start.IsValid() && start.IsFileID() && end.IsValid() && end.IsFileID()
}
