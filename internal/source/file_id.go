package source

// FileID identifies a buffer inside a Manager.
// 0 is invalid, positive IDs are buffers of the current compilation,
// negative IDs are reserved for buffers loaded from elsewhere.
type FileID int32

const (
	// NoFileID is the invalid id and the empty key of hash maps.
	NoFileID FileID = 0
	// FileIDSentinel is the tombstone key of hash maps.
	FileIDSentinel FileID = -1
)

func (id FileID) IsValid() bool   { return id != NoFileID }
func (id FileID) IsInvalid() bool { return id == NoFileID }

// IsLoaded reports whether the buffer comes from outside this compilation.
func (id FileID) IsLoaded() bool { return id < 0 }

func (id FileID) Hash() uint32 { return uint32(id) }
