package diag

// Level is the severity a diagnostic is reported with.
type Level uint8

const (
	// LevelIgnored drops the diagnostic entirely.
	LevelIgnored Level = iota
	LevelNote
	LevelRemark
	LevelWarning
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelIgnored:
		return "ignored"
	case LevelNote:
		return "note"
	case LevelRemark:
		return "remark"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal error"
	default:
		return "unknown"
	}
}

// IsErrorLike reports whether l counts towards the error total.
func (l Level) IsErrorLike() bool { return l >= LevelError }
