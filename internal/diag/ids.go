package diag

import "fmt"

// ID identifies an entry of the diagnostic table. It is an opaque key: the
// table decides the format string, the default level and whether the
// diagnostic may be delayed while a declaration is being parsed.
type ID uint16

const (
	UnknownID ID = 0

	// Лексические
	LexUnknownChar         ID = 1001
	LexUnterminatedString  ID = 1002
	LexUnterminatedComment ID = 1003
	LexBadNumber           ID = 1004
	LexEmptyChar           ID = 1005
	LexNullCharacter       ID = 1006

	// Парсерные
	SynExpected              ID = 2001
	SynExpectedAfter         ID = 2002
	SynNoteMatching          ID = 2003
	SynExtraneousSemiBefore  ID = 2004
	SynBracketDepthExceeded  ID = 2005
	SynNoteBracketDepth      ID = 2006
	SynExpectedExpression    ID = 2007
	SynExpectedIdent         ID = 2008
	SynExpectedDeclarator    ID = 2009
	SynExpectedDeclaration   ID = 2010
	SynExpectedStatement     ID = 2011
	SynExpectedType          ID = 2012
	SynDuplicateSpecifier    ID = 2013
	SynConflictingSpecifier  ID = 2014
	SynMissingTypeSpecifier  ID = 2015
	SynGenericComparison     ID = 2016
	SynNoteGenericLess       ID = 2017
	SynExtraSemi             ID = 2018
	SynEmptyDeclaration      ID = 2019
	SynImportAfterDecl       ID = 2020
	SynExpectedAfterReplaced ID = 2021

	// Семантические
	SemaRedefinition     ID = 3001
	SemaNotePrevious     ID = 3002
	SemaOutsideLoop      ID = 3003
	SemaVoidVariable     ID = 3004
	SemaReturnOutsideFun ID = 3005

	// Драйвер
	DrvCannotOpen    ID = 4001
	DrvTooManyErrors ID = 4002
)

type idInfo struct {
	format    string
	level     Level
	delayable bool
	title     string
}

var table = map[ID]idInfo{
	UnknownID: {format: "%0", level: LevelError, title: "unknown diagnostic"},

	LexUnknownChar:         {format: "invalid character %q0 in source file", level: LevelError, title: "unknown character"},
	LexUnterminatedString:  {format: "missing terminating %select{'\"'|'''}0 character", level: LevelError, title: "unterminated literal"},
	LexUnterminatedComment: {format: "unterminated /* comment", level: LevelError, title: "unterminated comment"},
	LexBadNumber:           {format: "invalid numeric literal %q0", level: LevelError, title: "bad number"},
	LexEmptyChar:           {format: "empty character constant", level: LevelError, title: "empty character"},
	LexNullCharacter:       {format: "null character ignored", level: LevelWarning, title: "null character"},

	SynExpected:              {format: "expected %q0", level: LevelError, title: "expected token"},
	SynExpectedAfter:         {format: "expected %q0 after %1", level: LevelError, title: "expected token after"},
	SynExpectedAfterReplaced: {format: "expected %q0 after %1; found %q2", level: LevelError, title: "typo for expected token"},
	SynNoteMatching:          {format: "to match this %q0", level: LevelNote, title: "matching delimiter"},
	SynExtraneousSemiBefore:  {format: "extraneous ';' before %q0", level: LevelError, title: "extraneous semicolon"},
	SynBracketDepthExceeded:  {format: "bracket nesting level exceeded maximum of %0", level: LevelFatal, title: "bracket depth exceeded"},
	SynNoteBracketDepth:      {format: "use --bracket-depth=N to increase maximum nesting level", level: LevelNote, title: "bracket depth hint"},
	SynExpectedExpression:    {format: "expected expression", level: LevelError, title: "expected expression"},
	SynExpectedIdent:         {format: "expected identifier", level: LevelError, title: "expected identifier"},
	SynExpectedDeclarator:    {format: "expected identifier or '('", level: LevelError, title: "expected declarator"},
	SynExpectedDeclaration:   {format: "expected top-level declaration", level: LevelError, title: "expected declaration"},
	SynExpectedStatement:     {format: "expected statement", level: LevelError, title: "expected statement"},
	SynExpectedType:          {format: "expected a type", level: LevelError, title: "expected type"},
	SynDuplicateSpecifier:    {format: "duplicate %q0 specifier", level: LevelWarning, delayable: true, title: "duplicate specifier"},
	SynConflictingSpecifier:  {format: "cannot combine with previous %q0 specifier", level: LevelError, title: "conflicting specifier"},
	SynMissingTypeSpecifier:  {format: "type specifier missing, defaults to 'int'", level: LevelWarning, delayable: true, title: "missing type specifier"},
	SynGenericComparison:     {format: "%q0 is compared with '<' and '>'; did you mean generic arguments?", level: LevelWarning, title: "possible generic arguments"},
	SynNoteGenericLess:       {format: "generic argument list would start here", level: LevelNote, title: "generic argument start"},
	SynExtraSemi:             {format: "extra ';' outside of a function", level: LevelWarning, title: "extra semicolon"},
	SynEmptyDeclaration:      {format: "declaration does not declare anything", level: LevelWarning, delayable: true, title: "empty declaration"},
	SynImportAfterDecl:       {format: "import of %q0 appears after other declarations", level: LevelWarning, title: "late import"},

	SemaRedefinition:     {format: "redefinition of %q0", level: LevelError, title: "redefinition"},
	SemaNotePrevious:     {format: "previous definition is here", level: LevelNote, title: "previous definition"},
	SemaOutsideLoop:      {format: "%q0 statement not in loop statement", level: LevelError, title: "jump outside loop"},
	SemaVoidVariable:     {format: "variable %q0 has incomplete type 'void'", level: LevelError, title: "void variable"},
	SemaReturnOutsideFun: {format: "'return' statement outside of a function", level: LevelError, title: "return outside function"},

	DrvCannotOpen:    {format: "cannot open file %q0: %1", level: LevelFatal, title: "cannot open file"},
	DrvTooManyErrors: {format: "too many errors emitted, stopping now", level: LevelFatal, title: "error limit reached"},
}

func (id ID) info() idInfo {
	if inf, ok := table[id]; ok {
		return inf
	}
	return table[UnknownID]
}

// Format returns the message template with %N placeholders.
func (id ID) Format() string { return id.info().format }

// DefaultLevel is the level used unless the engine remaps the ID.
func (id ID) DefaultLevel() Level { return id.info().level }

// IsDelayable reports whether the diagnostic is held back while a
// declaration is being parsed.
func (id ID) IsDelayable() bool { return id.info().delayable }

// Title is a short description for listings.
func (id ID) Title() string { return id.info().title }

// Code renders the stable identifier, e.g. "SYN2001".
func (id ID) Code() string {
	switch ic := int(id); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DRV%04d", ic)
	}
	return "E0000"
}

func (id ID) String() string {
	return fmt.Sprintf("[%s]: %s", id.Code(), id.Title())
}
