package source

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// IdentInfo is the unique record for one identifier spelling.
// Diagnostics borrow *IdentInfo; the table outlives them.
type IdentInfo struct {
	ID   Ident
	Name string
}

// Ident is the compact handle of an interned identifier.
type Ident uint32

const NoIdent Ident = 0

// IdentTable interns identifiers in NFC form so that visually equal
// spellings share one record.
type IdentTable struct {
	byID  []*IdentInfo
	index map[string]Ident
}

func NewIdentTable() *IdentTable {
	return &IdentTable{
		byID:  []*IdentInfo{{ID: NoIdent}},
		index: map[string]Ident{"": NoIdent},
	}
}

// Intern returns the record for s, creating it on first use.
func (t *IdentTable) Intern(s string) *IdentInfo {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	if id, ok := t.index[s]; ok {
		return t.byID[id]
	}
	// собственная копия, чтобы не держать буфер исходника
	cpy := string([]byte(s))
	info := &IdentInfo{ID: Ident(len(t.byID)), Name: cpy}
	t.byID = append(t.byID, info)
	t.index[cpy] = info.ID
	return info
}

func (t *IdentTable) InternBytes(b []byte) *IdentInfo { return t.Intern(string(b)) }

// Get returns the record for id or nil.
func (t *IdentTable) Get(id Ident) *IdentInfo {
	if int(id) >= len(t.byID) {
		return nil
	}
	return t.byID[id]
}

// Len counts records including the reserved empty one.
func (t *IdentTable) Len() int { return len(t.byID) }

// Names returns every interned spelling in creation order.
func (t *IdentTable) Names() []string {
	out := make([]string, 0, len(t.byID))
	for _, info := range t.byID {
		out = append(out, info.Name)
	}
	return slices.Clip(out)
}
