// Package ast holds the syntax nodes built by the parser. Nodes live in
// arenas and are addressed by small typed IDs; every category carries a
// kind tag and the fields that kind uses.
package ast
