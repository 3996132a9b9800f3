package ast

// This file contains the definition types emitted by the front-end. They are
// plain values: everything downstream of the front-end (the linker, the
// optimizer, the emitter) reads them but never mutates them, so they can be
// shared freely across goroutines without synchronization.

import (
	"strings"

	"github.com/voltlang/voltlink/internal/logger"
)

type ClassKind uint8

const (
	// An ordinary class with its own instances
	KindClass ClassKind = iota

	// An interface; carries no instance fields
	KindInterface

	// A trait (mixin); methods are copied into implementing classes
	KindTrait

	// A module (singleton) class with exactly one lazily-created instance
	KindModuleClass

	// A class backed by the host environment; carries a native load spec
	// instead of field and method bodies
	KindNativeClass
)

func (kind ClassKind) String() string {
	switch kind {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindTrait:
		return "trait"
	case KindModuleClass:
		return "module class"
	case KindNativeClass:
		return "native class"
	default:
		panic("Internal error")
	}
}

// HasInstanceFields is false for kinds whose instances never carry fields
// of their own (interfaces have no instances, native classes have host-
// managed storage).
func (kind ClassKind) HasInstanceFields() bool {
	return kind == KindClass || kind == KindTrait || kind == KindModuleClass
}

func (kind ClassKind) IsNative() bool {
	return kind == KindNativeClass
}

// A Name pairs the source-level name of a class or member with its encoded
// (mangled) form. The encoded form is the stable key used across the whole
// pipeline: lookups, cache keys, and emitted symbols all use it. The
// original form is only for diagnostics.
type Name struct {
	Original string
	Encoded  string
}

// EncodeName mangles a dot-separated qualified name. Dots become "_", a
// literal "_" in a segment becomes "$und", and a literal "$" becomes "$$"
// so the mapping stays reversible for every source name.
func EncodeName(qualified string) Name {
	var sb strings.Builder
	sb.Grow(len(qualified))
	for _, c := range qualified {
		switch c {
		case '.':
			sb.WriteByte('_')
		case '_':
			sb.WriteString("$und")
		case '$':
			sb.WriteString("$$")
		default:
			sb.WriteRune(c)
		}
	}
	return Name{Original: qualified, Encoded: sb.String()}
}

// DecodeEncodedName reverses EncodeName. It is only used when formatting
// diagnostics, so it favors clarity over speed.
func DecodeEncodedName(encoded string) string {
	var sb strings.Builder
	sb.Grow(len(encoded))
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		switch {
		case c == '_':
			sb.WriteByte('.')
		case c == '$' && strings.HasPrefix(encoded[i:], "$$"):
			sb.WriteByte('$')
			i++
		case c == '$' && strings.HasPrefix(encoded[i:], "$und"):
			sb.WriteByte('_')
			i += 3
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

type PropertyKeyKind uint8

const (
	// A plain identifier key: "foo" in "def foo"
	PropertyKeyIdent PropertyKeyKind = iota

	// A string literal key: "foo" in `def "foo"`
	PropertyKeyStringLiteral

	// A computed key; the text is the encoded form of the key expression.
	// The front-end resolves computed keys to string literals for anything
	// that ends up exported, so exports never see this kind.
	PropertyKeyComputed
)

type PropertyKey struct {
	Text string
	Kind PropertyKeyKind
}

// IsLiteralString reports whether the key is usable as a public export name
// without further evaluation.
func (key PropertyKey) IsLiteralString() bool {
	return key.Kind == PropertyKeyStringLiteral
}

// TypeRef is the encoded reference to a type. The linker core treats it as
// an opaque token; only the front-end and the emitter interpret it.
type TypeRef string

type OptimizerHints uint8

const (
	// The optimizer should inline calls to this method where possible
	HintInline OptimizerHints = 1 << iota

	// The optimizer must never inline this method, even when small
	HintNoInline
)

func (hints OptimizerHints) Has(flag OptimizerHints) bool {
	return (hints & flag) != 0
}

// A NativeLoadSpec tells the emitter how to obtain a native class at run
// time: either a property path from the global object, or an import from a
// host module followed by a property path.
type NativeLoadSpec struct {
	// Empty means load from the global object
	Module string

	// Property path from the module or global object, outermost first
	Path []string
}

type FieldDef struct {
	Name Name
	Type TypeRef

	// Immutable fields can be constant-folded once assigned
	IsMutable bool
	IsStatic  bool

	Pos logger.Loc
}

type MethodFlags uint8

const (
	MethodIsStatic MethodFlags = 1 << iota
	MethodIsAbstract
)

type MethodDef struct {
	// Key is how host-facing code addresses the method; for internal
	// methods it mirrors the name
	Key PropertyKey

	Name  Name
	Flags MethodFlags

	// The serialized method body. Opaque to the linker core: only the
	// optimizer decodes it, and the version token of the enclosing member
	// wrapper is derived from it. Abstract methods have a nil body.
	Body []byte

	Hints OptimizerHints
	Pos   logger.Loc
}

func (m MethodDef) IsStatic() bool {
	return (m.Flags & MethodIsStatic) != 0
}

func (m MethodDef) IsAbstract() bool {
	return (m.Flags & MethodIsAbstract) != 0
}

// Info projects the method down to the summary record consumed by
// incremental-cache consumers. It deliberately never touches the body.
func (m MethodDef) Info() MethodInfo {
	return MethodInfo{
		EncodedName: m.Name.Encoded,
		IsStatic:    m.IsStatic(),
		IsAbstract:  m.IsAbstract(),
	}
}
