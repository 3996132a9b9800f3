package linked

// A linked class is the immutable unit of incremental work. The rules are
// the same as for cached ASTs elsewhere in the pipeline:
//
//   - Instances must be considered immutable after construction. There is
//     no way to enforce this fully in Go, so the fields are unexported and
//     every "update" goes through Update, which returns a new instance.
//     Slices handed out by getters are shared with the instance; callers
//     must not write through them.
//
//   - Because instances never change, any number of pipeline workers may
//     read and compare them concurrently without synchronization.
//
//   - The class-level version token covers the syntactic and link-computed
//     fields except the four member collections, which carry their own
//     per-member tokens. A complete cache key must combine both; use
//     version.CacheKey rather than building one by hand.

import (
	"github.com/voltlang/voltlink/internal/ast"
	"github.com/voltlang/voltlink/internal/logger"
	"github.com/voltlang/voltlink/internal/version"
)

// A Versioned pairs one member definition with its own version token so a
// single changed method invalidates only its own cache entry, not the
// whole class. An absent token marks the member as unversionable: it is
// treated as changed on every run.
type Versioned[T any] struct {
	Version version.Token
	Value   T
}

func MakeVersioned[T any](v version.Token, value T) Versioned[T] {
	return Versioned[T]{Version: v, Value: value}
}

// Unversioned wraps a member with no token, for members that are
// regenerated on every phase and must never be cache-reused.
func Unversioned[T any](value T) Versioned[T] {
	return Versioned[T]{Value: value}
}

// SameVersion reports cache-equivalence: both tokens present and equal.
func (v Versioned[T]) SameVersion(other Versioned[T]) bool {
	return version.Same(v.Version, other.Version)
}

type Class struct {
	// Syntactic, carried over from the front-end definition
	name               ast.Name
	kind               ast.ClassKind
	superClass         *ast.Name
	interfaces         []ast.Name
	nativeSpec         *ast.NativeLoadSpec
	fields             []ast.FieldDef
	staticMethods      []Versioned[ast.MethodDef]
	instanceMethods    []Versioned[ast.MethodDef]
	abstractMethods    []Versioned[ast.MethodDef]
	exportedMembers    []Versioned[ast.MethodDef]
	topLevelExports    []ast.TopLevelExport
	exportAccessorInfo *ast.MethodInfo
	hints              ast.OptimizerHints
	pos                logger.Loc

	// Link-computed, filled in from the reachability analyzer's facts
	ancestors          []string
	hasInstances       bool
	hasInstanceTests   bool
	hasRuntimeTypeInfo bool
	classVersion       version.Token
}

// ClassFields spells out every field of a linked class. Construction takes
// the whole record at once instead of a builder so a partially-initialized
// class cannot exist: if a caller forgets a field the zero value shows up
// immediately in tests, not as a missing-default surprise deep in a later
// phase.
type ClassFields struct {
	Name               ast.Name
	Kind               ast.ClassKind
	SuperClass         *ast.Name
	Interfaces         []ast.Name
	NativeSpec         *ast.NativeLoadSpec
	Fields             []ast.FieldDef
	StaticMethods      []Versioned[ast.MethodDef]
	InstanceMethods    []Versioned[ast.MethodDef]
	AbstractMethods    []Versioned[ast.MethodDef]
	ExportedMembers    []Versioned[ast.MethodDef]
	TopLevelExports    []ast.TopLevelExport
	ExportAccessorInfo *ast.MethodInfo
	Hints              ast.OptimizerHints
	Pos                logger.Loc

	Ancestors          []string
	HasInstances       bool
	HasInstanceTests   bool
	HasRuntimeTypeInfo bool
	ClassVersion       version.Token
}

func MakeClass(fields ClassFields) *Class {
	return &Class{
		name:               fields.Name,
		kind:               fields.Kind,
		superClass:         fields.SuperClass,
		interfaces:         fields.Interfaces,
		nativeSpec:         fields.NativeSpec,
		fields:             fields.Fields,
		staticMethods:      fields.StaticMethods,
		instanceMethods:    fields.InstanceMethods,
		abstractMethods:    fields.AbstractMethods,
		exportedMembers:    fields.ExportedMembers,
		topLevelExports:    fields.TopLevelExports,
		exportAccessorInfo: fields.ExportAccessorInfo,
		hints:              fields.Hints,
		pos:                fields.Pos,
		ancestors:          fields.Ancestors,
		hasInstances:       fields.HasInstances,
		hasInstanceTests:   fields.HasInstanceTests,
		hasRuntimeTypeInfo: fields.HasRuntimeTypeInfo,
		classVersion:       fields.ClassVersion,
	}
}

// A Change replaces one field inside Update. Changes only ever assign a
// whole field on the private copy; they never write through to data shared
// with the original instance.
type Change func(*Class)

// Update returns a new class with the given fields replaced and everything
// else carried over unchanged. The receiver is not modified.
func (c *Class) Update(changes ...Change) *Class {
	clone := *c
	for _, change := range changes {
		change(&clone)
	}
	return &clone
}

func WithName(name ast.Name) Change {
	return func(c *Class) { c.name = name }
}

func WithKind(kind ast.ClassKind) Change {
	return func(c *Class) { c.kind = kind }
}

func WithSuperClass(superClass *ast.Name) Change {
	return func(c *Class) { c.superClass = superClass }
}

func WithInterfaces(interfaces []ast.Name) Change {
	return func(c *Class) { c.interfaces = interfaces }
}

func WithNativeSpec(spec *ast.NativeLoadSpec) Change {
	return func(c *Class) { c.nativeSpec = spec }
}

func WithFields(fields []ast.FieldDef) Change {
	return func(c *Class) { c.fields = fields }
}

func WithStaticMethods(methods []Versioned[ast.MethodDef]) Change {
	return func(c *Class) { c.staticMethods = methods }
}

func WithInstanceMethods(methods []Versioned[ast.MethodDef]) Change {
	return func(c *Class) { c.instanceMethods = methods }
}

func WithAbstractMethods(methods []Versioned[ast.MethodDef]) Change {
	return func(c *Class) { c.abstractMethods = methods }
}

func WithExportedMembers(members []Versioned[ast.MethodDef]) Change {
	return func(c *Class) { c.exportedMembers = members }
}

func WithTopLevelExports(exports []ast.TopLevelExport) Change {
	return func(c *Class) { c.topLevelExports = exports }
}

func WithExportAccessorInfo(info *ast.MethodInfo) Change {
	return func(c *Class) { c.exportAccessorInfo = info }
}

func WithHints(hints ast.OptimizerHints) Change {
	return func(c *Class) { c.hints = hints }
}

func WithPos(pos logger.Loc) Change {
	return func(c *Class) { c.pos = pos }
}

func WithAncestors(ancestors []string) Change {
	return func(c *Class) { c.ancestors = ancestors }
}

func WithHasInstances(hasInstances bool) Change {
	return func(c *Class) { c.hasInstances = hasInstances }
}

func WithHasInstanceTests(hasInstanceTests bool) Change {
	return func(c *Class) { c.hasInstanceTests = hasInstanceTests }
}

func WithHasRuntimeTypeInfo(hasRuntimeTypeInfo bool) Change {
	return func(c *Class) { c.hasRuntimeTypeInfo = hasRuntimeTypeInfo }
}

func WithClassVersion(v version.Token) Change {
	return func(c *Class) { c.classVersion = v }
}

func (c *Class) Name() ast.Name { return c.name }

// EncodedName is the stable key for this class across the whole pipeline.
func (c *Class) EncodedName() string { return c.name.Encoded }

// FullName demangles the encoded name back into a human-readable qualified
// name. Diagnostics only; never use it as a key.
func (c *Class) FullName() string {
	return ast.DecodeEncodedName(c.name.Encoded)
}

func (c *Class) Kind() ast.ClassKind { return c.kind }

func (c *Class) SuperClass() (ast.Name, bool) {
	if c.superClass == nil {
		return ast.Name{}, false
	}
	return *c.superClass, true
}

func (c *Class) Interfaces() []ast.Name { return c.interfaces }

func (c *Class) NativeSpec() (ast.NativeLoadSpec, bool) {
	if c.nativeSpec == nil {
		return ast.NativeLoadSpec{}, false
	}
	return *c.nativeSpec, true
}

func (c *Class) Fields() []ast.FieldDef { return c.fields }

func (c *Class) StaticMethods() []Versioned[ast.MethodDef] { return c.staticMethods }

func (c *Class) InstanceMethods() []Versioned[ast.MethodDef] { return c.instanceMethods }

func (c *Class) AbstractMethods() []Versioned[ast.MethodDef] { return c.abstractMethods }

func (c *Class) ExportedMembers() []Versioned[ast.MethodDef] { return c.exportedMembers }

func (c *Class) TopLevelExports() []ast.TopLevelExport { return c.topLevelExports }

func (c *Class) ExportAccessorInfo() (ast.MethodInfo, bool) {
	if c.exportAccessorInfo == nil {
		return ast.MethodInfo{}, false
	}
	return *c.exportAccessorInfo, true
}

func (c *Class) Hints() ast.OptimizerHints { return c.hints }

func (c *Class) Pos() logger.Loc { return c.pos }

func (c *Class) Ancestors() []string { return c.ancestors }

func (c *Class) HasInstances() bool { return c.hasInstances }

func (c *Class) HasInstanceTests() bool { return c.hasInstanceTests }

func (c *Class) HasRuntimeTypeInfo() bool { return c.hasRuntimeTypeInfo }

// ClassVersion covers every field except the four member collections.
// Combining it with member versions is the caller's job; see
// version.CacheKey.
func (c *Class) ClassVersion() version.Token { return c.classVersion }

// IsExported is derived, never stored: a class is exported exactly when it
// has top-level exports. There is no separate flag to fall out of sync with
// the export list.
func (c *Class) IsExported() bool {
	return len(c.topLevelExports) > 0
}
