package ast

import (
	"github.com/voltlang/voltlink/internal/logger"
)

// A ClassDef is the pre-link class tree emitted by the front-end: purely
// syntactic, no whole-program facts yet. The link phase combines it with
// the reachability analyzer's output to build a linked class.
type ClassDef struct {
	Name       Name
	Kind       ClassKind
	SuperClass *Name
	Interfaces []Name

	// Only set for KindNativeClass
	NativeSpec *NativeLoadSpec

	Fields          []FieldDef
	StaticMethods   []MethodDef
	InstanceMethods []MethodDef
	AbstractMethods []MethodDef

	// Members exported to the host environment without being part of the
	// module's top-level surface (instance-level exported methods and
	// properties)
	ExportedMembers []MethodDef

	TopLevelExports []TopLevelExport

	// Info for the synthetic accessor the emitter generates when the class
	// itself is exported; nil when there is none
	ExportAccessorInfo *MethodInfo

	Hints OptimizerHints
	Pos   logger.Loc
}
