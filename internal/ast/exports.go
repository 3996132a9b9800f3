package ast

import (
	"github.com/voltlang/voltlink/internal/logger"
)

// A top-level export makes one constructor, module accessor, class value,
// method, or field part of the compiled module's public surface. This is a
// closed sum type: the resolver in "internal/linked" switches exhaustively
// over it, so adding a variant here must be accompanied by a resolver case.
type TopLevelExport interface {
	isTopLevelExport()
}

type ConstructorExport struct {
	Name string
	Pos  logger.Loc
}

type ModuleExport struct {
	Name string
	Pos  logger.Loc
}

type ClassExport struct {
	Name string
	Pos  logger.Loc
}

// A MethodExport exposes a static method as a top-level function. By the
// time linking happens the front-end has already resolved the method's
// property key to a string literal; the resolver treats anything else as an
// internal error.
type MethodExport struct {
	Method MethodDef
}

type FieldExport struct {
	Name string
	Type TypeRef
	Pos  logger.Loc
}

func (*ConstructorExport) isTopLevelExport() {}
func (*ModuleExport) isTopLevelExport()      {}
func (*ClassExport) isTopLevelExport()       {}
func (*MethodExport) isTopLevelExport()      {}
func (*FieldExport) isTopLevelExport()       {}
