package linked

import (
	"fmt"

	"github.com/voltlang/voltlink/internal/ast"
)

// ExportName resolves one top-level export declaration to the public name
// it contributes to the module's surface. Every variant yields exactly one
// name. The switch is exhaustive over the closed set of variants in
// internal/ast; a new variant there must add a case here.
func ExportName(decl ast.TopLevelExport) string {
	switch d := decl.(type) {
	case *ast.ConstructorExport:
		return d.Name

	case *ast.ModuleExport:
		return d.Name

	case *ast.ClassExport:
		return d.Name

	case *ast.MethodExport:
		// The front-end is required to resolve exported method keys to
		// string literals before linking. Anything else reaching this
		// point is a front-end bug, and guessing a name here would turn
		// that bug into a silent miscompilation, so abort instead.
		if !d.Method.Key.IsLiteralString() {
			panic(fmt.Sprintf(
				"Internal error: method export %q has a non-literal property name",
				d.Method.Name.Original))
		}
		return d.Method.Key.Text

	case *ast.FieldExport:
		return d.Name

	default:
		panic("Internal error")
	}
}

// TopLevelExportNames resolves the class's ordered public surface: one name
// per declaration, declaration order preserved, duplicates preserved.
func (c *Class) TopLevelExportNames() []string {
	if len(c.topLevelExports) == 0 {
		return nil
	}
	names := make([]string, len(c.topLevelExports))
	for i, decl := range c.topLevelExports {
		names[i] = ExportName(decl)
	}
	return names
}
