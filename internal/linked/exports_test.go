package linked

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltlang/voltlink/internal/ast"
	"github.com/voltlang/voltlink/internal/test"
)

func exportedMethod(keyText string, keyKind ast.PropertyKeyKind) ast.MethodDef {
	return ast.MethodDef{
		Key:   ast.PropertyKey{Text: keyText, Kind: keyKind},
		Name:  ast.EncodeName("app.Box." + keyText),
		Flags: ast.MethodIsStatic,
		Body:  []byte{1},
	}
}

func TestExportNamePerVariant(t *testing.T) {
	test.AssertEqual(t, ExportName(&ast.ConstructorExport{Name: "Foo"}), "Foo")
	test.AssertEqual(t, ExportName(&ast.ModuleExport{Name: "Bar"}), "Bar")
	test.AssertEqual(t, ExportName(&ast.ClassExport{Name: "Klass"}), "Klass")
	test.AssertEqual(t, ExportName(&ast.MethodExport{
		Method: exportedMethod("baz", ast.PropertyKeyStringLiteral),
	}), "baz")
	test.AssertEqual(t, ExportName(&ast.FieldExport{Name: "qux", Type: ast.TypeRef("I")}), "qux")
}

func TestExportNameRejectsNonLiteralMethodKey(t *testing.T) {
	// A method export whose key survived to link time without being
	// resolved to a string literal is a front-end bug; resolution must die
	// rather than guess
	require.Panics(t, func() {
		ExportName(&ast.MethodExport{Method: exportedMethod("baz", ast.PropertyKeyIdent)})
	})
	require.Panics(t, func() {
		ExportName(&ast.MethodExport{Method: exportedMethod("x+y", ast.PropertyKeyComputed)})
	})
}

func TestTopLevelExportNamesPreservesOrder(t *testing.T) {
	c := MakeClass(sampleFields()).Update(WithTopLevelExports([]ast.TopLevelExport{
		&ast.ConstructorExport{Name: "A"},
		&ast.FieldExport{Name: "b", Type: ast.TypeRef("I")},
		&ast.ModuleExport{Name: "C"},
	}))
	test.AssertEqualStrings(t, c.TopLevelExportNames(), []string{"A", "b", "C"})
}

func TestTopLevelExportNamesPreservesDuplicates(t *testing.T) {
	c := MakeClass(sampleFields()).Update(WithTopLevelExports([]ast.TopLevelExport{
		&ast.ClassExport{Name: "Same"},
		&ast.MethodExport{Method: exportedMethod("Same", ast.PropertyKeyStringLiteral)},
		&ast.ClassExport{Name: "Same"},
	}))
	test.AssertEqualStrings(t, c.TopLevelExportNames(), []string{"Same", "Same", "Same"})
}

func TestTopLevelExportNamesEmpty(t *testing.T) {
	c := MakeClass(sampleFields()).Update(WithTopLevelExports(nil))
	test.AssertEqual(t, len(c.TopLevelExportNames()), 0)
}
