package linked

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltlang/voltlink/internal/ast"
	"github.com/voltlang/voltlink/internal/logger"
	"github.com/voltlang/voltlink/internal/test"
	"github.com/voltlang/voltlink/internal/version"
)

func method(name string, flags ast.MethodFlags, body ...byte) ast.MethodDef {
	return ast.MethodDef{
		Key:   ast.PropertyKey{Text: name, Kind: ast.PropertyKeyIdent},
		Name:  ast.EncodeName("app.Box." + name),
		Flags: flags,
		Body:  body,
	}
}

func versioned(token string, def ast.MethodDef) Versioned[ast.MethodDef] {
	return MakeVersioned(version.MakeToken(token), def)
}

func sampleFields() ClassFields {
	superClass := ast.EncodeName("core.Object")
	return ClassFields{
		Name:       ast.EncodeName("app.Box"),
		Kind:       ast.KindClass,
		SuperClass: &superClass,
		Interfaces: []ast.Name{ast.EncodeName("core.Comparable")},
		NativeSpec: nil,
		Fields: []ast.FieldDef{{
			Name:      ast.EncodeName("value"),
			Type:      ast.TypeRef("I"),
			IsMutable: true,
		}},
		StaticMethods:   []Versioned[ast.MethodDef]{versioned("s1", method("of", ast.MethodIsStatic, 1))},
		InstanceMethods: []Versioned[ast.MethodDef]{versioned("i1", method("get", 0, 2))},
		AbstractMethods: []Versioned[ast.MethodDef]{versioned("a1", method("compare", ast.MethodIsAbstract))},
		ExportedMembers: []Versioned[ast.MethodDef]{versioned("e1", method("toString", 0, 3))},
		TopLevelExports: []ast.TopLevelExport{
			&ast.ConstructorExport{Name: "Box"},
		},
		ExportAccessorInfo: &ast.MethodInfo{EncodedName: "app_Box$export", IsStatic: true},
		Hints:              ast.HintInline,
		Pos:                logger.Loc{Start: 42},
		Ancestors:          []string{"app_Box", "core_Object"},
		HasInstances:       true,
		HasInstanceTests:   false,
		HasRuntimeTypeInfo: true,
		ClassVersion:       version.MakeToken("c1"),
	}
}

// snapshot reads every field back through the getters so tests can compare
// whole classes structurally.
func snapshot(c *Class) ClassFields {
	fields := ClassFields{
		Name:               c.Name(),
		Kind:               c.Kind(),
		Interfaces:         c.Interfaces(),
		Fields:             c.Fields(),
		StaticMethods:      c.StaticMethods(),
		InstanceMethods:    c.InstanceMethods(),
		AbstractMethods:    c.AbstractMethods(),
		ExportedMembers:    c.ExportedMembers(),
		TopLevelExports:    c.TopLevelExports(),
		Hints:              c.Hints(),
		Pos:                c.Pos(),
		Ancestors:          c.Ancestors(),
		HasInstances:       c.HasInstances(),
		HasInstanceTests:   c.HasInstanceTests(),
		HasRuntimeTypeInfo: c.HasRuntimeTypeInfo(),
		ClassVersion:       c.ClassVersion(),
	}
	if superClass, ok := c.SuperClass(); ok {
		fields.SuperClass = &superClass
	}
	if spec, ok := c.NativeSpec(); ok {
		fields.NativeSpec = &spec
	}
	if info, ok := c.ExportAccessorInfo(); ok {
		fields.ExportAccessorInfo = &info
	}
	return fields
}

func TestConstructionExposesEveryField(t *testing.T) {
	fields := sampleFields()
	c := MakeClass(fields)
	require.Equal(t, fields, snapshot(c))
}

func TestUpdateRoundTrip(t *testing.T) {
	newSuper := ast.EncodeName("core.Any")
	newAccessor := &ast.MethodInfo{EncodedName: "app_Box$export2"}
	newStatic := []Versioned[ast.MethodDef]{versioned("s2", method("make", ast.MethodIsStatic, 9))}
	newInstance := []Versioned[ast.MethodDef]{versioned("i2", method("set", 0, 8))}
	newAbstract := []Versioned[ast.MethodDef]{}
	newExported := []Versioned[ast.MethodDef]{Unversioned(method("valueOf", 0, 7))}
	newExports := []ast.TopLevelExport{
		&ast.ModuleExport{Name: "Box$"},
		&ast.FieldExport{Name: "unit", Type: ast.TypeRef("I")},
	}

	newName := ast.EncodeName("app.Crate")
	newSpec := &ast.NativeLoadSpec{Module: "host:box", Path: []string{"Box"}}

	cases := []struct {
		name   string
		change Change
		mutate func(*ClassFields)
	}{
		{"Name", WithName(newName), func(f *ClassFields) { f.Name = newName }},
		{"Kind", WithKind(ast.KindModuleClass), func(f *ClassFields) { f.Kind = ast.KindModuleClass }},
		{"NativeSpec", WithNativeSpec(newSpec), func(f *ClassFields) { f.NativeSpec = newSpec }},
		{"Pos", WithPos(logger.Loc{Start: 7}), func(f *ClassFields) { f.Pos = logger.Loc{Start: 7} }},
		{"SuperClass", WithSuperClass(&newSuper), func(f *ClassFields) { f.SuperClass = &newSuper }},
		{"SuperClassCleared", WithSuperClass(nil), func(f *ClassFields) { f.SuperClass = nil }},
		{"Interfaces", WithInterfaces(nil), func(f *ClassFields) { f.Interfaces = nil }},
		{"Fields", WithFields(nil), func(f *ClassFields) { f.Fields = nil }},
		{"StaticMethods", WithStaticMethods(newStatic), func(f *ClassFields) { f.StaticMethods = newStatic }},
		{"InstanceMethods", WithInstanceMethods(newInstance), func(f *ClassFields) { f.InstanceMethods = newInstance }},
		{"AbstractMethods", WithAbstractMethods(newAbstract), func(f *ClassFields) { f.AbstractMethods = newAbstract }},
		{"ExportedMembers", WithExportedMembers(newExported), func(f *ClassFields) { f.ExportedMembers = newExported }},
		{"TopLevelExports", WithTopLevelExports(newExports), func(f *ClassFields) { f.TopLevelExports = newExports }},
		{"ExportAccessorInfo", WithExportAccessorInfo(newAccessor), func(f *ClassFields) { f.ExportAccessorInfo = newAccessor }},
		{"Hints", WithHints(ast.HintNoInline), func(f *ClassFields) { f.Hints = ast.HintNoInline }},
		{"Ancestors", WithAncestors([]string{"app_Box"}), func(f *ClassFields) { f.Ancestors = []string{"app_Box"} }},
		{"HasInstances", WithHasInstances(false), func(f *ClassFields) { f.HasInstances = false }},
		{"HasInstanceTests", WithHasInstanceTests(true), func(f *ClassFields) { f.HasInstanceTests = true }},
		{"HasRuntimeTypeInfo", WithHasRuntimeTypeInfo(false), func(f *ClassFields) { f.HasRuntimeTypeInfo = false }},
		{"ClassVersion", WithClassVersion(version.MakeToken("c2")), func(f *ClassFields) { f.ClassVersion = version.MakeToken("c2") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			original := sampleFields()
			c := MakeClass(original)
			updated := c.Update(tc.change)

			// The replaced field changed and everything else carried over
			expected := sampleFields()
			tc.mutate(&expected)
			require.Equal(t, expected, snapshot(updated))

			// The receiver is untouched
			require.Equal(t, original, snapshot(c))
		})
	}
}

func TestUpdateWithNoChangesIsACopy(t *testing.T) {
	c := MakeClass(sampleFields())
	updated := c.Update()
	if c == updated {
		t.Fatal("Update must return a new instance")
	}
	require.Equal(t, snapshot(c), snapshot(updated))
}

func TestUpdateAppliesMultipleChanges(t *testing.T) {
	c := MakeClass(sampleFields())
	updated := c.Update(
		WithHasInstanceTests(true),
		WithClassVersion(version.MakeToken("c9")),
	)
	test.AssertEqual(t, updated.HasInstanceTests(), true)
	test.AssertEqual(t, updated.ClassVersion().Value(), "c9")
	test.AssertEqual(t, c.HasInstanceTests(), false)
	test.AssertEqual(t, c.ClassVersion().Value(), "c1")
}

func TestEncodedAndFullName(t *testing.T) {
	c := MakeClass(sampleFields())
	test.AssertEqual(t, c.EncodedName(), "app_Box")
	test.AssertEqual(t, c.FullName(), "app.Box")
}

func TestIsExportedTracksTopLevelExports(t *testing.T) {
	c := MakeClass(sampleFields())
	test.AssertEqual(t, c.IsExported(), true)

	unexported := c.Update(WithTopLevelExports(nil))
	test.AssertEqual(t, unexported.IsExported(), false)

	empty := c.Update(WithTopLevelExports([]ast.TopLevelExport{}))
	test.AssertEqual(t, empty.IsExported(), false)

	// The original is unaffected either way
	test.AssertEqual(t, c.IsExported(), true)
}

func TestVersionedSameVersion(t *testing.T) {
	a := versioned("v1", method("m", 0, 1))
	b := versioned("v1", method("m", 0, 2))
	c := versioned("v2", method("m", 0, 1))
	none := Unversioned(method("m", 0, 1))

	// Equivalence is decided by the tokens alone
	test.AssertEqual(t, a.SameVersion(b), true)
	test.AssertEqual(t, a.SameVersion(c), false)

	// An absent token on either side means "always changed"
	test.AssertEqual(t, a.SameVersion(none), false)
	test.AssertEqual(t, none.SameVersion(a), false)
	test.AssertEqual(t, none.SameVersion(none), false)
}
