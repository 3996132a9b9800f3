package linked

import (
	"testing"

	"github.com/voltlang/voltlink/internal/ast"
	"github.com/voltlang/voltlink/internal/test"
	"github.com/voltlang/voltlink/internal/version"
)

func TestCombinedVersionIsStable(t *testing.T) {
	a := MakeClass(sampleFields()).CombinedVersion()
	b := MakeClass(sampleFields()).CombinedVersion()
	test.AssertEqual(t, a.OK(), true)
	test.AssertEqual(t, version.Same(a, b), true)
}

func TestCombinedVersionSeesMemberChanges(t *testing.T) {
	c := MakeClass(sampleFields())
	before := c.CombinedVersion()

	// Replacing one member's version token must change the combined key
	// even though the class-level version is untouched
	updated := c.Update(WithInstanceMethods([]Versioned[ast.MethodDef]{
		versioned("i1-changed", method("get", 0, 2)),
	}))
	after := updated.CombinedVersion()

	test.AssertEqual(t, version.Same(before, after), false)
	test.AssertEqual(t, version.Same(updated.ClassVersion(), c.ClassVersion()), true)
}

func TestCombinedVersionSeesClassChanges(t *testing.T) {
	c := MakeClass(sampleFields())
	before := c.CombinedVersion()
	after := c.Update(WithClassVersion(version.MakeToken("c2"))).CombinedVersion()
	test.AssertEqual(t, version.Same(before, after), false)
}

func TestCombinedVersionAbsentOnUnversionableMember(t *testing.T) {
	c := MakeClass(sampleFields()).Update(WithExportedMembers([]Versioned[ast.MethodDef]{
		Unversioned(method("toString", 0, 3)),
	}))
	test.AssertEqual(t, c.CombinedVersion().OK(), false)
}

func TestCombinedVersionAbsentOnMissingClassVersion(t *testing.T) {
	c := MakeClass(sampleFields()).Update(WithClassVersion(version.Token{}))
	test.AssertEqual(t, c.CombinedVersion().OK(), false)
}
