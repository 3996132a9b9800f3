package graph

import (
	"strconv"

	"github.com/tidwall/btree"

	"github.com/voltlang/voltlink/internal/ast"
	"github.com/voltlang/voltlink/internal/linked"
	"github.com/voltlang/voltlink/internal/version"
)

// ReachabilityFacts is what the whole-program analyzer reports for one
// class. The analyzer is the only component with a global view; it must
// finish its own aggregation before these facts are handed to the link
// phase, which treats them as plain inputs.
//
// Ancestors is the full transitive ancestor set as encoded names, in the
// deterministic order the analyzer produced. Any class reachable from an
// instantiation site must arrive with HasInstances set; any class that is
// the target of a dynamic type test must arrive with HasInstanceTests set;
// any class whose reflective metadata can be observed at run time must
// arrive with HasRuntimeTypeInfo set.
type ReachabilityFacts struct {
	Ancestors          []string `json:"ancestors,omitempty"`
	HasInstances       bool     `json:"hasInstances,omitempty"`
	HasInstanceTests   bool     `json:"hasInstanceTests,omitempty"`
	HasRuntimeTypeInfo bool     `json:"hasRuntimeTypeInfo,omitempty"`
}

// A LinkedProgram is the whole-program view after linking: every reachable
// class, indexed by encoded name. Like the classes it holds it is
// immutable; replacing a class produces a new program sharing the rest of
// the index (the underlying B-tree is copy-on-write).
type LinkedProgram struct {
	classes *btree.Map[string, *linked.Class]
}

// LinkClass combines one front-end class definition with the analyzer's
// facts for it. Member version tokens are content hashes of the serialized
// bodies, so an unchanged method keeps its token across runs even when the
// front-end re-emits it. Abstract methods have no body to hash and get a
// token derived from their encoded name instead. The class-level version
// covers everything except the member collections.
func LinkClass(def ast.ClassDef, facts ReachabilityFacts) *linked.Class {
	return linked.MakeClass(linked.ClassFields{
		Name:               def.Name,
		Kind:               def.Kind,
		SuperClass:         def.SuperClass,
		Interfaces:         def.Interfaces,
		NativeSpec:         def.NativeSpec,
		Fields:             def.Fields,
		StaticMethods:      versionMethods(def.StaticMethods),
		InstanceMethods:    versionMethods(def.InstanceMethods),
		AbstractMethods:    versionMethods(def.AbstractMethods),
		ExportedMembers:    versionMethods(def.ExportedMembers),
		TopLevelExports:    def.TopLevelExports,
		ExportAccessorInfo: def.ExportAccessorInfo,
		Hints:              def.Hints,
		Pos:                def.Pos,
		Ancestors:          facts.Ancestors,
		HasInstances:       facts.HasInstances,
		HasInstanceTests:   facts.HasInstanceTests,
		HasRuntimeTypeInfo: facts.HasRuntimeTypeInfo,
		ClassVersion:       classVersion(def, facts),
	})
}

func versionMethods(defs []ast.MethodDef) []linked.Versioned[ast.MethodDef] {
	if len(defs) == 0 {
		return nil
	}
	methods := make([]linked.Versioned[ast.MethodDef], len(defs))
	for i, def := range defs {
		if def.Body == nil {
			methods[i] = linked.MakeVersioned(
				version.HashTokenOfStrings("abstract", def.Name.Encoded), def)
		} else {
			methods[i] = linked.MakeVersioned(version.HashToken(def.Body), def)
		}
	}
	return methods
}

// classVersion hashes the syntactic and link-computed fields of a class,
// skipping the member collections: those carry per-member tokens and must
// not leak into the class-level key, or a changed method body would
// invalidate artifacts that never looked at it.
func classVersion(def ast.ClassDef, facts ReachabilityFacts) version.Token {
	parts := make([]string, 0, 16+len(def.Interfaces)+len(def.Fields)+len(facts.Ancestors))
	parts = append(parts, def.Name.Encoded, def.Kind.String())
	if def.SuperClass != nil {
		parts = append(parts, def.SuperClass.Encoded)
	}
	parts = append(parts, "|")
	for _, itf := range def.Interfaces {
		parts = append(parts, itf.Encoded)
	}
	parts = append(parts, "|")
	if def.NativeSpec != nil {
		parts = append(parts, def.NativeSpec.Module)
		parts = append(parts, def.NativeSpec.Path...)
	}
	parts = append(parts, "|")
	for _, field := range def.Fields {
		parts = append(parts, field.Name.Encoded, string(field.Type),
			boolMark(field.IsMutable), boolMark(field.IsStatic))
	}
	parts = append(parts, "|")
	for _, decl := range def.TopLevelExports {
		parts = append(parts, exportVersionParts(decl)...)
	}
	parts = append(parts, "|")
	if info := def.ExportAccessorInfo; info != nil {
		parts = append(parts, info.EncodedName,
			boolMark(info.IsStatic), boolMark(info.IsAbstract))
	}
	parts = append(parts, "|",
		strconv.Itoa(int(def.Hints)),
		boolMark(facts.HasInstances),
		boolMark(facts.HasInstanceTests),
		boolMark(facts.HasRuntimeTypeInfo),
		"|")
	parts = append(parts, facts.Ancestors...)
	return version.HashTokenOfStrings(parts...)
}

// exportVersionParts flattens one export declaration for the class-level
// hash. The variant tag is part of the state: a class export and a
// constructor export with the same name emit different surfaces, so they
// must not share a class-level version.
func exportVersionParts(decl ast.TopLevelExport) []string {
	switch d := decl.(type) {
	case *ast.ConstructorExport:
		return []string{"ctor", d.Name}
	case *ast.ModuleExport:
		return []string{"module", d.Name}
	case *ast.ClassExport:
		return []string{"class", d.Name}
	case *ast.MethodExport:
		return []string{"method", linked.ExportName(decl)}
	case *ast.FieldExport:
		return []string{"field", d.Name, string(d.Type)}
	default:
		panic("Internal error")
	}
}

func boolMark(b bool) string {
	if b {
		return "t"
	}
	return "f"
}

// MakeLinkedProgram links every definition against its facts. Definitions
// without facts were not reached by the analyzer and are dropped: the
// emitter must never see a class the analyzer has not vouched for.
func MakeLinkedProgram(defs []ast.ClassDef, facts map[string]ReachabilityFacts) *LinkedProgram {
	classes := btree.NewMap[string, *linked.Class](32)
	for _, def := range defs {
		classFacts, ok := facts[def.Name.Encoded]
		if !ok {
			continue
		}
		classes.Set(def.Name.Encoded, LinkClass(def, classFacts))
	}
	return &LinkedProgram{classes: classes}
}

// MakeLinkedProgramOf builds a program directly from already-linked
// classes, mostly for later phases that re-link a subset.
func MakeLinkedProgramOf(classes []*linked.Class) *LinkedProgram {
	index := btree.NewMap[string, *linked.Class](32)
	for _, c := range classes {
		index.Set(c.EncodedName(), c)
	}
	return &LinkedProgram{classes: index}
}

func (p *LinkedProgram) Len() int {
	return p.classes.Len()
}

func (p *LinkedProgram) Lookup(encodedName string) (*linked.Class, bool) {
	return p.classes.Get(encodedName)
}

// Classes returns every class in ascending encoded-name order. Iterating
// in this order keeps emit output and cache traversal deterministic.
func (p *LinkedProgram) Classes() []*linked.Class {
	classes := make([]*linked.Class, 0, p.classes.Len())
	p.classes.Scan(func(_ string, c *linked.Class) bool {
		classes = append(classes, c)
		return true
	})
	return classes
}

// WithClass returns a new program with one class added or replaced. The
// receiver is unchanged; the index is shared copy-on-write.
func (p *LinkedProgram) WithClass(c *linked.Class) *LinkedProgram {
	classes := p.classes.Copy()
	classes.Set(c.EncodedName(), c)
	return &LinkedProgram{classes: classes}
}

// Fingerprint is a cheap whole-program shape check: it mixes every class's
// encoded name and class-level version. Two runs with the same fingerprint
// almost certainly have the same class set with the same class-level
// state, which lets a driver skip cache traversal entirely. It is a hint,
// not a cache key; absent versions are mixed in as a fixed marker.
func (p *LinkedProgram) Fingerprint() uint32 {
	var seed uint32
	p.classes.Scan(func(name string, c *linked.Class) bool {
		seed = version.HashCombineString(seed, name)
		if v := c.ClassVersion(); v.OK() {
			seed = version.HashCombineString(seed, v.Value())
		} else {
			seed = version.HashCombine(seed, 0)
		}
		return true
	})
	return seed
}
