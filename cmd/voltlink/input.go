package main

// Decoding of the front-end's class-definition dump. The dump is a plain
// JSON encoding of the definition types; the only wrinkle is the top-level
// export list, which is a sum type and needs a tag field to pick the
// variant.

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/voltlang/voltlink/internal/ast"
	"github.com/voltlang/voltlink/internal/graph"
)

type inputFile struct {
	Classes []inputClass                       `json:"classes"`
	Facts   map[string]graph.ReachabilityFacts `json:"facts"`
}

type inputClass struct {
	Name            string              `json:"name"`
	Kind            string              `json:"kind"`
	SuperClass      string              `json:"superClass,omitempty"`
	Interfaces      []string            `json:"interfaces,omitempty"`
	Native          *inputNativeSpec    `json:"native,omitempty"`
	Fields          []inputField        `json:"fields,omitempty"`
	StaticMethods   []inputMethod       `json:"staticMethods,omitempty"`
	InstanceMethods []inputMethod       `json:"instanceMethods,omitempty"`
	AbstractMethods []inputMethod       `json:"abstractMethods,omitempty"`
	ExportedMembers []inputMethod       `json:"exportedMembers,omitempty"`
	TopLevelExports []inputExport       `json:"topLevelExports,omitempty"`
	ExportAccessor  *ast.MethodInfo     `json:"exportAccessor,omitempty"`
	Inline          bool                `json:"inline,omitempty"`
	NoInline        bool                `json:"noInline,omitempty"`
}

type inputNativeSpec struct {
	Module string   `json:"module,omitempty"`
	Path   []string `json:"path"`
}

type inputField struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Mutable bool   `json:"mutable,omitempty"`
	Static  bool   `json:"static,omitempty"`
}

type inputMethod struct {
	Name     string `json:"name"`
	Key      string `json:"key,omitempty"`
	KeyKind  string `json:"keyKind,omitempty"`
	Static   bool   `json:"static,omitempty"`
	Abstract bool   `json:"abstract,omitempty"`
	Body     []byte `json:"body,omitempty"`
}

type inputExport struct {
	Kind   string       `json:"kind"`
	Name   string       `json:"name,omitempty"`
	Type   string       `json:"type,omitempty"`
	Method *inputMethod `json:"method,omitempty"`
}

func readInput(path string) (*inputFile, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read class definitions at `%s`: %w", path, err)
	}
	input := &inputFile{}
	if err := json.Unmarshal(buff, input); err != nil {
		return nil, fmt.Errorf("error parsing class definitions at `%s`: %w", path, err)
	}
	return input, nil
}

func (in *inputFile) classDefs() ([]ast.ClassDef, error) {
	defs := make([]ast.ClassDef, 0, len(in.Classes))
	for _, c := range in.Classes {
		def, err := c.classDef()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (c *inputClass) classDef() (ast.ClassDef, error) {
	kind, err := classKind(c.Kind)
	if err != nil {
		return ast.ClassDef{}, fmt.Errorf("class `%s`: %w", c.Name, err)
	}

	def := ast.ClassDef{
		Name:               ast.EncodeName(c.Name),
		Kind:               kind,
		Fields:             make([]ast.FieldDef, 0, len(c.Fields)),
		ExportAccessorInfo: c.ExportAccessor,
	}
	if c.SuperClass != "" {
		name := ast.EncodeName(c.SuperClass)
		def.SuperClass = &name
	}
	for _, itf := range c.Interfaces {
		def.Interfaces = append(def.Interfaces, ast.EncodeName(itf))
	}
	if c.Native != nil {
		def.NativeSpec = &ast.NativeLoadSpec{Module: c.Native.Module, Path: c.Native.Path}
	}
	for _, f := range c.Fields {
		def.Fields = append(def.Fields, ast.FieldDef{
			Name:      ast.EncodeName(f.Name),
			Type:      ast.TypeRef(f.Type),
			IsMutable: f.Mutable,
			IsStatic:  f.Static,
		})
	}
	def.StaticMethods = methodDefs(c.StaticMethods)
	def.InstanceMethods = methodDefs(c.InstanceMethods)
	def.AbstractMethods = methodDefs(c.AbstractMethods)
	def.ExportedMembers = methodDefs(c.ExportedMembers)
	if c.Inline {
		def.Hints |= ast.HintInline
	}
	if c.NoInline {
		def.Hints |= ast.HintNoInline
	}

	for _, e := range c.TopLevelExports {
		decl, err := e.exportDecl()
		if err != nil {
			return ast.ClassDef{}, fmt.Errorf("class `%s`: %w", c.Name, err)
		}
		def.TopLevelExports = append(def.TopLevelExports, decl)
	}
	return def, nil
}

func methodDefs(methods []inputMethod) []ast.MethodDef {
	if len(methods) == 0 {
		return nil
	}
	defs := make([]ast.MethodDef, len(methods))
	for i, m := range methods {
		defs[i] = m.methodDef()
	}
	return defs
}

func (m *inputMethod) methodDef() ast.MethodDef {
	def := ast.MethodDef{
		Name: ast.EncodeName(m.Name),
		Body: m.Body,
	}
	if m.Static {
		def.Flags |= ast.MethodIsStatic
	}
	if m.Abstract {
		def.Flags |= ast.MethodIsAbstract
	}
	if m.Key == "" && m.KeyKind == "" {
		// No explicit key at all: the method's own name is the key. An
		// explicit keyKind keeps whatever key text came with it, even an
		// empty string literal.
		def.Key = ast.PropertyKey{Text: m.Name, Kind: ast.PropertyKeyIdent}
	} else {
		def.Key = ast.PropertyKey{Text: m.Key, Kind: propertyKeyKind(m.KeyKind)}
	}
	return def
}

func (e *inputExport) exportDecl() (ast.TopLevelExport, error) {
	switch e.Kind {
	case "constructor":
		return &ast.ConstructorExport{Name: e.Name}, nil
	case "module":
		return &ast.ModuleExport{Name: e.Name}, nil
	case "class":
		return &ast.ClassExport{Name: e.Name}, nil
	case "method":
		if e.Method == nil {
			return nil, fmt.Errorf("method export is missing its method")
		}
		return &ast.MethodExport{Method: e.Method.methodDef()}, nil
	case "field":
		return &ast.FieldExport{Name: e.Name, Type: ast.TypeRef(e.Type)}, nil
	default:
		return nil, fmt.Errorf("unknown export kind `%s`", e.Kind)
	}
}

func classKind(kind string) (ast.ClassKind, error) {
	switch kind {
	case "class":
		return ast.KindClass, nil
	case "interface":
		return ast.KindInterface, nil
	case "trait":
		return ast.KindTrait, nil
	case "module":
		return ast.KindModuleClass, nil
	case "native":
		return ast.KindNativeClass, nil
	default:
		return 0, fmt.Errorf("unknown class kind `%s`", kind)
	}
}

func propertyKeyKind(kind string) ast.PropertyKeyKind {
	switch kind {
	case "literal":
		return ast.PropertyKeyStringLiteral
	case "computed":
		return ast.PropertyKeyComputed
	default:
		return ast.PropertyKeyIdent
	}
}
