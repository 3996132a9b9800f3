package linked

import (
	"github.com/voltlang/voltlink/internal/ast"
)

// ToInfo projects the class down to the summary consumed by the
// incremental cache and by cross-class lookups. It never touches method
// bodies, so a consumer can decide whether to skip recomputation without
// deserializing any of them.
//
// The concatenation order of the method infos is fixed: static methods,
// instance methods, abstract methods, exported members, then the export
// accessor info if present. Downstream diffing compares summaries
// positionally across runs and relies on this.
func (c *Class) ToInfo() ast.ClassInfo {
	n := len(c.staticMethods) + len(c.instanceMethods) + len(c.abstractMethods) + len(c.exportedMembers)
	if c.exportAccessorInfo != nil {
		n++
	}

	var methodInfos []ast.MethodInfo
	if n > 0 {
		methodInfos = make([]ast.MethodInfo, 0, n)
		for _, m := range c.staticMethods {
			methodInfos = append(methodInfos, m.Value.Info())
		}
		for _, m := range c.instanceMethods {
			methodInfos = append(methodInfos, m.Value.Info())
		}
		for _, m := range c.abstractMethods {
			methodInfos = append(methodInfos, m.Value.Info())
		}
		for _, m := range c.exportedMembers {
			methodInfos = append(methodInfos, m.Value.Info())
		}
		if c.exportAccessorInfo != nil {
			methodInfos = append(methodInfos, *c.exportAccessorInfo)
		}
	}

	var superClass string
	if c.superClass != nil {
		superClass = c.superClass.Encoded
	}

	var interfaces []string
	if len(c.interfaces) > 0 {
		interfaces = make([]string, len(c.interfaces))
		for i, itf := range c.interfaces {
			interfaces[i] = itf.Encoded
		}
	}

	return ast.ClassInfo{
		EncodedName: c.name.Encoded,
		IsExported:  c.IsExported(),
		Kind:        c.kind,
		SuperClass:  superClass,
		Interfaces:  interfaces,
		MethodInfos: methodInfos,
	}
}
