package ast

// Summary records exchanged with the incremental cache. These are the only
// things a cache consumer needs to load to decide whether recomputation can
// be skipped; method bodies are deliberately unreachable from here. Both
// types are serialized with go-json by the persistent store, hence the tags.

type MethodInfo struct {
	EncodedName string `json:"encodedName"`
	IsStatic    bool   `json:"isStatic,omitempty"`
	IsAbstract  bool   `json:"isAbstract,omitempty"`
}

// A ClassInfo summarizes one linked class. The order of MethodInfos is a
// contract: static methods, then instance methods, then abstract methods,
// then exported members, then the export accessor info if present.
// Downstream diffing relies on positional stability between two summaries
// of structurally-equal classes.
type ClassInfo struct {
	EncodedName string       `json:"encodedName"`
	IsExported  bool         `json:"isExported,omitempty"`
	Kind        ClassKind    `json:"kind"`
	SuperClass  string       `json:"superClass,omitempty"`
	Interfaces  []string     `json:"interfaces,omitempty"`
	MethodInfos []MethodInfo `json:"methodInfos,omitempty"`
}
