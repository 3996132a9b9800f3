package linker

// This is the surface consumed by pipeline drivers: feed it the front-end
// definitions and the reachability analyzer's facts, get back the linked
// program, the per-class export names for the emitter, and warm caches.
// Linking one class is independent of linking another, so the work is
// spread over data-parallel workers; everything the workers share is
// immutable input.

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/voltlang/voltlink/internal/ast"
	"github.com/voltlang/voltlink/internal/cache"
	"github.com/voltlang/voltlink/internal/graph"
	"github.com/voltlang/voltlink/internal/linked"
	"github.com/voltlang/voltlink/internal/logger"
)

type Options struct {
	// Number of parallel link workers; zero means one per CPU
	Workers int

	// Diagnostics log; the zero value is silent
	Log logger.Log

	// Optional warm cache shared across runs in this process
	Caches *cache.CacheSet

	// Optional persistent store shared across processes
	Store *cache.Store
}

type Result struct {
	Program *graph.LinkedProgram

	// The ordered public surface of each exported class, keyed by encoded
	// name. Classes without top-level exports have no entry.
	ExportNames map[string][]string

	// Summaries for every linked class, in the program's deterministic
	// class order
	Infos []ast.ClassInfo

	// How many summaries were served from cache instead of recomputed
	InfoCacheHits int
}

// Link builds the linked program. Definitions the analyzer produced no
// facts for are unreachable; they are dropped with a warning, matching the
// program constructor's contract.
func Link(options Options, defs []ast.ClassDef, facts map[string]graph.ReachabilityFacts) Result {
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(defs) {
		workers = len(defs)
	}

	classes := make([]*linked.Class, len(defs))
	if workers > 1 {
		waitGroup := sync.WaitGroup{}
		next := 0
		var nextMutex sync.Mutex
		for w := 0; w < workers; w++ {
			waitGroup.Add(1)
			go func() {
				defer waitGroup.Done()
				for {
					nextMutex.Lock()
					i := next
					next++
					nextMutex.Unlock()
					if i >= len(defs) {
						return
					}
					if classFacts, ok := facts[defs[i].Name.Encoded]; ok {
						classes[i] = graph.LinkClass(defs[i], classFacts)
					} else {
						warnUnreachable(options.Log, defs[i])
					}
				}
			}()
		}
		waitGroup.Wait()
	} else {
		for i, def := range defs {
			if classFacts, ok := facts[def.Name.Encoded]; ok {
				classes[i] = graph.LinkClass(def, classFacts)
			} else {
				warnUnreachable(options.Log, def)
			}
		}
	}

	reachable := classes[:0:0]
	for _, c := range classes {
		if c != nil {
			reachable = append(reachable, c)
		}
	}
	program := graph.MakeLinkedProgramOf(reachable)

	result := Result{
		Program:     program,
		ExportNames: make(map[string][]string),
	}
	for _, c := range program.Classes() {
		if c.IsExported() {
			result.ExportNames[c.EncodedName()] = c.TopLevelExportNames()
		}
		result.Infos = append(result.Infos, summarize(options, c, &result.InfoCacheHits))
	}
	return result
}

func warnUnreachable(log logger.Log, def ast.ClassDef) {
	if log.AddMsg == nil {
		return
	}
	log.AddWarning(nil, fmt.Sprintf(
		"%q was dropped because the reachability analysis produced no facts for it",
		ast.DecodeEncodedName(def.Name.Encoded)))
}

// summarize produces the class's summary, going through the caches when a
// complete combined version is available.
func summarize(options Options, c *linked.Class, hits *int) ast.ClassInfo {
	key := c.CombinedVersion()
	if !key.OK() {
		return c.ToInfo()
	}

	if options.Caches != nil {
		if info, ok := options.Caches.InfoCache.Get(c.EncodedName(), key); ok {
			*hits++
			return info
		}
	}
	if options.Store != nil {
		if info, ok, err := options.Store.GetInfo(c.EncodedName(), key); err == nil && ok {
			if options.Caches != nil {
				options.Caches.InfoCache.Put(c.EncodedName(), key, info)
			}
			*hits++
			return info
		}
	}

	info := c.ToInfo()
	if options.Caches != nil {
		options.Caches.InfoCache.Put(c.EncodedName(), key, info)
	}
	if options.Store != nil {
		// Store failures degrade to a cold cache next run; they are not
		// link errors
		_ = options.Store.PutInfo(c.EncodedName(), key, info)
	}
	return info
}
