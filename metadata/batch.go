package metadata

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/typeql-tools/funcmeta/typeql/parser"
)

// Result is the outcome of extracting one definition in a batch. Exactly one
// of Metadata and Err is set.
type Result struct {
	Metadata *FunctionMetadata
	Err      error
}

// ExtractBatch extracts metadata from a batch of parsed definitions.
// Definitions share no state, so the batch fans out across workers; results
// are returned in input order and a failed definition never affects its
// siblings. workers <= 0 selects one worker per CPU.
func ExtractBatch(defs []*parser.FunctionDefinition, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(defs) {
		workers = len(defs)
	}

	results := make([]Result, len(defs))
	if len(defs) == 0 {
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				def := defs[i]
				if def == nil {
					results[i] = Result{Err: fmt.Errorf("extract: nil definition at index %d", i)}
					continue
				}
				meta, err := Extract(def, def.Source)
				results[i] = Result{Metadata: meta, Err: err}
			}
		}()
	}

	for i := range defs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
