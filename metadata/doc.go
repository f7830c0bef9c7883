// Package metadata extracts normalized metadata records from parsed TypeQL
// function definitions.
//
// # Overview
//
// Given a *parser.FunctionDefinition produced by the typeql/parser package,
// extraction resolves the signature (name, ordered parameters, output shape),
// walks the match body and return clause to collect every referenced function
// in first-seen order, classifies the return clause into a canonical return
// expression string, and reproduces the function body as a re-indented code
// block. The result is a single JSON-serializable FunctionMetadata record.
//
// Extraction is a pure, synchronous computation over one immutable tree: it
// performs no I/O and shares no state between definitions, so batches are
// processed in parallel by ExtractBatch with per-definition error isolation.
//
// # Example Usage
//
//	def, err := parser.ParseFunction(source, "tax.tql")
//	if err != nil {
//		log.Fatal(err)
//	}
//	meta, err := metadata.Extract(def, def.Source)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(meta.Name, meta.ReferencedFunctions)
//
// Unresolvable details degrade softly: an unknown type reference becomes the
// "unknown" sentinel and an unclassifiable return clause leaves
// ReturnExpression nil. Only a parse failure or a traversal depth overrun
// (DepthError) aborts extraction for a definition.
package metadata
