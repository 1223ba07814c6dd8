// Package bindiff reads and writes BinDiff result files.
//
// A result file is a SQLite database recording a structural comparison
// between two binaries: which functions, basic blocks and instructions
// in the primary binary correspond to which in the secondary, with
// per-match similarity and confidence scores.
//
// # Reading
//
//	diff, err := bindiff.Open(ctx, "ls_vs_ls.BinDiff", bindiff.ReadOnly)
//	if err != nil {
//	    return err
//	}
//	defer diff.Close()
//
//	m := diff.PrimaryFunctionMatches[0x401000]
//	fmt.Printf("%s -> %s (%.3f)\n", m.Name1, m.Name2, m.Similarity)
//
// Opening read-only loads the entire file eagerly; every index is
// built before Open returns, and a referential-integrity or parse
// failure aborts the open.
//
// # Writing
//
// A diffing engine populates a fresh file incrementally:
//
//	diff, err := bindiff.Create(ctx, path, "differ 1.0", "", 0.92, 0.87)
//	if err != nil {
//	    return err
//	}
//	defer diff.Close()
//
//	diff.AddFile(ctx, bindiff.FileInfo{ExportName: "a.BinExport", Hash: hashA})
//	diff.AddFile(ctx, bindiff.FileInfo{ExportName: "b.BinExport", Hash: hashB})
//
//	funcID, _ := diff.AddFunctionMatch(ctx, 0x1000, 0x2000, "f1", "f2", 0.87, 0.5, 0)
//	bbID, _ := diff.AddBasicBlockMatch(ctx, funcID, 0x1100, 0x2100)
//	diff.AddInstructionMatch(ctx, bbID, 0x1102, 0x2104)
//
//	diff.Commit(ctx)
//
// Writes accumulate in one transaction until Commit; the library never
// commits on its own after creation. Read-write handles build no
// indices, so the lookup fields and the derived accessors are only
// meaningful on read-only handles.
package bindiff
