// Package storage provides the SQLite layer under a BinDiff result
// file.
//
// The storage layer manages:
//   - The fixed six-relation result-file schema and its installation
//   - Append operations for file rows and function / basic-block /
//     instruction matches
//   - The two counter-update operations
//   - Full-table reads the eager loader consumes
//
// # Database Schema
//
// Tables:
//   - file: one row per analyzed binary, exactly two per result file
//   - metadata: one row of differ version, timestamps and overall scores
//   - functionalgorithm, basicblockalgorithm: enumeration lookup tables
//   - function: matched function pairs
//   - basicblock: matched basic-block pairs, keyed to function matches
//   - instruction: matched instruction pairs, keyed to basic-block matches
//
// The column layout is the on-disk contract shared with BinDiff and
// its disassembler plugins; nothing here may be reordered or retyped.
//
// # Transactions
//
// A DB opened for writing runs one long-lived transaction. Every
// insert and update lands in it; Commit makes the batch durable and
// opens the next transaction. Closing with uncommitted writes discards
// them.
//
// # Build Tags
//
// The package supports two build configurations:
//
// CGO build (cgosqlite tag), using github.com/mattn/go-sqlite3:
//
//	CGO_ENABLED=1 go build -tags "cgosqlite" ./...
//
// Pure Go build (default), using modernc.org/sqlite:
//
//	CGO_ENABLED=0 go build ./...
package storage
