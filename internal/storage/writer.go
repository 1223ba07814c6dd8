package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/diffnav/bindiff/pkg/types"
)

// InsertMetadata writes the single metadata row. Called exactly once
// per result file, before any file or match rows. file1/file2 point at
// the two file rows that AddFile will create, in insertion order.
func (s *DB) InsertMetadata(ctx context.Context, version, description string, created, modified time.Time, similarity, confidence float64) error {
	_, err := s.querier().ExecContext(ctx, `
		INSERT INTO metadata (version, file1, file2, description, created, modified, similarity, confidence)
		VALUES (?, 1, 2, ?, ?, ?, ?, ?)
	`, version, description, created.Format(TimeLayout), modified.Format(TimeLayout), similarity, confidence)
	if err != nil {
		return fmt.Errorf("inserting metadata: %w", err)
	}
	return nil
}

// InsertFile appends one file row and sets f.ID to the assigned
// surrogate key. Loaders pair file rows positionally, so the two calls
// per result file must come primary first, secondary second.
func (s *DB) InsertFile(ctx context.Context, f *types.File) error {
	result, err := s.querier().ExecContext(ctx, `
		INSERT INTO file (filename, exefilename, hash, functions, libfunctions, calls,
		                  basicblocks, libbasicblocks, edges, libedges, instructions, libinstructions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, f.Filename, f.ExeFilename, f.Hash, f.Functions, f.LibFunctions, f.Calls,
		f.BasicBlocks, f.LibBasicBlocks, f.Edges, f.LibEdges, f.Instructions, f.LibInstructions)
	if err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

// InsertFunctionMatch appends one function row and returns its
// surrogate key for use by subsequent basic-block inserts. The flags,
// evaluate, commentsported, edge and instruction columns are written
// with the fixed defaults BinDiff emits for externally produced
// matches; the algorithm tag is always "manual".
func (s *DB) InsertFunctionMatch(ctx context.Context, addr1, addr2 uint64, name1, name2 string, similarity, confidence float64, identicalBasicBlocks int) (int64, error) {
	result, err := s.querier().ExecContext(ctx, `
		INSERT INTO function (address1, address2, name1, name2, similarity, confidence,
		                      flags, algorithm, evaluate, commentsported, basicblocks, edges, instructions)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, 0, 0, ?, 0, 0)
	`, types.StoredAddress(addr1), types.StoredAddress(addr2), name1, name2,
		similarity, confidence, int(types.FunctionAlgorithmManual), identicalBasicBlocks)
	if err != nil {
		return 0, fmt.Errorf("inserting function match: %w", err)
	}
	return result.LastInsertId()
}

// InsertBasicBlockMatch appends one basicblock row owned by the given
// function match and returns its surrogate key. algorithm and evaluate
// carry the fixed defaults (edges prime product, not evaluated).
func (s *DB) InsertBasicBlockMatch(ctx context.Context, functionID int64, addr1, addr2 uint64) (int64, error) {
	result, err := s.querier().ExecContext(ctx, `
		INSERT INTO basicblock (functionid, address1, address2, algorithm, evaluate)
		VALUES (?, ?, ?, ?, 0)
	`, functionID, types.StoredAddress(addr1), types.StoredAddress(addr2),
		int(types.BasicBlockAlgorithmEdgesPrimeProduct))
	if err != nil {
		return 0, fmt.Errorf("inserting basic block match: %w", err)
	}
	return result.LastInsertId()
}

// InsertInstructionMatch appends one instruction row owned by the
// given basic-block match.
func (s *DB) InsertInstructionMatch(ctx context.Context, basicBlockID int64, addr1, addr2 uint64) error {
	_, err := s.querier().ExecContext(ctx, `
		INSERT INTO instruction (basicblockid, address1, address2)
		VALUES (?, ?, ?)
	`, basicBlockID, types.StoredAddress(addr1), types.StoredAddress(addr2))
	if err != nil {
		return fmt.Errorf("inserting instruction match: %w", err)
	}
	return nil
}

// UpdateFileInfo overwrites a file row's function, library-function,
// basic-block and instruction counters.
func (s *DB) UpdateFileInfo(ctx context.Context, fileID int64, functions, libFunctions, basicBlocks, instructions int) error {
	_, err := s.querier().ExecContext(ctx, `
		UPDATE file
		SET functions = ?, libfunctions = ?, basicblocks = ?, instructions = ?
		WHERE id = ?
	`, functions, libFunctions, basicBlocks, instructions, fileID)
	if err != nil {
		return fmt.Errorf("updating file info: %w", err)
	}
	return nil
}

// UpdateFunctionBasicBlocks overwrites the stored identical
// basic-block count of a function match.
func (s *DB) UpdateFunctionBasicBlocks(ctx context.Context, functionID int64, count int) error {
	_, err := s.querier().ExecContext(ctx, `
		UPDATE function SET basicblocks = ? WHERE id = ?
	`, count, functionID)
	if err != nil {
		return fmt.Errorf("updating function basic block count: %w", err)
	}
	return nil
}
