package storage

import (
	"context"
	"database/sql"

	"github.com/diffnav/bindiff/pkg/types"
)

// Metadata is the single metadata row as stored. Timestamps stay
// strings here; parsing them against TimeLayout is the loader's job so
// a malformed value fails the whole load.
type Metadata struct {
	Version     string
	Description string
	Created     string
	Modified    string
	Similarity  float64
	Confidence  float64
}

// BasicBlockRow is one basicblock row with its owning function match
// still referenced by surrogate key.
type BasicBlockRow struct {
	ID         int64
	FunctionID int64
	Address1   uint64
	Address2   uint64
	Algorithm  types.BasicBlockAlgorithm
}

// InstructionRow is one instruction row; instruction matches have no
// surrogate key of their own.
type InstructionRow struct {
	BasicBlockID int64
	Address1     uint64
	Address2     uint64
}

// ReadMetadata fetches the single metadata row. The timestamp columns
// are cast to TEXT: their DATE decltype makes both drivers surface
// them as time.Time, which database/sql would re-render as RFC3339
// and break the fixed-layout parse downstream.
func (s *DB) ReadMetadata(ctx context.Context) (*Metadata, error) {
	var m Metadata
	var version, description sql.NullString
	err := s.querier().QueryRowContext(ctx, `
		SELECT version, description, CAST(created AS TEXT), CAST(modified AS TEXT), similarity, confidence
		FROM metadata
	`).Scan(&version, &description, &m.Created, &m.Modified, &m.Similarity, &m.Confidence)
	if err != nil {
		return nil, err
	}
	m.Version = version.String
	m.Description = description.String
	return &m, nil
}

// ReadFiles fetches every file row in insertion order. The caller
// binds the first row to the primary binary and the second to the
// secondary.
func (s *DB) ReadFiles(ctx context.Context) ([]*types.File, error) {
	rows, err := s.querier().QueryContext(ctx, `
		SELECT id, filename, exefilename, hash, functions, libfunctions, calls,
		       basicblocks, libbasicblocks, edges, libedges, instructions, libinstructions
		FROM file ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	files := make([]*types.File, 0, 2)
	for rows.Next() {
		var f types.File
		err := rows.Scan(
			&f.ID, &f.Filename, &f.ExeFilename, &f.Hash,
			&f.Functions, &f.LibFunctions, &f.Calls,
			&f.BasicBlocks, &f.LibBasicBlocks, &f.Edges, &f.LibEdges,
			&f.Instructions, &f.LibInstructions,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}

// ReadFunctionMatches fetches every function row with addresses
// normalized to their unsigned form.
func (s *DB) ReadFunctionMatches(ctx context.Context) ([]*types.FunctionMatch, error) {
	rows, err := s.querier().QueryContext(ctx, `
		SELECT id, address1, name1, address2, name2, similarity, confidence, algorithm
		FROM function ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	matches := make([]*types.FunctionMatch, 0)
	for rows.Next() {
		var m types.FunctionMatch
		var addr1, addr2 int64
		var algo int
		err := rows.Scan(&m.ID, &addr1, &m.Name1, &addr2, &m.Name2, &m.Similarity, &m.Confidence, &algo)
		if err != nil {
			return nil, err
		}
		m.Address1 = types.AddressFromStored(addr1)
		m.Address2 = types.AddressFromStored(addr2)
		m.Algorithm = types.FunctionAlgorithm(algo)
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

// ReadBasicBlockRows fetches every basicblock row.
func (s *DB) ReadBasicBlockRows(ctx context.Context) ([]BasicBlockRow, error) {
	rows, err := s.querier().QueryContext(ctx, `
		SELECT id, functionid, address1, address2, algorithm FROM basicblock
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make([]BasicBlockRow, 0)
	for rows.Next() {
		var r BasicBlockRow
		var addr1, addr2 int64
		var algo int
		if err := rows.Scan(&r.ID, &r.FunctionID, &addr1, &addr2, &algo); err != nil {
			return nil, err
		}
		r.Address1 = types.AddressFromStored(addr1)
		r.Address2 = types.AddressFromStored(addr2)
		r.Algorithm = types.BasicBlockAlgorithm(algo)
		result = append(result, r)
	}
	return result, rows.Err()
}

// ReadInstructionRows fetches every instruction row.
func (s *DB) ReadInstructionRows(ctx context.Context) ([]InstructionRow, error) {
	rows, err := s.querier().QueryContext(ctx, `
		SELECT basicblockid, address1, address2 FROM instruction
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make([]InstructionRow, 0)
	for rows.Next() {
		var r InstructionRow
		var addr1, addr2 int64
		if err := rows.Scan(&r.BasicBlockID, &addr1, &addr2); err != nil {
			return nil, err
		}
		r.Address1 = types.AddressFromStored(addr1)
		r.Address2 = types.AddressFromStored(addr2)
		result = append(result, r)
	}
	return result, rows.Err()
}
