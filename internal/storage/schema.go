package storage

import (
	"context"
	"fmt"

	"github.com/diffnav/bindiff/pkg/types"
)

// schema is the BinDiff result-file layout. Column order and types are
// the on-disk contract consumed by BinDiff itself and the IDA/Ghidra
// plugins, so they must not drift.
const schema = `
CREATE TABLE file (id INTEGER PRIMARY KEY, filename TEXT, exefilename TEXT, hash CHARACTER(40),
functions INT, libfunctions INT, calls INT, basicblocks INT, libbasicblocks INT, edges INT,
libedges INT, instructions INT, libinstructions INT);

CREATE TABLE metadata (version TEXT, file1 INTEGER, file2 INTEGER, description TEXT, created DATE,
modified DATE, similarity DOUBLE PRECISION, confidence DOUBLE PRECISION,
FOREIGN KEY(file1) REFERENCES file(id), FOREIGN KEY(file2) REFERENCES file(id));

CREATE TABLE functionalgorithm (id INTEGER PRIMARY KEY, name TEXT);

CREATE TABLE function (id INTEGER PRIMARY KEY, address1 BIGINT, name1 TEXT, address2 BIGINT,
name2 TEXT, similarity DOUBLE PRECISION, confidence DOUBLE PRECISION, flags INTEGER,
algorithm SMALLINT, evaluate BOOLEAN, commentsported BOOLEAN, basicblocks INTEGER,
edges INTEGER, instructions INTEGER, UNIQUE(address1, address2),
FOREIGN KEY(algorithm) REFERENCES functionalgorithm(id));

CREATE TABLE basicblockalgorithm (id INTEGER PRIMARY KEY, name TEXT);

CREATE TABLE basicblock (id INTEGER, functionid INT, address1 BIGINT, address2 BIGINT,
algorithm SMALLINT, evaluate BOOLEAN, PRIMARY KEY(id), FOREIGN KEY(functionid) REFERENCES function(id),
FOREIGN KEY(algorithm) REFERENCES basicblockalgorithm(id));

CREATE TABLE instruction (basicblockid INT, address1 BIGINT, address2 BIGINT,
FOREIGN KEY(basicblockid) REFERENCES basicblock(id));
`

// installSchema creates the relations and fills both algorithm lookup
// tables, one row per enumeration member. Runs outside the write
// transaction so the schema is durable before any match lands.
func (s *DB) installSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for _, algo := range types.FunctionAlgorithms() {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO functionalgorithm (name) VALUES (?)",
			fmt.Sprintf("function: %s", algo))
		if err != nil {
			return fmt.Errorf("filling functionalgorithm: %w", err)
		}
	}

	for _, algo := range types.BasicBlockAlgorithms() {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO basicblockalgorithm (name) VALUES (?)",
			fmt.Sprintf("basicBlock: %s", algo))
		if err != nil {
			return fmt.Errorf("filling basicblockalgorithm: %w", err)
		}
	}

	return nil
}
