package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffnav/bindiff/pkg/types"
)

func setupTestDB(t *testing.T) (*DB, string) {
	path := filepath.Join(t.TempDir(), "test.BinDiff")
	db, err := Create(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, db)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestCreateInstallsSchema(t *testing.T) {
	db, _ := setupTestDB(t)

	ctx := context.Background()
	var count int
	err := db.querier().QueryRowContext(ctx, "SELECT COUNT(*) FROM functionalgorithm").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 19, count)

	err = db.querier().QueryRowContext(ctx, "SELECT COUNT(*) FROM basicblockalgorithm").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 20, count)

	var name string
	err = db.querier().QueryRowContext(ctx, "SELECT name FROM functionalgorithm WHERE id = 19").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "function: manual", name)

	err = db.querier().QueryRowContext(ctx, "SELECT name FROM basicblockalgorithm WHERE id = 1").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "basicBlock: edges prime product", name)
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.BinDiff")
	_, err := Open(context.Background(), path, ModeReadOnly)
	assert.Error(t, err)
}

func TestInsertFile(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	primary := &types.File{
		Filename:     "ls_v1",
		ExeFilename:  "ls",
		Hash:         "aabbcc",
		Functions:    120,
		LibFunctions: 30,
		Calls:        400,
		BasicBlocks:  900,
		Instructions: 4000,
	}
	require.NoError(t, db.InsertFile(ctx, primary))
	assert.Equal(t, int64(1), primary.ID)

	secondary := &types.File{Filename: "ls_v2", ExeFilename: "ls", Hash: "ddeeff"}
	require.NoError(t, db.InsertFile(ctx, secondary))
	assert.Equal(t, int64(2), secondary.ID)

	files, err := db.ReadFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, primary, files[0])
	assert.Equal(t, secondary, files[1])
}

func TestInsertMetadata(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	created := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	err := db.InsertMetadata(ctx, "differ 1.0", "test diff", created, created, 0.8765, 0.5)
	require.NoError(t, err)

	meta, err := db.ReadMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, "differ 1.0", meta.Version)
	assert.Equal(t, "test diff", meta.Description)
	assert.Equal(t, "2024-05-17 10:30:00", meta.Created)
	assert.Equal(t, "2024-05-17 10:30:00", meta.Modified)
	assert.InDelta(t, 0.8765, meta.Similarity, 1e-9)
	assert.InDelta(t, 0.5, meta.Confidence, 1e-9)
}

func TestReadMetadataAfterReopen(t *testing.T) {
	db, path := setupTestDB(t)
	ctx := context.Background()

	created := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	require.NoError(t, db.InsertMetadata(ctx, "differ 1.0", "", created, created, 0.9, 0.9))
	require.NoError(t, db.Commit(ctx))
	require.NoError(t, db.Close())

	reopened, err := Open(ctx, path, ModeReadOnly)
	require.NoError(t, err)
	defer reopened.Close()

	// The DATE decltype must not leak a driver-side time.Time
	// rendering; the stored text comes back verbatim.
	meta, err := reopened.ReadMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-17 10:30:00", meta.Created)
	_, err = time.Parse(TimeLayout, meta.Modified)
	assert.NoError(t, err)
}

func TestInsertFunctionMatchDefaults(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	id, err := db.InsertFunctionMatch(ctx, 0x1000, 0x2000, "f1", "f2", 0.87, 0.5, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// The bookkeeping columns carry fixed defaults.
	var flags, algorithm, evaluate, commentsported, basicblocks, edges, instructions int
	err = db.querier().QueryRowContext(ctx, `
		SELECT flags, algorithm, evaluate, commentsported, basicblocks, edges, instructions
		FROM function WHERE id = ?
	`, id).Scan(&flags, &algorithm, &evaluate, &commentsported, &basicblocks, &edges, &instructions)
	require.NoError(t, err)
	assert.Equal(t, 0, flags)
	assert.Equal(t, 19, algorithm)
	assert.Equal(t, 0, evaluate)
	assert.Equal(t, 0, commentsported)
	assert.Equal(t, 7, basicblocks)
	assert.Equal(t, 0, edges)
	assert.Equal(t, 0, instructions)
}

func TestInsertFunctionMatchDuplicatePair(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := db.InsertFunctionMatch(ctx, 0x1000, 0x2000, "f1", "f2", 0.9, 0.9, 0)
	require.NoError(t, err)

	// UNIQUE(address1, address2) bubbles up from the engine.
	_, err = db.InsertFunctionMatch(ctx, 0x1000, 0x2000, "f1", "f2", 0.9, 0.9, 0)
	assert.Error(t, err)
}

func TestInsertBasicBlockAndInstruction(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	funcID, err := db.InsertFunctionMatch(ctx, 0x1000, 0x2000, "f1", "f2", 0.9, 0.9, 0)
	require.NoError(t, err)

	bbID, err := db.InsertBasicBlockMatch(ctx, funcID, 0x1100, 0x2100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bbID)

	require.NoError(t, db.InsertInstructionMatch(ctx, bbID, 0x1102, 0x2104))

	blocks, err := db.ReadBasicBlockRows(ctx)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, funcID, blocks[0].FunctionID)
	assert.Equal(t, uint64(0x1100), blocks[0].Address1)
	assert.Equal(t, uint64(0x2100), blocks[0].Address2)
	assert.Equal(t, types.BasicBlockAlgorithmEdgesPrimeProduct, blocks[0].Algorithm)

	instructions, err := db.ReadInstructionRows(ctx)
	require.NoError(t, err)
	require.Len(t, instructions, 1)
	assert.Equal(t, bbID, instructions[0].BasicBlockID)
	assert.Equal(t, uint64(0x1102), instructions[0].Address1)
	assert.Equal(t, uint64(0x2104), instructions[0].Address2)
}

func TestHighAddressRoundTrip(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	// Sign bit set: persisted as a negative integer, must come back as
	// the same unsigned address.
	_, err := db.InsertFunctionMatch(ctx, 0xFFFFFFFFFFFFFFFF, 0x8000000000001000, "f1", "f2", 1.0, 1.0, 0)
	require.NoError(t, err)

	matches, err := db.ReadFunctionMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, uint64(18446744073709551615), matches[0].Address1)
	assert.Equal(t, uint64(0x8000000000001000), matches[0].Address2)
}

func TestUpdateFileInfo(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	f := &types.File{Filename: "a", ExeFilename: "a", Hash: "00"}
	require.NoError(t, db.InsertFile(ctx, f))

	require.NoError(t, db.UpdateFileInfo(ctx, f.ID, 10, 3, 50, 200))

	files, err := db.ReadFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, 10, files[0].Functions)
	assert.Equal(t, 3, files[0].LibFunctions)
	assert.Equal(t, 50, files[0].BasicBlocks)
	assert.Equal(t, 200, files[0].Instructions)
}

func TestUpdateFunctionBasicBlocks(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	id, err := db.InsertFunctionMatch(ctx, 0x1000, 0x2000, "f1", "f2", 0.9, 0.9, 0)
	require.NoError(t, err)

	require.NoError(t, db.UpdateFunctionBasicBlocks(ctx, id, 12))

	var count int
	err = db.querier().QueryRowContext(ctx, "SELECT basicblocks FROM function WHERE id = ?", id).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestCommitDurability(t *testing.T) {
	db, path := setupTestDB(t)
	ctx := context.Background()

	committed := &types.File{Filename: "a", ExeFilename: "a", Hash: "00"}
	require.NoError(t, db.InsertFile(ctx, committed))
	require.NoError(t, db.Commit(ctx))

	// Written after the commit, then dropped by Close.
	uncommitted := &types.File{Filename: "b", ExeFilename: "b", Hash: "11"}
	require.NoError(t, db.InsertFile(ctx, uncommitted))
	require.NoError(t, db.Close())

	reopened, err := Open(ctx, path, ModeReadOnly)
	require.NoError(t, err)
	defer reopened.Close()

	files, err := reopened.ReadFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a", files[0].Filename)
}
