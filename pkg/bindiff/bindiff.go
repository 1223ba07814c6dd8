package bindiff

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/diffnav/bindiff/internal/storage"
	"github.com/diffnav/bindiff/pkg/types"
)

// Permission selects how a result file is opened.
type Permission string

const (
	// ReadOnly loads the whole file into the lookup indices at open.
	ReadOnly Permission = "ro"
	// ReadWrite exposes the writer operations and builds no indices.
	ReadWrite Permission = "rw"
)

// DiffFile is one open BinDiff result file.
//
// Opened ReadOnly, the exported index fields below hold an immutable
// snapshot of the file as of the open; writes made through other
// handles afterwards are not observed. Opened ReadWrite, the index
// fields stay nil and only the writer methods may be used.
//
// A DiffFile owns its connection exclusively and is not safe for
// concurrent use without external synchronization.
type DiffFile struct {
	path  string
	perm  Permission
	store *storage.DB

	// Metadata of the whole diff.
	Version     string
	Description string
	Created     time.Time
	Modified    time.Time
	Similarity  float64 // overall similarity, rounded to 3 decimals
	Confidence  float64 // overall confidence, rounded to 3 decimals

	// The two compared binaries, paired by insertion order.
	PrimaryFile   *types.File
	SecondaryFile *types.File

	// Function matches indexed by address on each side. If the stored
	// data matches one address to several counterparts, the row loaded
	// last wins.
	PrimaryFunctionMatches   map[uint64]*types.FunctionMatch
	SecondaryFunctionMatches map[uint64]*types.FunctionMatch

	// Basic-block matches, block address then owning-function address.
	// A block address may recur under several owning functions, so the
	// outer key alone is not unique.
	PrimaryBasicBlockMatches   map[uint64]map[uint64]*types.BasicBlockMatch
	SecondaryBasicBlockMatches map[uint64]map[uint64]*types.BasicBlockMatch

	// Instruction matches, instruction address then owning-function
	// address, valued by the matched counterpart address.
	PrimaryInstructionMatches   map[uint64]map[uint64]uint64
	SecondaryInstructionMatches map[uint64]map[uint64]uint64
}

// Open opens the result file at path. With ReadOnly the full load
// pipeline runs before Open returns: a handle is never returned with
// partially built indices. With ReadWrite no loading happens.
func Open(ctx context.Context, path string, perm Permission) (*DiffFile, error) {
	if perm != ReadOnly && perm != ReadWrite {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidPermission, perm)
	}

	store, err := storage.Open(ctx, path, storage.Mode(perm))
	if err != nil {
		return nil, err
	}

	d := &DiffFile{path: path, perm: perm, store: store}
	if perm == ReadOnly {
		if err := d.load(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return d, nil
}

// Create creates a new result file at path with the schema installed
// and the metadata row written, and returns a ReadWrite handle ready
// for the two AddFile calls and the match inserts. Creation and
// modification time are both set to the current time; refreshing the
// modification time as the diff proceeds is the caller's concern.
func Create(ctx context.Context, path, version, description string, similarity, confidence float64) (*DiffFile, error) {
	store, err := storage.Create(ctx, path)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := store.InsertMetadata(ctx, version, description, now, now, similarity, confidence); err != nil {
		_ = store.Close()
		return nil, err
	}
	if err := store.Commit(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &DiffFile{path: path, perm: ReadWrite, store: store}, nil
}

// Path returns the result file path.
func (d *DiffFile) Path() string {
	return d.path
}

// Close releases the underlying connection. On a ReadWrite handle,
// writes since the last Commit are discarded.
func (d *DiffFile) Close() error {
	return d.store.Close()
}

// Commit flushes all pending writes to durable storage. The library
// never commits on its own after creation time; checkpointing is
// entirely the producer's choice.
func (d *DiffFile) Commit(ctx context.Context) error {
	return d.store.Commit(ctx)
}

// FileInfo describes one binary for AddFile. ExportName and Hash are
// required; Filename and ExeFilename default to the export name
// without its extension, and the counters default to zero. Sparse
// counters render poorly in BinDiff and the disassembler plugins, so
// producers should fill them, via this struct or a later
// UpdateFileInfo.
type FileInfo struct {
	ExportName      string // export filename, extension included
	Hash            string // hex digest of the binary
	Filename        string // display name, overrides the derived one
	ExeFilename     string
	Functions       int
	LibFunctions    int
	Calls           int
	BasicBlocks     int
	LibBasicBlocks  int
	Edges           int
	LibEdges        int
	Instructions    int
	LibInstructions int
}

// AddFile appends one file row and returns its surrogate id. Must be
// called exactly twice per result file, primary binary first: the
// loader pairs the rows by position.
func (d *DiffFile) AddFile(ctx context.Context, info FileInfo) (int64, error) {
	derived := strings.TrimSuffix(filepath.Base(info.ExportName), filepath.Ext(info.ExportName))
	name := info.Filename
	if name == "" {
		name = derived
	}
	// The executable fallback ignores any display-name override.
	exeName := info.ExeFilename
	if exeName == "" {
		exeName = derived
	}

	f := &types.File{
		Filename:        name,
		ExeFilename:     exeName,
		Hash:            info.Hash,
		Functions:       info.Functions,
		LibFunctions:    info.LibFunctions,
		Calls:           info.Calls,
		BasicBlocks:     info.BasicBlocks,
		LibBasicBlocks:  info.LibBasicBlocks,
		Edges:           info.Edges,
		LibEdges:        info.LibEdges,
		Instructions:    info.Instructions,
		LibInstructions: info.LibInstructions,
	}
	if err := d.store.InsertFile(ctx, f); err != nil {
		return 0, err
	}
	return f.ID, nil
}

// AddFunctionMatch appends one function match and returns its
// surrogate id, which subsequent AddBasicBlockMatch calls reference.
func (d *DiffFile) AddFunctionMatch(ctx context.Context, addr1, addr2 uint64, name1, name2 string, similarity, confidence float64, identicalBasicBlocks int) (int64, error) {
	return d.store.InsertFunctionMatch(ctx, addr1, addr2, name1, name2, similarity, confidence, identicalBasicBlocks)
}

// AddBasicBlockMatch appends one basic-block match under the given
// function match and returns its surrogate id, which subsequent
// AddInstructionMatch calls reference.
func (d *DiffFile) AddBasicBlockMatch(ctx context.Context, functionMatchID int64, addr1, addr2 uint64) (int64, error) {
	return d.store.InsertBasicBlockMatch(ctx, functionMatchID, addr1, addr2)
}

// AddInstructionMatch appends one instruction match under the given
// basic-block match.
func (d *DiffFile) AddInstructionMatch(ctx context.Context, basicBlockMatchID int64, addr1, addr2 uint64) error {
	return d.store.InsertInstructionMatch(ctx, basicBlockMatchID, addr1, addr2)
}

// UpdateFileInfo overwrites the function, library-function,
// basic-block and instruction counters of the file row with the given
// id.
func (d *DiffFile) UpdateFileInfo(ctx context.Context, fileID int64, functions, libFunctions, basicBlocks, instructions int) error {
	return d.store.UpdateFileInfo(ctx, fileID, functions, libFunctions, basicBlocks, instructions)
}

// UpdateSameBasicBlockCount overwrites the identical basic-block count
// stored on the function match with the given id.
func (d *DiffFile) UpdateSameBasicBlockCount(ctx context.Context, functionMatchID int64, count int) error {
	return d.store.UpdateFunctionBasicBlocks(ctx, functionMatchID, count)
}

// UnmatchedPrimaryCount returns how many primary functions, library
// functions included, have no match.
func (d *DiffFile) UnmatchedPrimaryCount() int {
	return d.PrimaryFile.Functions + d.PrimaryFile.LibFunctions - len(d.PrimaryFunctionMatches)
}

// UnmatchedSecondaryCount returns how many secondary functions,
// library functions included, have no match.
func (d *DiffFile) UnmatchedSecondaryCount() int {
	return d.SecondaryFile.Functions + d.SecondaryFile.LibFunctions - len(d.SecondaryFunctionMatches)
}

// FunctionMatches returns all function matches reachable from the
// primary index.
func (d *DiffFile) FunctionMatches() []*types.FunctionMatch {
	matches := make([]*types.FunctionMatch, 0, len(d.PrimaryFunctionMatches))
	for _, m := range d.PrimaryFunctionMatches {
		matches = append(matches, m)
	}
	return matches
}

// BasicBlockMatches returns all basic-block matches, flattened from
// the primary-side nested index. Each match appears under exactly one
// owning-function key on a given side, so the result carries no
// duplicates.
func (d *DiffFile) BasicBlockMatches() []*types.BasicBlockMatch {
	matches := make([]*types.BasicBlockMatch, 0)
	for _, byFunction := range d.PrimaryBasicBlockMatches {
		for _, m := range byFunction {
			matches = append(matches, m)
		}
	}
	return matches
}
