package bindiff

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/diffnav/bindiff/internal/storage"
	"github.com/diffnav/bindiff/pkg/types"
)

// load runs the five eager passes, each a full-table scan, in
// referential-dependency order. Any failure aborts the open; there is
// no partially loaded state to hand back.
func (d *DiffFile) load(ctx context.Context) error {
	if err := d.loadMetadata(ctx); err != nil {
		return err
	}
	if err := d.loadFiles(ctx); err != nil {
		return err
	}
	functionsByID, err := d.loadFunctionMatches(ctx)
	if err != nil {
		return err
	}
	blocksByID, err := d.loadBasicBlockMatches(ctx, functionsByID)
	if err != nil {
		return err
	}
	return d.loadInstructionMatches(ctx, blocksByID)
}

func (d *DiffFile) loadMetadata(ctx context.Context) error {
	meta, err := d.store.ReadMetadata(ctx)
	if err != nil {
		return err
	}

	created, err := time.Parse(storage.TimeLayout, meta.Created)
	if err != nil {
		return fmt.Errorf("parsing metadata created timestamp: %w", err)
	}
	modified, err := time.Parse(storage.TimeLayout, meta.Modified)
	if err != nil {
		return fmt.Errorf("parsing metadata modified timestamp: %w", err)
	}

	d.Version = meta.Version
	d.Description = meta.Description
	d.Created = created
	d.Modified = modified
	// Rounded for display stability across producers.
	d.Similarity = round3(meta.Similarity)
	d.Confidence = round3(meta.Confidence)
	return nil
}

func (d *DiffFile) loadFiles(ctx context.Context) error {
	files, err := d.store.ReadFiles(ctx)
	if err != nil {
		return err
	}
	if len(files) < 2 {
		return fmt.Errorf("%w: %d file row(s)", types.ErrNoFilePair, len(files))
	}

	// Positional pairing: nothing in the schema marks the roles.
	d.PrimaryFile = files[0]
	d.SecondaryFile = files[1]
	return nil
}

func (d *DiffFile) loadFunctionMatches(ctx context.Context) (map[int64]*types.FunctionMatch, error) {
	matches, err := d.store.ReadFunctionMatches(ctx)
	if err != nil {
		return nil, err
	}

	d.PrimaryFunctionMatches = make(map[uint64]*types.FunctionMatch, len(matches))
	d.SecondaryFunctionMatches = make(map[uint64]*types.FunctionMatch, len(matches))
	byID := make(map[int64]*types.FunctionMatch, len(matches))
	for _, m := range matches {
		d.PrimaryFunctionMatches[m.Address1] = m
		d.SecondaryFunctionMatches[m.Address2] = m
		byID[m.ID] = m
	}
	return byID, nil
}

func (d *DiffFile) loadBasicBlockMatches(ctx context.Context, functionsByID map[int64]*types.FunctionMatch) (map[int64]*types.BasicBlockMatch, error) {
	rows, err := d.store.ReadBasicBlockRows(ctx)
	if err != nil {
		return nil, err
	}

	d.PrimaryBasicBlockMatches = make(map[uint64]map[uint64]*types.BasicBlockMatch)
	d.SecondaryBasicBlockMatches = make(map[uint64]map[uint64]*types.BasicBlockMatch)
	byID := make(map[int64]*types.BasicBlockMatch, len(rows))
	for _, row := range rows {
		owner, ok := functionsByID[row.FunctionID]
		if !ok {
			return nil, fmt.Errorf("%w: basicblock %d references function %d", types.ErrDanglingFunctionID, row.ID, row.FunctionID)
		}

		m := &types.BasicBlockMatch{
			ID:            row.ID,
			FunctionMatch: owner,
			Address1:      row.Address1,
			Address2:      row.Address2,
			Algorithm:     row.Algorithm,
		}
		byID[m.ID] = m

		nestedPutBlock(d.PrimaryBasicBlockMatches, m.Address1, owner.Address1, m)
		nestedPutBlock(d.SecondaryBasicBlockMatches, m.Address2, owner.Address2, m)
	}
	return byID, nil
}

func (d *DiffFile) loadInstructionMatches(ctx context.Context, blocksByID map[int64]*types.BasicBlockMatch) error {
	rows, err := d.store.ReadInstructionRows(ctx)
	if err != nil {
		return err
	}

	d.PrimaryInstructionMatches = make(map[uint64]map[uint64]uint64)
	d.SecondaryInstructionMatches = make(map[uint64]map[uint64]uint64)
	for _, row := range rows {
		block, ok := blocksByID[row.BasicBlockID]
		if !ok {
			return fmt.Errorf("%w: instruction at %#x references basicblock %d", types.ErrDanglingBasicBlockID, row.Address1, row.BasicBlockID)
		}
		owner := block.FunctionMatch

		nestedPutAddr(d.PrimaryInstructionMatches, row.Address1, owner.Address1, row.Address2)
		nestedPutAddr(d.SecondaryInstructionMatches, row.Address2, owner.Address2, row.Address1)
	}
	return nil
}

func nestedPutBlock(m map[uint64]map[uint64]*types.BasicBlockMatch, addr, functionAddr uint64, v *types.BasicBlockMatch) {
	inner := m[addr]
	if inner == nil {
		inner = make(map[uint64]*types.BasicBlockMatch)
		m[addr] = inner
	}
	inner[functionAddr] = v
}

func nestedPutAddr(m map[uint64]map[uint64]uint64, addr, functionAddr, counterpart uint64) {
	inner := m[addr]
	if inner == nil {
		inner = make(map[uint64]uint64)
		m[addr] = inner
	}
	inner[functionAddr] = counterpart
}

// round3 rounds through the printed decimal representation. Scaling by
// 1000 before math.Round can nudge a value like 0.8765 onto an exact
// half and round it up, where 3-decimal formatting of the same float
// yields 0.876.
func round3(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 3, 64), 64)
	if err != nil {
		return v
	}
	return r
}
