package types

import "errors"

// Domain errors surfaced while opening or loading a result file.
// Storage-engine failures are propagated as the driver returned them
// and are not wrapped into these.
var (
	// ErrInvalidPermission is returned when the open permission is
	// neither "ro" nor "rw".
	ErrInvalidPermission = errors.New(`permission must be "ro" or "rw"`)
	// ErrNoFilePair is returned when a result file holds fewer than the
	// two file rows a diff requires.
	ErrNoFilePair = errors.New("result file does not contain a file pair")
	// ErrDanglingFunctionID is returned when a basicblock row references
	// a function match id that was never loaded. Always a producer bug.
	ErrDanglingFunctionID = errors.New("basic block references unknown function match")
	// ErrDanglingBasicBlockID is returned when an instruction row
	// references a basic-block match id that was never loaded.
	ErrDanglingBasicBlockID = errors.New("instruction references unknown basic block match")
)
