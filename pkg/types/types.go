package types

// File is one analyzed binary recorded in a result file. Every result
// file holds exactly two rows: the row inserted first describes the
// primary binary, the second the secondary. The pairing is positional;
// no column carries the role.
type File struct {
	ID              int64
	Filename        string // display name, export name without extension
	ExeFilename     string
	Hash            string // hex digest of the binary
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

// FunctionMatch is a claimed correspondence between a function in the
// primary binary and one in the secondary.
type FunctionMatch struct {
	ID         int64
	Address1   uint64
	Name1      string
	Address2   uint64
	Name2      string
	Similarity float64 // 0.0 .. 1.0
	Confidence float64 // 0.0 .. 1.0
	Algorithm  FunctionAlgorithm
}

// BasicBlockMatch is a matched basic-block pair, owned by a
// FunctionMatch. The same block address can appear under several
// owning functions, so lookups are keyed by block address first and
// owning-function address second.
type BasicBlockMatch struct {
	ID            int64
	FunctionMatch *FunctionMatch
	Address1      uint64
	Address2      uint64
	Algorithm     BasicBlockAlgorithm
}
