package types

// FunctionAlgorithm identifies the matching step that produced a
// function match. The set is closed: codes are persisted as small
// integers and also written, with their display names, into the
// functionalgorithm lookup table at schema creation time.
type FunctionAlgorithm int

const (
	FunctionAlgorithmNameHashMatching FunctionAlgorithm = iota + 1
	FunctionAlgorithmHashMatching
	FunctionAlgorithmEdgesFlowgraphMDIndex
	FunctionAlgorithmEdgesCallgraphMDIndex
	FunctionAlgorithmMDIndexMatchingFlowgraphTopDown
	FunctionAlgorithmMDIndexMatchingFlowgraphBottomUp
	FunctionAlgorithmPrimeSignatureMatching
	FunctionAlgorithmMDIndexMatchingCallgraphTopDown
	FunctionAlgorithmMDIndexMatchingCallgraphBottomUp
	FunctionAlgorithmRelaxedMDIndexMatching
	FunctionAlgorithmInstructionCount
	FunctionAlgorithmAddressSequence
	FunctionAlgorithmStringReferences
	FunctionAlgorithmLoopCountMatching
	FunctionAlgorithmCallSequenceMatchingExact
	FunctionAlgorithmCallSequenceMatchingTopology
	FunctionAlgorithmCallSequenceMatchingSequence
	FunctionAlgorithmCallReferenceMatching
	FunctionAlgorithmManual
)

var functionAlgorithmNames = map[FunctionAlgorithm]string{
	FunctionAlgorithmNameHashMatching:                 "name hash matching",
	FunctionAlgorithmHashMatching:                     "hash matching",
	FunctionAlgorithmEdgesFlowgraphMDIndex:            "edges flowgraph MD index",
	FunctionAlgorithmEdgesCallgraphMDIndex:            "edges callgraph MD index",
	FunctionAlgorithmMDIndexMatchingFlowgraphTopDown:  "MD index matching (flowgraph MD index, top down)",
	FunctionAlgorithmMDIndexMatchingFlowgraphBottomUp: "MD index matching (flowgraph MD index, bottom up)",
	FunctionAlgorithmPrimeSignatureMatching:           "prime signature matching",
	FunctionAlgorithmMDIndexMatchingCallgraphTopDown:  "MD index matching (callGraph MD index, top down)",
	FunctionAlgorithmMDIndexMatchingCallgraphBottomUp: "MD index matching (callGraph MD index, bottom up)",
	FunctionAlgorithmRelaxedMDIndexMatching:           "relaxed MD index matching",
	FunctionAlgorithmInstructionCount:                 "instruction count",
	FunctionAlgorithmAddressSequence:                  "address sequence",
	FunctionAlgorithmStringReferences:                 "string references",
	FunctionAlgorithmLoopCountMatching:                "loop count matching",
	FunctionAlgorithmCallSequenceMatchingExact:        "call sequence matching(exact)",
	FunctionAlgorithmCallSequenceMatchingTopology:     "call sequence matching(topology)",
	FunctionAlgorithmCallSequenceMatchingSequence:     "call sequence matching(sequence)",
	FunctionAlgorithmCallReferenceMatching:            "call reference matching",
	FunctionAlgorithmManual:                           "manual",
}

// String returns the display name persisted in the lookup table.
func (a FunctionAlgorithm) String() string {
	if name, ok := functionAlgorithmNames[a]; ok {
		return name
	}
	return "unknown"
}

// FunctionAlgorithms lists every member in persisted-code order.
func FunctionAlgorithms() []FunctionAlgorithm {
	algos := make([]FunctionAlgorithm, 0, len(functionAlgorithmNames))
	for a := FunctionAlgorithmNameHashMatching; a <= FunctionAlgorithmManual; a++ {
		algos = append(algos, a)
	}
	return algos
}

// BasicBlockAlgorithm identifies the matching step that produced a
// basic-block match. Separate enumeration from FunctionAlgorithm, same
// persistence scheme via the basicblockalgorithm lookup table.
type BasicBlockAlgorithm int

const (
	BasicBlockAlgorithmEdgesPrimeProduct BasicBlockAlgorithm = iota + 1
	BasicBlockAlgorithmHashMatchingFourInstMin
	BasicBlockAlgorithmPrimeMatchingFourInstMin
	BasicBlockAlgorithmCallReferenceMatching
	BasicBlockAlgorithmStringReferencesMatching
	BasicBlockAlgorithmEdgesMDIndexTopDown
	BasicBlockAlgorithmMDIndexMatchingTopDown
	BasicBlockAlgorithmEdgesMDIndexBottomUp
	BasicBlockAlgorithmMDIndexMatchingBottomUp
	BasicBlockAlgorithmRelaxedMDIndexMatching
	BasicBlockAlgorithmPrimeMatchingNoInstMin
	BasicBlockAlgorithmEdgesLengauerTarjanDominated
	BasicBlockAlgorithmLoopEntryMatching
	BasicBlockAlgorithmSelfLoopMatching
	BasicBlockAlgorithmEntryPointMatching
	BasicBlockAlgorithmExitPointMatching
	BasicBlockAlgorithmInstructionCountMatching
	BasicBlockAlgorithmJumpSequenceMatching
	BasicBlockAlgorithmPropagationSizeOne
	BasicBlockAlgorithmManual
)

var basicBlockAlgorithmNames = map[BasicBlockAlgorithm]string{
	BasicBlockAlgorithmEdgesPrimeProduct:            "edges prime product",
	BasicBlockAlgorithmHashMatchingFourInstMin:      "hash matching (4 instructions minimum)",
	BasicBlockAlgorithmPrimeMatchingFourInstMin:     "prime matching (4 instructions minimum)",
	BasicBlockAlgorithmCallReferenceMatching:        "call reference matching",
	BasicBlockAlgorithmStringReferencesMatching:     "string references matching",
	BasicBlockAlgorithmEdgesMDIndexTopDown:          "edges MD index (top down)",
	BasicBlockAlgorithmMDIndexMatchingTopDown:       "MD index matching (top down)",
	BasicBlockAlgorithmEdgesMDIndexBottomUp:         "edges MD index (bottom up)",
	BasicBlockAlgorithmMDIndexMatchingBottomUp:      "MD index matching (bottom up)",
	BasicBlockAlgorithmRelaxedMDIndexMatching:       "relaxed MD index matching",
	BasicBlockAlgorithmPrimeMatchingNoInstMin:       "prime matching (0 instructions minimum)",
	BasicBlockAlgorithmEdgesLengauerTarjanDominated: "edges Lengauer Tarjan dominated",
	BasicBlockAlgorithmLoopEntryMatching:            "loop entry matching",
	BasicBlockAlgorithmSelfLoopMatching:             "self loop matching",
	BasicBlockAlgorithmEntryPointMatching:           "entry point matching",
	BasicBlockAlgorithmExitPointMatching:            "exit point matching",
	BasicBlockAlgorithmInstructionCountMatching:     "instruction count matching",
	BasicBlockAlgorithmJumpSequenceMatching:         "jump sequence matching",
	BasicBlockAlgorithmPropagationSizeOne:           "propagation (size==1)",
	BasicBlockAlgorithmManual:                       "manual",
}

// String returns the display name persisted in the lookup table.
func (a BasicBlockAlgorithm) String() string {
	if name, ok := basicBlockAlgorithmNames[a]; ok {
		return name
	}
	return "unknown"
}

// BasicBlockAlgorithms lists every member in persisted-code order.
func BasicBlockAlgorithms() []BasicBlockAlgorithm {
	algos := make([]BasicBlockAlgorithm, 0, len(basicBlockAlgorithmNames))
	for a := BasicBlockAlgorithmEdgesPrimeProduct; a <= BasicBlockAlgorithmManual; a++ {
		algos = append(algos, a)
	}
	return algos
}
