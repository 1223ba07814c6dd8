package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionAlgorithmValues(t *testing.T) {
	// The persisted codes are part of the file format.
	assert.Equal(t, 1, int(FunctionAlgorithmNameHashMatching))
	assert.Equal(t, 19, int(FunctionAlgorithmManual))

	algos := FunctionAlgorithms()
	assert.Len(t, algos, 19)
	assert.Equal(t, FunctionAlgorithmNameHashMatching, algos[0])
	assert.Equal(t, FunctionAlgorithmManual, algos[len(algos)-1])
}

func TestBasicBlockAlgorithmValues(t *testing.T) {
	assert.Equal(t, 1, int(BasicBlockAlgorithmEdgesPrimeProduct))
	assert.Equal(t, 20, int(BasicBlockAlgorithmManual))

	algos := BasicBlockAlgorithms()
	assert.Len(t, algos, 20)
	assert.Equal(t, BasicBlockAlgorithmEdgesPrimeProduct, algos[0])
	assert.Equal(t, BasicBlockAlgorithmManual, algos[len(algos)-1])
}

func TestAlgorithmNames(t *testing.T) {
	assert.Equal(t, "name hash matching", FunctionAlgorithmNameHashMatching.String())
	assert.Equal(t, "manual", FunctionAlgorithmManual.String())
	assert.Equal(t, "edges prime product", BasicBlockAlgorithmEdgesPrimeProduct.String())
	assert.Equal(t, "manual", BasicBlockAlgorithmManual.String())

	// Every member has a name; out-of-range codes do not.
	for _, a := range FunctionAlgorithms() {
		assert.NotEqual(t, "unknown", a.String())
	}
	for _, a := range BasicBlockAlgorithms() {
		assert.NotEqual(t, "unknown", a.String())
	}
	assert.Equal(t, "unknown", FunctionAlgorithm(0).String())
	assert.Equal(t, "unknown", BasicBlockAlgorithm(99).String())
}
