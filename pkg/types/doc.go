// Package types defines the value types shared across the BinDiff
// result-file layer: the matched-file and match entities, the closed
// algorithm enumerations with their persisted display names, the
// stored-address codec, and the domain errors surfaced by loading.
package types
