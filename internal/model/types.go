package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Result is the immutable outcome of one experiment run. Plot carries the
// rendered fitness-curve artifact as opaque bytes; it is excluded from the
// identity hash so two runs differing only in plot bytes collapse to one key.
type Result struct {
	VersionedRecord
	Dataset              string  `json:"dataset"`
	Seed                 int64   `json:"seed"`
	IndividualCount      int     `json:"individual_count"`
	Iterations           int     `json:"iterations"`
	CrossoverProbability float64 `json:"crossover_probability"`
	MutationProbability  float64 `json:"mutation_probability"`
	Selection            string  `json:"selection"`
	Crossover            string  `json:"crossover"`
	Mutation             string  `json:"mutation"`
	BestFitness          float64 `json:"best_fitness"`
	BestIndividual       string  `json:"best_individual"`
	Plot                 []byte  `json:"plot,omitempty"`
}

// FitnessHistory is the per-generation best/average fitness series of one run,
// keyed in storage by the owning result's hash.
type FitnessHistory struct {
	VersionedRecord
	Best    []float64 `json:"best"`
	Average []float64 `json:"average"`
}

// IdentityFields returns the ordered string forms of every field that
// participates in the result's identity. Plot bytes are deliberately absent.
func (r Result) IdentityFields() []string {
	return []string{
		r.Dataset,
		strconv.FormatInt(r.Seed, 10),
		strconv.Itoa(r.IndividualCount),
		strconv.Itoa(r.Iterations),
		strconv.FormatFloat(r.CrossoverProbability, 'g', -1, 64),
		strconv.FormatFloat(r.MutationProbability, 'g', -1, 64),
		r.Selection,
		r.Crossover,
		r.Mutation,
		strconv.FormatFloat(r.BestFitness, 'g', -1, 64),
		r.BestIndividual,
	}
}

// CalculateHash digests the identity fields into the hex string used as the
// result's persistence key.
func (r Result) CalculateHash() string {
	joined := strings.Join(r.IdentityFields(), ",")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}
