package rag

import (
	"math"
	"sort"

	"esg-questionnaire-be/internal/constant"
)

// floatDistinctness is the absolute difference above which two numeric
// candidates count as disagreeing.
const floatDistinctness = 1e-6

// Candidate is one (value, source) pair produced by retrieval plus model
// extraction, before reduction. Candidates are ordered by retrieval rank.
type Candidate struct {
	Value  interface{}
	Source string
}

// ConflictEntry records one contested candidate.
type ConflictEntry struct {
	Value  interface{} `json:"value"`
	Source string      `json:"source"`
}

// Reduction is the outcome of collapsing candidates into one accepted value.
type Reduction struct {
	Value     interface{}
	Sources   []string
	Conflicts []ConflictEntry
}

// Reduce collapses candidates by field type:
//   - float/text: the first candidate in rank order wins; when two or more
//     distinct values exist, every candidate lands in Conflicts.
//   - list: order-preserving deduplicated union of all candidate lists,
//     filtered to the allowed options; sources are the sorted deduplicated
//     set of contributing provenance strings.
//
// With no candidates, the value defaults to nil / "" / empty list and both
// side lists stay empty.
func Reduce(fieldType constant.FieldType, candidates []Candidate, options []string) Reduction {
	switch fieldType {
	case constant.FieldTypeFloat:
		return reduceScalar(candidates, func(a, b interface{}) bool {
			fa, aok := a.(float64)
			fb, bok := b.(float64)
			if !aok || !bok {
				return a == b
			}
			return math.Abs(fa-fb) <= floatDistinctness
		}, nil)
	case constant.FieldTypeText:
		return reduceScalar(candidates, func(a, b interface{}) bool {
			return a == b
		}, "")
	case constant.FieldTypeList:
		return reduceList(candidates, options)
	default:
		return Reduction{}
	}
}

func reduceScalar(candidates []Candidate, equal func(a, b interface{}) bool, empty interface{}) Reduction {
	if len(candidates) == 0 {
		return Reduction{Value: empty}
	}

	accepted := candidates[0]
	red := Reduction{
		Value:   accepted.Value,
		Sources: []string{accepted.Source},
	}

	// conflicts only when at least two distinct values exist
	distinct := false
	for _, c := range candidates[1:] {
		if !equal(c.Value, accepted.Value) {
			distinct = true
			break
		}
	}
	if distinct {
		for _, c := range candidates {
			red.Conflicts = append(red.Conflicts, ConflictEntry{Value: c.Value, Source: c.Source})
		}
	}
	return red
}

func reduceList(candidates []Candidate, options []string) Reduction {
	allowed := map[string]bool{}
	for _, opt := range options {
		allowed[opt] = true
	}

	union := []string{}
	seen := map[string]bool{}
	sourceSet := map[string]bool{}
	for _, c := range candidates {
		items, ok := c.Value.([]string)
		if !ok {
			continue
		}
		contributed := false
		for _, item := range items {
			if len(options) > 0 && !allowed[item] {
				continue
			}
			contributed = true
			if !seen[item] {
				seen[item] = true
				union = append(union, item)
			}
		}
		if contributed {
			sourceSet[c.Source] = true
		}
	}

	var sources []string
	for s := range sourceSet {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	return Reduction{Value: union, Sources: sources}
}
