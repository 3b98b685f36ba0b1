package rag

import (
	"testing"

	"esg-questionnaire-be/internal/constant"

	"github.com/stretchr/testify/assert"
)

func TestReduceFloatAgreement(t *testing.T) {
	red := Reduce(constant.FieldTypeFloat, []Candidate{
		{Value: 1234.5, Source: "report.pdf:3"},
		{Value: 1234.5, Source: "report.pdf:7"},
	}, nil)

	assert.Equal(t, 1234.5, red.Value)
	assert.Equal(t, []string{"report.pdf:3"}, red.Sources)
	assert.Empty(t, red.Conflicts)
}

func TestReduceFloatConflict(t *testing.T) {
	red := Reduce(constant.FieldTypeFloat, []Candidate{
		{Value: 100.0, Source: "a.pdf:1"},
		{Value: 250.0, Source: "b.pdf:2"},
	}, nil)

	// first rank wins, every candidate lands in conflicts
	assert.Equal(t, 100.0, red.Value)
	assert.Equal(t, []string{"a.pdf:1"}, red.Sources)
	assert.Equal(t, []ConflictEntry{
		{Value: 100.0, Source: "a.pdf:1"},
		{Value: 250.0, Source: "b.pdf:2"},
	}, red.Conflicts)
}

func TestReduceFloatNearEqualIsNotConflict(t *testing.T) {
	red := Reduce(constant.FieldTypeFloat, []Candidate{
		{Value: 100.0, Source: "a.pdf:1"},
		{Value: 100.0000000001, Source: "b.pdf:2"},
	}, nil)

	assert.Empty(t, red.Conflicts)
}

func TestReduceTextConflict(t *testing.T) {
	red := Reduce(constant.FieldTypeText, []Candidate{
		{Value: "ISO 14001 certified", Source: "a.pdf"},
		{Value: "ISO 14001 certified", Source: "b.pdf"},
		{Value: "not certified", Source: "c.pdf"},
	}, nil)

	assert.Equal(t, "ISO 14001 certified", red.Value)
	assert.Equal(t, []string{"a.pdf"}, red.Sources)
	assert.Len(t, red.Conflicts, 3)
}

func TestReduceListUnion(t *testing.T) {
	options := []string{"solar", "wind", "hydro"}
	red := Reduce(constant.FieldTypeList, []Candidate{
		{Value: []string{"solar", "diesel"}, Source: "b.pdf:2"},
		{Value: []string{"wind", "solar"}, Source: "a.pdf:1"},
	}, options)

	// order-preserving union across candidate rank, off-option items dropped
	assert.Equal(t, []string{"solar", "wind"}, red.Value)
	// sources are sorted and deduplicated
	assert.Equal(t, []string{"a.pdf:1", "b.pdf:2"}, red.Sources)
	assert.Empty(t, red.Conflicts)
}

func TestReduceListIgnoresNonContributingSources(t *testing.T) {
	red := Reduce(constant.FieldTypeList, []Candidate{
		{Value: []string{"diesel"}, Source: "a.pdf:1"},
		{Value: []string{"solar"}, Source: "b.pdf:2"},
	}, []string{"solar"})

	assert.Equal(t, []string{"solar"}, red.Value)
	assert.Equal(t, []string{"b.pdf:2"}, red.Sources)
}

func TestReduceEmptyCandidates(t *testing.T) {
	assert.Nil(t, Reduce(constant.FieldTypeFloat, nil, nil).Value)
	assert.Equal(t, "", Reduce(constant.FieldTypeText, nil, nil).Value)
	assert.Equal(t, []string{}, Reduce(constant.FieldTypeList, nil, nil).Value)
}
