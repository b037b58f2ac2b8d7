package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/seat-planner/pkg/core/model"
)

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryMorning, Categorize(tm(5, 0), testBounds))
	assert.Equal(t, CategoryMorning, Categorize(tm(11, 0), testBounds))
	assert.Equal(t, CategoryOther, Categorize(tm(11, 30), testBounds))
	assert.Equal(t, CategoryOther, Categorize(tm(4, 0), testBounds))
	assert.Equal(t, CategoryNight, Categorize(tm(14, 0), testBounds))
	assert.Equal(t, CategoryNight, Categorize(tm(22, 0), testBounds))
}

func TestBatchRank(t *testing.T) {
	tests := map[string]int{
		"DH":   0,
		"dh":   0,
		"B6":   6,
		"b12":  12,
		// A bare number ranks like its "B" form rather than lowest
		"7":    7,
		"":     LowestBatchRank,
		"new":  LowestBatchRank,
		"B":    LowestBatchRank,
		"B-1":  LowestBatchRank,
		"5000": LowestBatchRank,
	}

	for batch, expected := range tests {
		assert.Equal(t, expected, BatchRank(batch), "batch %q", batch)
	}
}

func TestIsReusable(t *testing.T) {
	cutoff := tm(16, 0)
	assert.True(t, isReusable(iv(5, 14), CategoryMorning, cutoff))
	assert.False(t, isReusable(iv(5, 16), CategoryMorning, cutoff))
	assert.False(t, isReusable(iv(5, 17), CategoryMorning, cutoff))
	assert.False(t, isReusable(iv(14, 20), CategoryNight, cutoff))
	assert.False(t, isReusable(iv(10, 2), CategoryMorning, cutoff))
}

func TestSortByPriority(t *testing.T) {
	config := newTestConfig(t,
		singleSeatConfig(t).Catalog.Ranges(),
		nil,
		[]QueueRule{{Queue: "IBC"}, {Queue: "BNS"}})

	candidate := func(id string, queue model.Queue, start int, batch string) *Candidate {
		r := shift(id, queue, start, (start+8)%24)
		r.Batch = batch
		return newCandidate(r, config)
	}

	candidates := []*Candidate{
		candidate("z-bns-morning", "BNS", 6, "DH"),
		candidate("b-ibc-night", "IBC", 15, "DH"),
		candidate("c-ibc-morning-b6", "IBC", 6, "B6"),
		candidate("d-ibc-morning-dh", "IBC", 6, "DH"),
		candidate("a-ibc-morning-none", "IBC", 6, ""),
		candidate("a-ibc-other", "IBC", 12, "DH"),
	}

	SortByPriority(candidates, config.QueueSet())

	var order []string
	for _, c := range candidates {
		order = append(order, c.Record.AgentID)
	}
	assert.Equal(t, []string{
		"d-ibc-morning-dh",
		"c-ibc-morning-b6",
		"a-ibc-morning-none",
		"b-ibc-night",
		"a-ibc-other",
		"z-bns-morning",
	}, order)
}
