package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchTier_Labels(t *testing.T) {
	assert.Equal(t, "Exact match", TierExact.String())
	assert.Equal(t, "close name match", TierCloseName.String())
	assert.Equal(t, "partial name match (ambiguous)", TierPartialName.String())
	assert.Equal(t, "Historical (same course/category)", TierHistoricalSame.String())
	assert.Equal(t, "Historical (close name match)", TierHistoricalCloseName.String())
	assert.Equal(t, "Historical (partial name match, ambiguous)", TierHistoricalPartialName.String())
	assert.Equal(t, "No data", TierNoData.String())
	assert.Equal(t, "No data", MatchTier(42).String())
}

func TestMatchTier_Predicates(t *testing.T) {
	assert.False(t, TierExact.IsHistorical())
	assert.True(t, TierHistoricalSame.IsHistorical())
	assert.True(t, TierHistoricalPartialName.IsAmbiguous())
	assert.False(t, TierCloseName.IsAmbiguous())
}

func TestMatchResult_JSON(t *testing.T) {
	in := MatchResult{
		Record: &CutoffRecord{InstituteCode: "E001", CourseCode: "CS", CutoffRank: IntPtr(5000)},
		Tier:   TierHistoricalCloseName,
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tier":"Historical (close name match)"`)

	var out MatchResult
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, TierHistoricalCloseName, out.Tier)
	assert.True(t, out.Found())
	assert.Equal(t, 5000, out.Record.Rank())
}

func TestNoMatch(t *testing.T) {
	m := NoMatch()
	assert.False(t, m.Found())
	assert.Nil(t, m.Record)
	assert.Equal(t, TierNoData, m.Tier)
}
