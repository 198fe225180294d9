package model

// MatchTier labels how specific a cutoff match is.
type MatchTier int

// Match tiers in descending specificity.
const (
	TierExact MatchTier = iota
	TierCloseName
	TierPartialName
	TierHistoricalSame
	TierHistoricalCloseName
	TierHistoricalPartialName
	TierNoData
)

var tierLabels = map[MatchTier]string{
	TierExact:                 "Exact match",
	TierCloseName:             "close name match",
	TierPartialName:           "partial name match (ambiguous)",
	TierHistoricalSame:        "Historical (same course/category)",
	TierHistoricalCloseName:   "Historical (close name match)",
	TierHistoricalPartialName: "Historical (partial name match, ambiguous)",
	TierNoData:                "No data",
}

// String returns the display label for the tier.
func (t MatchTier) String() string {
	if label, ok := tierLabels[t]; ok {
		return label
	}
	return tierLabels[TierNoData]
}

// IsHistorical reports whether the match ignored the requested year and round.
func (t MatchTier) IsHistorical() bool {
	return t == TierHistoricalSame || t == TierHistoricalCloseName || t == TierHistoricalPartialName
}

// IsAmbiguous reports whether the match relied on a single shared word.
func (t MatchTier) IsAmbiguous() bool {
	return t == TierPartialName || t == TierHistoricalPartialName
}

// MarshalText encodes the tier as its label.
func (t MatchTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier label. Unknown labels decode to TierNoData.
func (t *MatchTier) UnmarshalText(text []byte) error {
	for tier, label := range tierLabels {
		if label == string(text) {
			*t = tier
			return nil
		}
	}
	*t = TierNoData
	return nil
}

// MatchResult is the outcome of matching one preference against the cutoff index.
// Record is nil iff Tier is TierNoData.
type MatchResult struct {
	Record *CutoffRecord `json:"record,omitempty"`
	Tier   MatchTier     `json:"tier"`
}

// NoMatch returns the result used when no tier produced a candidate.
func NoMatch() MatchResult {
	return MatchResult{Tier: TierNoData}
}

// Found reports whether a record was matched.
func (m MatchResult) Found() bool {
	return m.Record != nil && m.Tier != TierNoData
}
