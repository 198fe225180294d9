package model

// RankAnchor is one calibration point mapping a composite score to a rank.
type RankAnchor struct {
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// RankPrediction is a predicted rank band for a composite score.
type RankPrediction struct {
	Low       int     `json:"low"`
	Medium    int     `json:"medium"`
	High      int     `json:"high"`
	Composite float64 `json:"composite"`
}
