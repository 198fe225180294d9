package model

import "time"

// SimulationRecord is a persisted simulation run.
type SimulationRecord struct {
	CreatedAt   time.Time        `json:"created_at"`
	ID          string           `json:"id"`
	Category    string           `json:"category"`
	Year        string           `json:"year"`
	Round       string           `json:"round"`
	Preferences Preferences      `json:"preferences"`
	Result      SimulationResult `json:"result"`
	Rank        int              `json:"rank"`
}

// PredictionRecord is a persisted rank prediction.
type PredictionRecord struct {
	CreatedAt  time.Time      `json:"created_at"`
	ID         string         `json:"id"`
	Prediction RankPrediction `json:"prediction"`
	ExamScore  float64        `json:"exam_score"`
	BoardPct   float64        `json:"board_pct"`
}
