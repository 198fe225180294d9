package server

import (
	"net/http"
	"time"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/cutoff"
	"github.com/Veraticus/kcet-counsel/internal/engine"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/Veraticus/kcet-counsel/internal/rank"
	"github.com/gin-gonic/gin"
)

// SimulateRequest is the body of POST /api/v1/simulate.
type SimulateRequest struct {
	Category    string            `json:"category"`
	Year        string            `json:"year"`
	Round       string            `json:"round"`
	Preferences model.Preferences `json:"preferences"`
	Rank        int               `json:"rank"`
	Save        bool              `json:"save"`
}

// SimulateResponse wraps a simulation result with its history ID when saved.
type SimulateResponse struct {
	*model.SimulationResult
	ID          string                   `json:"id,omitempty"`
	WaitingList []model.PreferenceResult `json:"waiting_list,omitempty"`
}

// PredictRequest is the body of POST /api/v1/predict.
type PredictRequest struct {
	ExamScore *float64 `json:"exam_score"`
	BoardPct  *float64 `json:"board_pct"`
	Category  string   `json:"category"`
	Save      bool     `json:"save"`
}

// PredictResponse is a rank band with its presentation helpers.
type PredictResponse struct {
	ID         string               `json:"id,omitempty"`
	Percentile string               `json:"percentile"`
	Analysis   string               `json:"analysis"`
	Standing   string               `json:"standing"`
	Suggestion rank.Suggestion      `json:"suggestion"`
	Prediction model.RankPrediction `json:"prediction"`
}

// CoverageYear lists the rounds present for one year.
type CoverageYear struct {
	Year   string   `json:"year"`
	Rounds []string `json:"rounds"`
}

// Health reports liveness and dataset size.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "records": s.dataset.Len()})
}

// Simulate runs a mock allotment.
func (s *Server) Simulate(c *gin.Context) {
	const route = "simulate"

	var body SimulateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, route, common.InvalidInput("malformed request body"))
		return
	}
	if body.Save && s.history == nil {
		s.fail(c, route, common.InvalidInput("history is not enabled on this server"))
		return
	}

	prefs := s.dataset.FillBranchNames(body.Preferences)
	if unnumbered(prefs) {
		prefs.Renumber()
	}
	req := engine.Request{
		Rank:        body.Rank,
		Category:    body.Category,
		Year:        firstNonEmpty(body.Year, s.config.DefaultYear),
		Round:       firstNonEmpty(body.Round, s.config.DefaultRound),
		Preferences: prefs,
	}

	start := time.Now()
	res, err := s.simulator.Simulate(c.Request.Context(), req)
	s.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(c, route, err)
		return
	}
	s.metrics.SimulationsTotal.WithLabelValues(outcomeLabel(res)).Inc()

	resp := SimulateResponse{SimulationResult: res}
	if res.Best != nil && res.Best.Chance.Category.AtLeastHigh() {
		resp.WaitingList = res.WaitingList()
	}

	if body.Save {
		rec := &model.SimulationRecord{
			Rank:        req.Rank,
			Category:    req.Category,
			Year:        req.Year,
			Round:       req.Round,
			Preferences: req.Preferences,
			Result:      *res,
		}
		if err := s.history.SaveSimulation(c.Request.Context(), rec); err != nil {
			s.fail(c, route, err)
			return
		}
		resp.ID = rec.ID
	}

	c.JSON(http.StatusOK, resp)
}

// Predict maps exam marks to a rank band.
func (s *Server) Predict(c *gin.Context) {
	const route = "predict"

	var body PredictRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, route, common.InvalidInput("malformed request body"))
		return
	}
	if body.ExamScore == nil || body.BoardPct == nil {
		s.fail(c, route, common.InvalidInput("exam_score and board_pct are required"))
		return
	}
	if body.Save && s.history == nil {
		s.fail(c, route, common.InvalidInput("history is not enabled on this server"))
		return
	}

	p, err := s.predictor.Predict(*body.ExamScore, *body.BoardPct)
	if err != nil {
		s.fail(c, route, err)
		return
	}
	s.metrics.PredictionsTotal.Inc()

	resp := PredictResponse{
		Prediction: p,
		Percentile: rank.Percentile(p.Medium),
		Analysis:   rank.Analysis(p.Medium),
		Standing:   rank.CompositeLabel(p.Composite),
		Suggestion: rank.CollegeSuggestion(p.Medium, body.Category),
	}

	if body.Save {
		rec := &model.PredictionRecord{ExamScore: *body.ExamScore, BoardPct: *body.BoardPct, Prediction: p}
		if err := s.history.SavePrediction(c.Request.Context(), rec); err != nil {
			s.fail(c, route, err)
			return
		}
		if s.config.HistoryKeep > 0 {
			if _, err := s.history.PrunePredictions(c.Request.Context(), s.config.HistoryKeep); err != nil {
				s.fail(c, route, err)
				return
			}
		}
		resp.ID = rec.ID
	}

	c.JSON(http.StatusOK, resp)
}

// Coverage lists years and rounds present in the dataset, newest first.
func (s *Server) Coverage(c *gin.Context) {
	years := s.dataset.Years()
	out := make([]CoverageYear, 0, len(years))
	for _, y := range years {
		out = append(out, CoverageYear{Year: y, Rounds: s.dataset.Rounds(y)})
	}
	c.JSON(http.StatusOK, gin.H{"years": out})
}

// Cutoffs filters records by query parameters.
func (s *Server) Cutoffs(c *gin.Context) {
	filter := cutoff.Filter{
		Year:          c.Query("year"),
		Round:         c.Query("round"),
		InstituteCode: c.Query("college"),
		CourseCode:    c.Query("course"),
		Category:      c.Query("category"),
		BranchName:    c.Query("branch"),
	}
	records := s.dataset.Query(filter.Predicate())
	if records == nil {
		records = []model.CutoffRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

func outcomeLabel(res *model.SimulationResult) string {
	switch {
	case res.HasWarning():
		return "no_coverage"
	case res.Best == nil:
		return "no_data"
	default:
		return res.Best.Chance.Category.String()
	}
}

func unnumbered(prefs model.Preferences) bool {
	for _, p := range prefs {
		if p.Priority != 0 {
			return false
		}
	}
	return len(prefs) > 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
