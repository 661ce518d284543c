package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danielpatrickdp/persona-score/internal/harness"
	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
	"github.com/danielpatrickdp/persona-score/internal/store"
)

// #region server
// Server serves the scorer over HTTP. store and session may be nil.
type Server struct {
	scorer  *scoring.Scorer
	store   *store.Store
	session *store.Session
	logger  *slog.Logger
}

// NewServer creates a Server. A nil logger falls back to slog.Default.
func NewServer(scorer *scoring.Scorer, st *store.Store, session *store.Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{scorer: scorer, store: st, session: session, logger: logger}
}

// Routes builds the gin engine with every endpoint registered.
func (s *Server) Routes() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.GET("/healthz", s.handleHealthz)
	engine.POST("/v1/evaluate", s.handleEvaluate)
	engine.POST("/v1/check", s.handleCheck)
	engine.GET("/v1/runs", s.handleRuns)
	engine.GET("/v1/runs/:id", s.handleRun)
	return engine
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
// #endregion server

// #region evaluate
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rules": s.scorer.RuleNames()})
}

type evaluateRequest struct {
	Context  persona.RawContext `json:"context"`
	Text     string             `json:"text"`
	CaseID   string             `json:"case_id"`
	MinScore *int               `json:"min_score"`
	MaxScore *int               `json:"max_score"`
}

type evaluateResponse struct {
	Result  scoring.Result `json:"result"`
	Explain string         `json:"explain"`
	Passed  *bool          `json:"passed,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	RunID   string         `json:"run_id,omitempty"`
}

// handleEvaluate scores one line. Optional bounds are checked like a fixture case.
// A missing or null text is the empty line and scores the baseline.
func (s *Server) handleEvaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	cs := harness.Case{
		ID:       req.CaseID,
		Context:  persona.Parse(req.Context),
		Text:     req.Text,
		MinScore: req.MinScore,
		MaxScore: req.MaxScore,
	}
	cr := harness.Run(s.scorer, []harness.Case{cs})[0]
	resp := evaluateResponse{Result: cr.Result, Explain: cr.Result.Explain()}
	var passed *bool
	if cr.Checked {
		passed = &cr.Passed
		resp.Passed = passed
		resp.Reason = cr.Reason
	}

	if s.session != nil {
		if _, err := s.session.Log(cs.ID, cs.Context, cs.Text, cr.Result, passed); err != nil {
			s.logger.Warn("record evaluation failed", "error", err)
		} else {
			resp.RunID = s.session.RunID()
		}
	}
	c.JSON(http.StatusOK, resp)
}
// #endregion evaluate

// #region check
type caseOutcome struct {
	ID      string         `json:"id"`
	Score   int            `json:"score"`
	Passed  bool           `json:"passed"`
	Checked bool           `json:"checked"`
	Reason  string         `json:"reason"`
	Result  scoring.Result `json:"result"`
}

// handleCheck runs a posted fixture and reports each case.
func (s *Server) handleCheck(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body"})
		return
	}
	fx, err := harness.ParseFixture(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := harness.RunParallel(s.scorer, fx.ToCases(), 0)
	out := make([]caseOutcome, len(results))
	for i, r := range results {
		out[i] = caseOutcome{ID: r.ID, Score: r.Result.ScoreTotal, Passed: r.Passed, Checked: r.Checked, Reason: r.Reason, Result: r.Result}
	}
	c.JSON(http.StatusOK, gin.H{"summary": harness.Summarize(results), "cases": out})
}
// #endregion check

// #region history
func (s *Server) handleRuns(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history disabled"})
		return
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	runs, err := s.store.ListRuns(limit)
	if err != nil {
		s.logger.Error("list runs failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list runs failed"})
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) handleRun(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history disabled"})
		return
	}
	id := c.Param("id")
	run, err := s.store.GetRun(id)
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		s.logger.Error("get run failed", "run_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get run failed"})
		return
	}
	evals, err := s.store.ListEvaluations(id)
	if err != nil {
		s.logger.Error("list evaluations failed", "run_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list evaluations failed"})
		return
	}
	if evals == nil {
		evals = []store.Evaluation{}
	}
	c.JSON(http.StatusOK, gin.H{"run": run, "evaluations": evals})
}
// #endregion history
