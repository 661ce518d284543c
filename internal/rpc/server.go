package rpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/persona-score/internal/harness"
	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
	"github.com/danielpatrickdp/persona-score/internal/store"
)

// #region server-struct
// Recorder persists scored lines. *store.Session satisfies it.
type Recorder interface {
	RunID() string
	Log(caseID string, ctx persona.ScoringContext, text string, res scoring.Result, passed *bool) (store.Evaluation, error)
}

// Server implements ScorerServer over a scorer.
type Server struct {
	scorer   harness.Evaluator
	recorder Recorder
	logger   *slog.Logger
}

// NewServer creates a Server. recorder may be nil.
func NewServer(scorer harness.Evaluator, recorder Recorder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{scorer: scorer, recorder: recorder, logger: logger}
}
// #endregion server-struct

// #region evaluate
// Evaluate scores the request's text against its context.
func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in EvaluateRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad request: %v", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	sctx := persona.Parse(in.Context)
	res := s.scorer.Evaluate(sctx, in.Text)
	out := EvaluateResponse{Result: res, Explain: res.Explain()}

	if s.recorder != nil {
		if _, err := s.recorder.Log(in.CaseID, sctx, in.Text, res, nil); err != nil {
			s.logger.Warn("record evaluation failed", "error", err)
		} else {
			out.RunID = s.recorder.RunID()
		}
	}
	s.logger.Debug("grpc evaluate", "score", res.ScoreTotal, "fallbacks", len(res.Fallbacks))

	resp, err := toStruct(out)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return resp, nil
}
// #endregion evaluate
