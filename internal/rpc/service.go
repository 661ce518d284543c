package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
)

// #region service-desc
const (
	ServiceName    = "personascore.v1.Scorer"
	EvaluateMethod = "/" + ServiceName + "/Evaluate"
)

// ScorerServer is the server API for the Scorer service.
// Requests and responses travel as google.protobuf.Struct.
type ScorerServer interface {
	Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the Scorer service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScorerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "personascore/v1/scorer.proto",
}

// Register attaches srv to a grpc.Server.
func Register(s grpc.ServiceRegistrar, srv ScorerServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScorerServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EvaluateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScorerServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
// #endregion service-desc

// #region messages
// EvaluateRequest is the decoded form of an Evaluate request struct.
// A missing or null text decodes as the empty line.
type EvaluateRequest struct {
	Context persona.RawContext `json:"context"`
	Text    string             `json:"text"`
	CaseID  string             `json:"case_id,omitempty"`
}

// EvaluateResponse is the decoded form of an Evaluate response struct.
type EvaluateResponse struct {
	Result  scoring.Result `json:"result"`
	Explain string         `json:"explain"`
	RunID   string         `json:"run_id,omitempty"`
}

// toStruct converts any JSON-marshalable value to a structpb.Struct.
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal to map: %w", err)
	}
	return structpb.NewStruct(m)
}

// fromStruct decodes s into v through its JSON form.
func fromStruct(s *structpb.Struct, v interface{}) error {
	if s == nil {
		return fmt.Errorf("nil struct")
	}
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("marshal struct: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode struct: %w", err)
	}
	return nil
}
// #endregion messages
