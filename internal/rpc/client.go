package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/persona-score/internal/persona"
)

// #region client-struct
// Client calls a remote Scorer service.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}
// #endregion client-struct

// #region constructor
// NewClient connects to a Scorer gRPC server.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn wraps an existing connection. Close is then a no-op.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}
// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
// #endregion close

// #region evaluate
// Evaluate scores text remotely.
func (c *Client) Evaluate(ctx context.Context, raw persona.RawContext, text string) (EvaluateResponse, error) {
	req, err := toStruct(EvaluateRequest{Context: raw, Text: text})
	if err != nil {
		return EvaluateResponse{}, fmt.Errorf("encode request: %w", err)
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EvaluateMethod, req, resp); err != nil {
		return EvaluateResponse{}, fmt.Errorf("grpc evaluate: %w", err)
	}
	var out EvaluateResponse
	if err := fromStruct(resp, &out); err != nil {
		return EvaluateResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}
// #endregion evaluate
