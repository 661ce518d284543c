package rpc

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
	"github.com/danielpatrickdp/persona-score/internal/store"
)

// #region fixtures
func startServer(t *testing.T, srv ScorerServer) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	Register(gs, srv)
	go gs.Serve(lis)
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}
// #endregion fixtures

func TestEvaluate_RoundTrip(t *testing.T) {
	conn := startServer(t, NewServer(scoring.Default(), nil, nil))
	client := NewClientWithConn(conn)
	defer client.Close()

	resp, err := client.Evaluate(context.Background(),
		persona.RawContext{TimeBlock: "afternoon", TopNeed: "rest", TrustTier: "mid"},
		"졸려… 그냥 누울래냥...")
	require.NoError(t, err)

	local := scoring.Evaluate(persona.ScoringContext{
		TimeBlock: persona.TimeAfternoon, TopNeed: persona.NeedRest, TrustTier: persona.TrustMid,
		LastInteraction: persona.InteractionNone,
	}, "졸려… 그냥 누울래냥...")
	assert.Equal(t, local.ScoreTotal, resp.Result.ScoreTotal)
	assert.Equal(t, len(local.Contributions), len(resp.Result.Contributions))
	assert.Equal(t, resp.Result.ScoreTotal, resp.Result.Reconstruct())
	assert.Contains(t, resp.Explain, "baseline 50")
	assert.Empty(t, resp.RunID)
}

func TestEvaluate_FallbacksCrossTheWire(t *testing.T) {
	conn := startServer(t, NewServer(scoring.Default(), nil, nil))
	client := NewClientWithConn(conn)

	resp, err := client.Evaluate(context.Background(), persona.RawContext{TrustTier: "bestie"}, "냥")
	require.NoError(t, err)
	require.Len(t, resp.Result.Fallbacks, 1)
	assert.Equal(t, persona.Fallback{Field: "trust_tier", Raw: "bestie"}, resp.Result.Fallbacks[0])
}

func TestEvaluate_MissingTextScoresBaseline(t *testing.T) {
	conn := startServer(t, NewServer(scoring.Default(), nil, nil))

	for name, fields := range map[string]map[string]interface{}{
		"missing": {"context": map[string]interface{}{"top_need": "rest"}},
		"null":    {"context": map[string]interface{}{}, "text": nil},
	} {
		t.Run(name, func(t *testing.T) {
			req, err := structpb.NewStruct(fields)
			require.NoError(t, err)
			raw := new(structpb.Struct)
			require.NoError(t, conn.Invoke(context.Background(), EvaluateMethod, req, raw))

			var resp EvaluateResponse
			require.NoError(t, fromStruct(raw, &resp))
			assert.Equal(t, scoring.DefaultBaseline, resp.Result.ScoreTotal)
			for _, c := range resp.Result.Contributions {
				assert.Zero(t, c.Delta, c.Rule)
			}
		})
	}
}

func TestEvaluate_WrongTextTypeIsInvalidArgument(t *testing.T) {
	conn := startServer(t, NewServer(scoring.Default(), nil, nil))

	req, err := structpb.NewStruct(map[string]interface{}{"text": 42.0})
	require.NoError(t, err)
	err = conn.Invoke(context.Background(), EvaluateMethod, req, new(structpb.Struct))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestEvaluate_RecordsToStore(t *testing.T) {
	st, err := store.NewStore(filepath.Join(t.TempDir(), "rpc.db"))
	require.NoError(t, err)
	defer st.Close()
	sess, err := st.Session("grpc", "")
	require.NoError(t, err)

	conn := startServer(t, NewServer(scoring.Default(), sess, nil))
	client := NewClientWithConn(conn)

	resp, err := client.Evaluate(context.Background(), persona.RawContext{TopNeed: "play"}, "놀자냥")
	require.NoError(t, err)
	assert.Equal(t, sess.RunID(), resp.RunID)

	evals, err := st.ListEvaluations(sess.RunID())
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, resp.Result.ScoreTotal, evals[0].Score)
	assert.Equal(t, "놀자냥", evals[0].Text)
}

func TestNewClient_LazyDial(t *testing.T) {
	client, err := NewClient("localhost:0")
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}
