package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"

	"github.com/danielpatrickdp/persona-score/internal/api"
	"github.com/danielpatrickdp/persona-score/internal/rpc"
	"github.com/danielpatrickdp/persona-score/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scorer over gRPC and HTTP",
	Long: `Serve personascore.v1.Scorer/Evaluate over gRPC and the /v1 HTTP API.
An empty address disables that listener. With --db every scored line is logged
into one run per server start.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("grpc-addr", "", "gRPC listen address (default from config)")
	serveCmd.Flags().String("http-addr", "", "HTTP listen address (default from config)")
	for _, name := range []string{"grpc-addr", "http-addr"} {
		cobra.CheckErr(viper.BindPFlag(name, serveCmd.Flags().Lookup(name)))
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	grpcAddr, httpAddr := e.cfg.Server.GRPCAddr, e.cfg.Server.HTTPAddr
	if grpcAddr == "" && httpAddr == "" {
		return errors.New("both listeners disabled")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	var sess *store.Session
	if st != nil {
		defer st.Close()
		sess, err = st.Session("serve", "")
		if err != nil {
			return err
		}
		e.logger.Info("recording evaluations", "run_id", sess.RunID())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	var gs *grpc.Server
	if grpcAddr != "" {
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", grpcAddr, err)
		}
		gs = grpc.NewServer()
		var rec rpc.Recorder
		if sess != nil {
			rec = sess
		}
		rpc.Register(gs, rpc.NewServer(e.scorer, rec, e.logger))
		e.logger.Info("grpc listening", "addr", lis.Addr().String())
		go func() { errCh <- gs.Serve(lis) }()
	}

	var hs *http.Server
	if httpAddr != "" {
		if e.cfg.Logging.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		hs = &http.Server{
			Addr:              httpAddr,
			Handler:           api.NewServer(e.scorer, st, sess, e.logger).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		e.logger.Info("http listening", "addr", httpAddr)
		go func() {
			if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		e.logger.Info("shutting down")
	case err := <-errCh:
		e.logger.Error("listener failed", "error", err)
		stop()
		shutdown(gs, hs)
		return err
	}
	shutdown(gs, hs)
	return nil
}

func shutdown(gs *grpc.Server, hs *http.Server) {
	if hs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(ctx)
	}
	if gs != nil {
		gs.GracefulStop()
	}
}
