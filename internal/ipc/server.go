package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"mediasort/internal/api"
	"mediasort/internal/daemon"
	"mediasort/internal/logging"
	"mediasort/internal/organizer"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Mediasort", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"),
					logging.String(logging.FieldImpact, "IPC clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "Check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "ipc_socket_cleanup_failed"),
			logging.String(logging.FieldImpact, "stale IPC socket may block future starts"),
			logging.String(logging.FieldErrorHint, "Remove the socket file manually before restarting the daemon"))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Organize(req OrganizeRequest, resp *OrganizeResponse) error {
	s.log().Debug("organize requested via IPC")
	run, err := s.daemon.Organize(s.ctx, organizer.Request{
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
	})
	if err != nil {
		return err
	}
	resp.Message = "media folder organized"
	resp.Run = api.FromStoredRun(*run)
	s.log().Info("organize completed via IPC",
		logging.String(logging.FieldEventType, "organize"),
		logging.String(logging.FieldRunID, run.ID))
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status, err := s.daemon.Status(s.ctx)
	if err != nil {
		return err
	}
	resp.Running = status.Running
	resp.PID = status.PID
	resp.Organizing = status.Organizing
	resp.InputDir = status.InputDir
	resp.OutputDir = status.OutputDir
	resp.RunsDBPath = status.RunsDBPath
	resp.LockPath = status.LockFilePath
	resp.TotalRuns = status.TotalRuns
	if status.LastRun != nil {
		last := api.FromStoredRun(*status.LastRun)
		resp.LastRun = &last
	}
	return nil
}

func (s *service) RunList(req RunListRequest, resp *RunListResponse) error {
	if req.Limit < 0 {
		return fmt.Errorf("invalid limit %d", req.Limit)
	}
	stored, err := s.daemon.ListRuns(s.ctx, req.Limit)
	if err != nil {
		return err
	}
	resp.Runs = api.FromStoredRuns(stored)
	return nil
}

func (s *service) RunDescribe(req RunDescribeRequest, resp *RunDescribeResponse) error {
	if req.ID == "" {
		return errors.New("run describe requires an id")
	}
	run, entries, err := s.daemon.DescribeRun(s.ctx, req.ID)
	if err != nil {
		return err
	}
	resp.Run = api.FromStoredRun(*run)
	resp.Entries = api.FromStoredEntries(entries)
	return nil
}

func (s *service) RunClear(_ RunClearRequest, resp *RunClearResponse) error {
	s.log().Debug("run history clear requested")
	removed, err := s.daemon.ClearRuns(s.ctx)
	if err != nil {
		return err
	}
	resp.Removed = removed
	s.log().Info("run history cleared",
		logging.String(logging.FieldEventType, "runs_clear"),
		logging.Int("removed_count", removed))
	return nil
}

func (s *service) DatabaseHealth(_ DatabaseHealthRequest, resp *DatabaseHealthResponse) error {
	health, err := s.daemon.DatabaseHealth(s.ctx)
	if err != nil && health.Error == "" {
		return err
	}
	resp.DBPath = health.DBPath
	resp.DatabaseExists = health.DatabaseExists
	resp.DatabaseReadable = health.DatabaseReadable
	resp.SchemaVersion = health.SchemaVersion
	resp.TotalRuns = health.TotalRuns
	resp.Error = health.Error
	if err != nil {
		return err
	}
	return nil
}
