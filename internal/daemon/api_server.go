package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"mediasort/internal/api"
	"mediasort/internal/config"
	"mediasort/internal/logging"
	"mediasort/internal/organizer"
	"mediasort/internal/services"
)

// operation enumerates the requests the trigger endpoint accepts. Request
// bodies are parsed into this closed set at the boundary so unknown request
// types are rejected before touching the daemon.
type operation int

const (
	opUnknown operation = iota
	opOrganizeMediaFolder
)

func parseOperation(reqType string) (operation, error) {
	switch reqType {
	case "organize_media_folder":
		return opOrganizeMediaFolder, nil
	default:
		return opUnknown, fmt.Errorf("unknown req_type %q", reqType)
	}
}

type triggerRequest struct {
	ReqType string `json:"req_type"`
}

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address not configured")
	}
	srv := &apiServer{
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "api"),
		daemon: d,
	}
	return srv, nil
}

func (s *apiServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleTrigger)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/runs", s.handleRunList)
	mux.HandleFunc("/api/runs/", s.handleRunDetail)
	return mux
}

func (s *apiServer) start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return nil
	}

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.bind, err)
	}

	server := &http.Server{
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.listener = listener
	s.server = server

	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error("api server terminated", logging.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("bind", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()
	if server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

func (s *apiServer) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req triggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	op, err := parseOperation(req.ReqType)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch op {
	case opOrganizeMediaFolder:
		s.organize(w, r)
	default:
		s.writeError(w, http.StatusBadRequest, "unsupported operation")
	}
}

func (s *apiServer) organize(w http.ResponseWriter, r *http.Request) {
	run, err := s.daemon.Organize(r.Context(), organizer.Request{})
	if err != nil {
		if errors.Is(err, services.ErrConfiguration) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := api.OrganizeResponse{
		Message: "media folder organized",
		Run:     api.FromStoredRun(*run),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status, err := s.daemon.Status(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		InputDir:     status.InputDir,
		OutputDir:    status.OutputDir,
		RunsDBPath:   status.RunsDBPath,
		LockFilePath: status.LockFilePath,
		Organizing:   status.Organizing,
		TotalRuns:    status.TotalRuns,
	}
	if status.LastRun != nil {
		last := api.FromStoredRun(*status.LastRun)
		resp.LastRun = &last
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleRunList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	stored, err := s.daemon.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.RunListResponse{Runs: api.FromStoredRuns(stored)})
}

func (s *apiServer) handleRunDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}

	run, entries, err := s.daemon.DescribeRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.RunDetailResponse{
		Run:     api.FromStoredRun(*run),
		Entries: api.FromStoredEntries(entries),
	})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to encode api response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
