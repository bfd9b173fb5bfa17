// Package web serves 2048 games over HTTP and WebSocket. Each game is a
// session keyed by a UUID; finished or abandoned games are recorded in the
// shared score store.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Config holds the web server settings.
type Config struct {
	Address      string        // host:port to listen on
	SessionIdle  time.Duration // Sessions untouched for this long are pruned
	PruneEvery   time.Duration // Interval of the prune loop
	ScoresLimit  int           // Default number of entries for score listings
	RequestLimit time.Duration // Timeout of plain HTTP requests
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:      ":8048",
		SessionIdle:  30 * time.Minute,
		PruneEvery:   time.Minute,
		ScoresLimit:  10,
		RequestLimit: 30 * time.Second,
	}
}

// Server is the HTTP front end.
type Server struct {
	cfg      Config
	sessions *Manager
	store    *storage.Store // may be nil
	logger   *log.Logger
}

// NewServer creates a server. store may be nil, in which case scores are
// neither seeded nor recorded.
func NewServer(cfg Config, gameCfg config.T2048Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.ScoresLimit <= 0 {
		cfg.ScoresLimit = DefaultConfig().ScoresLimit
	}
	return &Server{
		cfg:      cfg,
		sessions: NewManager(gameCfg),
		store:    store,
		logger:   logger,
	}
}

// Sessions exposes the session manager.
func (s *Server) Sessions() *Manager {
	return s.sessions
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Route("/api", func(r chi.Router) {
		// WebSocket connections outlive the request timeout
		r.Get("/games/{id}/ws", s.handleWebSocket)

		r.Group(func(r chi.Router) {
			if s.cfg.RequestLimit > 0 {
				r.Use(middleware.Timeout(s.cfg.RequestLimit))
			}
			r.Get("/modes", s.handleListModes)
			r.Post("/games", s.handleCreateGame)
			r.Get("/games/{id}", s.handleGetGame)
			r.Delete("/games/{id}", s.handleEndGame)
			r.Post("/games/{id}/move", s.handleMove)
			r.Post("/games/{id}/undo", s.handleUndo)
			r.Post("/games/{id}/reset", s.handleReset)
			r.Get("/scores/{gameID}", s.handleScores)
		})
	})

	return r
}

// ListenAndServe runs the server and the prune loop until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.pruneLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	// Record games still in progress
	for _, sess := range s.sessions.Drain() {
		s.recordResult(sess)
	}
	return err
}

func (s *Server) pruneLoop(ctx context.Context) {
	every := s.cfg.PruneEvery
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, sess := range s.sessions.Prune(s.cfg.SessionIdle) {
				s.logger.Debug("pruned idle session", "session", sess.ID)
				s.recordResult(sess)
			}
		}
	}
}

// recordResult stores the session's game unless that score is already
// stored. Games without points are skipped.
func (s *Server) recordResult(sess *Session) {
	if s.store == nil {
		return
	}
	snap := sess.Snapshot()
	if !sess.claimRecord(snap.Score) {
		return
	}
	_, err := s.store.SaveScore(storage.GameResult{
		GameID:   sess.GameID,
		Score:    snap.Score,
		MaxTile:  snap.MaxTile,
		Moves:    snap.Moves,
		Duration: time.Duration(snap.ElapsedMS) * time.Millisecond,
		Won:      snap.Won,
	})
	if err != nil {
		s.logger.Warn("could not save score", "game", sess.GameID, "error", err)
	}
}

func (s *Server) bestScore(gameID string) int {
	if s.store == nil {
		return 0
	}
	best, err := s.store.HighScore(gameID)
	if err != nil {
		s.logger.Warn("could not load best score", "game", gameID, "error", err)
		return 0
	}
	return best
}

// loggingMiddleware logs every request with its ID and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(started),
		)
	})
}

// gameResponse is the body of every game endpoint.
type gameResponse struct {
	ID     string            `json:"id"`
	GameID string            `json:"game_id"`
	Mode   t2048.Mode        `json:"mode"`
	Result *t2048.MoveResult `json:"result,omitempty"`
	t2048.Snapshot
}

func newGameResponse(sess *Session, snap t2048.Snapshot, result *t2048.MoveResult) gameResponse {
	return gameResponse{
		ID:       sess.ID.String(),
		GameID:   sess.GameID,
		Mode:     sess.Mode,
		Result:   result,
		Snapshot: snap,
	}
}

type createRequest struct {
	Mode string `json:"mode"`
}

type moveRequest struct {
	Direction string `json:"direction"`
}

type modeResponse struct {
	Mode       t2048.Mode `json:"mode"`
	GameID     string     `json:"game_id"`
	Name       string     `json:"name"`
	Size       int        `json:"size"`
	StartTiles int        `json:"start_tiles"`
}

type scoreResponse struct {
	Rank       int       `json:"rank"`
	Score      int       `json:"score"`
	MaxTile    int       `json:"max_tile"`
	Moves      int       `json:"moves"`
	DurationMS int64     `json:"duration_ms"`
	Won        bool      `json:"won"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Server) handleListModes(w http.ResponseWriter, _ *http.Request) {
	modes := make([]modeResponse, 0, len(t2048.Modes))
	for _, m := range t2048.Modes {
		modes = append(modes, modeResponse{
			Mode:       m.Mode,
			GameID:     m.Mode.GameID(),
			Name:       m.Name,
			Size:       m.Size,
			StartTiles: m.StartTiles,
		})
	}
	writeJSON(w, http.StatusOK, modes)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	// An empty body starts the classic mode
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	mode, err := t2048.ParseMode(req.Mode)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	sess, err := s.sessions.Create(mode, s.bestScore(mode.GameID()))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.logger.Info("game created", "session", sess.ID, "mode", mode)

	writeJSON(w, http.StatusCreated, newGameResponse(sess, sess.Snapshot(), nil))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameResponse(sess, sess.Snapshot(), nil))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	snap, result, err := s.move(sess, req.Direction)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameResponse(sess, snap, &result))
}

// move applies a direction token to the session.
func (s *Server) move(sess *Session, token string) (t2048.Snapshot, t2048.MoveResult, error) {
	var (
		snap   t2048.Snapshot
		result t2048.MoveResult
	)
	dir, err := t2048.ParseDirection(token)
	if err != nil {
		return snap, result, err
	}

	err = sess.Do(s.sessions.now(), func(e *t2048.Engine) error {
		var moveErr error
		result, moveErr = e.ApplyMove(dir)
		snap = e.Snapshot()
		return moveErr
	})
	if err == nil && result.GameOver {
		s.recordResult(sess)
	}
	return snap, result, err
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameResponse(sess, s.undo(sess), nil))
}

func (s *Server) undo(sess *Session) t2048.Snapshot {
	var snap t2048.Snapshot
	_ = sess.Do(s.sessions.now(), func(e *t2048.Engine) error { //nolint:errcheck // callback never fails
		e.Undo()
		snap = e.Snapshot()
		return nil
	})
	return snap
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}

	snap, err := s.reset(sess)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameResponse(sess, snap, nil))
}

// reset records the current game and starts a new one in the session.
func (s *Server) reset(sess *Session) (t2048.Snapshot, error) {
	s.recordResult(sess)
	if err := s.sessions.Restart(sess); err != nil {
		return t2048.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Remove(chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.recordResult(sess)
	s.logger.Info("game ended", "session", sess.ID, "score", sess.Snapshot().Score)

	writeJSON(w, http.StatusOK, newGameResponse(sess, sess.Snapshot(), nil))
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scores are not available")
		return
	}

	mode, err := t2048.ParseMode(chi.URLParam(r, "gameID"))
	if err != nil {
		s.writeErr(w, err)
		return
	}

	limit := s.cfg.ScoresLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, 100)
	}

	entries, err := s.store.TopScores(mode.GameID(), limit)
	if err != nil {
		s.logger.Error("could not load scores", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load scores")
		return
	}

	scores := make([]scoreResponse, 0, len(entries))
	for i, e := range entries {
		scores = append(scores, scoreResponse{
			Rank:       i + 1,
			Score:      e.Score,
			MaxTile:    e.MaxTile,
			Moves:      e.Moves,
			DurationMS: e.Duration.Milliseconds(),
			Won:        e.Won,
			CreatedAt:  e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, scores)
}

// writeErr maps domain errors to HTTP status codes.
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, t2048.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeJSON writes a JSON response with proper headers.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("could not encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
