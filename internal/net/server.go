package net

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"strconv"

	"LocalPaint/internal/config"
	"LocalPaint/internal/document"
	"LocalPaint/internal/export"
	"LocalPaint/internal/paint"
	"LocalPaint/internal/state"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	maxDocumentSize = 32 << 20
	maxCanvasSide   = 4096
)

//go:embed web/index.html
var webFS embed.FS

// Server is the browser host: it creates paint sessions and exposes them
// over HTTP and websockets.
type Server struct {
	cfg      config.Config
	ctx      context.Context
	sessions *state.Registry
	peers    *PeerManager
	upgrader websocket.Upgrader
	logger   *slog.Logger
	router   *mux.Router
}

// NewServer wires the routes. Sessions live until deleted or ctx ends.
func NewServer(ctx context.Context, cfg config.Config, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		ctx:      ctx,
		sessions: state.NewRegistry(cfg.MaxSessions),
		peers:    NewPeerManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 << 10,
		},
		logger: logger,
		router: mux.NewRouter(),
	}
	r := s.router
	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/sessions", s.listSessions).Methods(http.MethodGet)
	r.HandleFunc("/sessions", s.createSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", s.deleteSession).Methods(http.MethodDelete)
	r.HandleFunc("/sessions/{id}/ws", s.attach).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/document", s.loadDocument).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/export.pdf", s.exportPDF).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/frame.png", s.frame).Methods(http.MethodGet)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Sessions() *state.Registry { return s.sessions }

// Close stops every session.
func (s *Server) Close() {
	s.sessions.StopAll()
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

type hostInfo struct {
	Host     string   `json:"host"`
	Sessions []string `json:"sessions"`
}

type sessionInfo struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, hostInfo{Host: state.HostID(), Sessions: s.sessions.IDs()})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	width, height := s.cfg.Width, s.cfg.Height
	if v := r.URL.Query().Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "bad width", http.StatusBadRequest)
			return
		}
		width = n
	}
	if v := r.URL.Query().Get("height"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "bad height", http.StatusBadRequest)
			return
		}
		height = n
	}
	if width > maxCanvasSide || height > maxCanvasSide {
		http.Error(w, "canvas too large", http.StatusBadRequest)
		return
	}

	e, err := s.sessions.Start(s.ctx,
		paint.WithHistoryLimit(s.cfg.HistoryLimit),
		paint.WithHistoryBytes(s.cfg.HistoryBytes()),
		paint.WithPageScale(s.cfg.PageScale),
		paint.WithLogger(s.logger),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	var initErr error
	if err := e.Actor.Do(r.Context(), func(ps *paint.Session) {
		initErr = ps.Init(width, height)
	}); err != nil {
		s.sessions.Remove(e.ID)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if initErr != nil {
		s.sessions.Remove(e.ID)
		http.Error(w, initErr.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, sessionInfo{ID: e.ID, Width: width, Height: height})
}

func (s *Server) entry(w http.ResponseWriter, r *http.Request) (*state.Entry, bool) {
	id := mux.Vars(r)["id"]
	if !state.ValidID(id) {
		http.Error(w, "malformed session id", http.StatusBadRequest)
		return nil, false
	}
	e, ok := s.sessions.Get(id)
	if !ok {
		http.Error(w, "no such session", http.StatusNotFound)
	}
	return e, ok
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Remove(mux.Vars(r)["id"]) {
		http.Error(w, "no such session", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) attach(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	if !e.TryAttach() {
		http.Error(w, "session already has a browser attached", http.StatusConflict)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.Detach()
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	go func() {
		defer e.Detach()
		s.peers.Serve(s.ctx, &Peer{Conn: conn, Entry: e})
	}()
}

func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize+1))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(data) > maxDocumentSize {
		http.Error(w, "document too large", http.StatusRequestEntityTooLarge)
		return
	}
	doc, err := document.OpenBytes(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}
	var (
		info    sessionInfo
		loadErr error
	)
	if err := e.Actor.Do(r.Context(), func(ps *paint.Session) {
		loadErr = ps.LoadPage(doc)
		if surf := ps.Surface(); surf != nil {
			info = sessionInfo{ID: e.ID, Width: surf.Width(), Height: surf.Height()}
		}
	}); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if loadErr != nil {
		http.Error(w, loadErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) exportPDF(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var (
		buf       bytes.Buffer
		exportErr error
	)
	if err := e.Actor.Do(r.Context(), func(ps *paint.Session) {
		exportErr = ps.Export(&buf)
	}); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if exportErr != nil {
		status := http.StatusInternalServerError
		if errors.Is(exportErr, paint.ErrNoSurface) {
			status = http.StatusConflict
		}
		http.Error(w, exportErr.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="download.pdf"`)
	w.Write(buf.Bytes())
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	var encErr error
	if err := e.Actor.Do(r.Context(), func(ps *paint.Session) {
		img := ps.Image()
		if img == nil {
			encErr = paint.ErrNoSurface
			return
		}
		encErr = export.WritePNG(&buf, img)
	}); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if encErr != nil {
		http.Error(w, encErr.Error(), http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
