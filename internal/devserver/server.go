// Package devserver provides an in-memory backend implementing the community
// REST API, for local development and tests.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/gateway"
	"github.com/cristianoliveira/courtside/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Error payloads returned for repeated applications. Each endpoint family
// reports duplicates differently.
const (
	MsgActivityDuplicate = "이미 신청한 활동입니다"
	MsgAcademyOpaque     = "서버 오류가 발생했습니다"
	MsgAlreadyConfirmed  = "application already confirmed"
	MsgSlotFull          = "정원이 마감되었습니다"
)

const defaultPageSize = 20

// Option configures a Server.
type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every API call.
// An empty token disables the check.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithPosts replaces the seeded posts.
func WithPosts(posts []domain.Post) Option {
	return func(s *Server) { s.posts = append([]domain.Post(nil), posts...) }
}

// WithSlots replaces the seeded slots.
func WithSlots(slots map[domain.SlotKind][]domain.Slot) Option {
	return func(s *Server) {
		s.slots = map[domain.SlotKind][]domain.Slot{}
		for kind, list := range slots {
			s.slots[kind] = append([]domain.Slot(nil), list...)
		}
	}
}

// WithFlakyLikes makes every nth like request fail with 503. Zero disables it.
func WithFlakyLikes(n int) Option {
	return func(s *Server) { s.flakyLikes = n }
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

type applicationKey struct {
	kind   domain.SlotKind
	slotID int64
}

// Server is the in-memory backend.
type Server struct {
	mu         sync.Mutex
	posts      []domain.Post
	slots      map[domain.SlotKind][]domain.Slot
	attempts   map[applicationKey]int
	likeCalls  int
	flakyLikes int

	token  string
	log    logging.Logger
	router chi.Router
}

// New creates a server seeded with DefaultPostCount posts and SeedSlots.
func New(opts ...Option) *Server {
	s := &Server{
		posts:    SeedPosts(DefaultPostCount, time.Now()),
		slots:    SeedSlots(),
		attempts: map[applicationKey]int{},
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "devserver")
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/posts", s.handleListPosts)
		r.Post("/posts/{postID}/like", s.handleToggleLike)
		r.Post("/posts/{postID}/notification", s.handleToggleNotification)
		r.Delete("/posts/{postID}", s.handleDeletePost)

		r.Get("/{kind}/slots", s.handleListSlots)
		r.Post("/{kind}/slots/{slotID}/applications", s.handleApply)
	})

	s.router = r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dev server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("devserver: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("devserver: shutdown: %w", err)
		}
		return nil
	}
}

// --- Middleware ---

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Post Handlers ---

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil || page < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]string{{"message": "invalid page"}}})
		return
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil || size <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]string{{"message": "invalid size"}}})
		return
	}

	s.mu.Lock()
	start := page * size
	end := start + size
	var items []domain.Post
	if start < len(s.posts) {
		items = append(items, s.posts[start:min(end, len(s.posts))]...)
	}
	hasNext := end < len(s.posts)
	s.mu.Unlock()

	payload := gateway.PagePayload{Items: make([]gateway.PostPayload, 0, len(items)), HasNext: hasNext}
	for _, p := range items {
		payload.Items = append(payload.Items, gateway.PostPayloadFrom(p))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.likeCalls++
	if s.flakyLikes > 0 && s.likeCalls%s.flakyLikes == 0 {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	i, ok := s.findPost(w, r)
	if !ok {
		return
	}
	s.posts[i] = s.posts[i].WithLiked(!s.posts[i].Liked)
	writeJSON(w, http.StatusOK, map[string]any{"liked": s.posts[i].Liked, "likeCount": s.posts[i].LikeCount})
}

func (s *Server) handleToggleNotification(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findPost(w, r)
	if !ok {
		return
	}
	post := s.posts[i]
	if !post.SupportsNotification() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "notifications are not supported for this post"})
		return
	}
	s.posts[i] = post.WithNotification(!*post.NotificationEnabled)
	writeJSON(w, http.StatusOK, gateway.NotificationPayload{Enabled: *s.posts[i].NotificationEnabled})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findPost(w, r)
	if !ok {
		return
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// findPost resolves the postID parameter. It writes the error response and
// returns false when the post does not exist. Callers hold s.mu.
func (s *Server) findPost(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid post id"})
		return 0, false
	}
	for i := range s.posts {
		if s.posts[i].ID == id {
			return i, true
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "post not found"})
	return 0, false
}

// --- Slot Handlers ---

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	slots := append([]domain.Slot(nil), s.slots[kind]...)
	s.mu.Unlock()

	payload := gateway.SlotsPayload{Items: make([]gateway.SlotPayload, 0, len(slots))}
	for _, slot := range slots {
		payload.Items = append(payload.Items, gateway.SlotPayloadFrom(slot))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	slotID, err := strconv.ParseInt(chi.URLParam(r, "slotID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid slot id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, slot := range s.slots[kind] {
		if slot.ID == slotID {
			idx = i
			break
		}
	}
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "slot not found"})
		return
	}

	key := applicationKey{kind: kind, slotID: slotID}
	attempts := s.attempts[key]
	switch {
	case attempts >= 2:
		s.attempts[key]++
		writeJSON(w, http.StatusConflict, map[string]any{"error": map[string]string{"message": MsgAlreadyConfirmed}})
		return
	case attempts == 1:
		s.attempts[key]++
		if kind == domain.KindAcademy {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": MsgAcademyOpaque})
		} else {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": MsgActivityDuplicate})
		}
		return
	}

	slot := &s.slots[kind][idx]
	if slot.IsFull() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": MsgSlotFull})
		return
	}
	slot.Current++
	s.attempts[key] = 1
	writeJSON(w, http.StatusCreated, map[string]any{"slotId": slotID, "status": "applied"})
}

// --- Helpers ---

func kindParam(w http.ResponseWriter, r *http.Request) (domain.SlotKind, bool) {
	kind, err := domain.ParseSlotKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "unknown slot kind"})
		return "", false
	}
	return kind, true
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
