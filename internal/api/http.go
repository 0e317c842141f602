package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"DeliveryDashboard/internal/catalog"
	"DeliveryDashboard/internal/dashboard"
	"DeliveryDashboard/internal/kv"
	"DeliveryDashboard/internal/session"
	"DeliveryDashboard/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Dispatcher interface {
	Dispatch(ctx context.Context, cmd dashboard.Command) (dashboard.Result, error)
}

// Notifier receives events that do not go through the dispatcher.
type Notifier interface {
	Notify(eventType, op string)
}

type Server struct {
	Dispatcher Dispatcher
	// Session answers whether admin mode is still on; tokens issued before a
	// logout stop working once it is off.
	Session  interface{ IsAdmin() bool }
	Tokens   *session.TokenMaker
	TokenTTL time.Duration

	// Storage backs /settings and /readyz.
	Storage     kv.Store
	SettingsKey string

	// Live serves /ws when set.
	Live     http.Handler
	Notifier Notifier
	// LoginLimiter throttles POST /admin/login per client IP when set.
	LoginLimiter *kit.IPRateLimiter

	Log *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.handleReady)

	r.Get("/restaurants", s.handleList)
	r.Get("/restaurants/{id}", s.handleGet)
	r.Get("/search", s.handleSearch)
	r.Post("/refresh", s.handleRefresh)

	r.Get("/admin/session", s.handleSession)
	if s.LoginLimiter != nil {
		r.With(s.LoginLimiter.Middleware).Post("/admin/login", s.handleLogin)
	} else {
		r.Post("/admin/login", s.handleLogin)
	}

	r.Get("/settings", s.handleGetSettings)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)

		r.Post("/restaurants", s.handleCreate)
		r.Put("/restaurants/{id}", s.handleUpdate)
		r.Delete("/restaurants/{id}", s.handleDelete)
		r.Post("/admin/logout", s.handleLogout)
		r.Put("/settings", s.handlePutSettings)
	})

	if s.Live != nil {
		r.Handle("/ws", s.Live)
	}

	return r
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Storage.Ping(ctx); err != nil {
		s.log().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not_ready", "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	res, err := s.Dispatcher.Dispatch(r.Context(), dashboard.ListRestaurants{})
	if err != nil {
		s.writeDispatchError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, res.Restaurants)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := s.Dispatcher.Dispatch(r.Context(), dashboard.GetRestaurant{ID: id})
	if err != nil {
		s.writeDispatchError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, res.Restaurant)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req restaurantReq
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := s.Dispatcher.Dispatch(r.Context(), dashboard.CreateRestaurant{
		Name:  req.Name,
		Zones: req.zones(),
	})
	if err != nil {
		s.writeDispatchError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/restaurants/%d", res.Restaurant.ID))
	kit.WriteJSON(w, http.StatusCreated, res.Restaurant)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req restaurantReq
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := s.Dispatcher.Dispatch(r.Context(), dashboard.UpdateRestaurant{
		ID:    id,
		Name:  req.Name,
		Zones: req.zones(),
	})
	if err != nil {
		s.writeDispatchError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, res.Restaurant)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := s.Dispatcher.Dispatch(r.Context(), dashboard.DeleteRestaurant{ID: id}); err != nil {
		s.writeDispatchError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	res, err := s.Dispatcher.Dispatch(r.Context(), dashboard.SearchZones{Query: r.URL.Query().Get("q")})
	if err != nil {
		s.writeDispatchError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, res.Search)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	res, err := s.Dispatcher.Dispatch(r.Context(), dashboard.Refresh{})
	if err != nil {
		s.writeDispatchError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, res.Restaurants)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad_request", "id must be an integer", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad_json", "bad json", map[string]any{"cause": err.Error()})
		return false
	}
	return true
}

func (s *Server) writeDispatchError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, details := classify(err)
	if status >= http.StatusInternalServerError {
		s.log().Error("request failed", zap.String("code", code), zap.Error(err))
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "server error"
	}
	kit.WriteError(w, r, status, code, msg, details)
}

func classify(err error) (int, string, any) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "validation_failed", verr.Fields
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "not_found", nil
	case errors.Is(err, dashboard.ErrAdminRequired):
		return http.StatusUnauthorized, "admin_required", nil
	case errors.Is(err, dashboard.ErrWrongPassword):
		return http.StatusUnauthorized, "wrong_password", nil
	case errors.Is(err, dashboard.ErrActionDisabled):
		return http.StatusForbidden, "action_disabled", nil
	case errors.Is(err, catalog.ErrPersistFailure), errors.Is(err, kv.ErrQuotaExceeded):
		return http.StatusInsufficientStorage, "persist_failure", nil
	case errors.Is(err, catalog.ErrStorageCorrupt):
		return http.StatusInternalServerError, "storage_corrupt", nil
	default:
		return http.StatusInternalServerError, "internal", nil
	}
}
