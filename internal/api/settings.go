package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"DeliveryDashboard/internal/kv"
	"DeliveryDashboard/internal/notify"
	"DeliveryDashboard/pkg/kit"
)

// Settings are display preferences owned by the dashboard UI. The server only
// checks that they form a JSON object.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	raw, err := s.Storage.Get(r.Context(), s.SettingsKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		kit.WriteJSON(w, http.StatusOK, map[string]any{})
		return
	case err != nil:
		s.log().Error("read settings failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal", "server error", nil)
		return
	}

	if !isObject(raw) {
		s.log().Warn("stored settings are not a JSON object", zap.String("key", s.SettingsKey))
		kit.WriteJSON(w, http.StatusOK, map[string]any{})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad_json", "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if !isObject(body) {
		kit.WriteError(w, r, http.StatusBadRequest, "bad_json", "settings must be a JSON object", nil)
		return
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad_json", "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if err := s.Storage.Set(r.Context(), s.SettingsKey, buf.Bytes()); err != nil {
		if errors.Is(err, kv.ErrQuotaExceeded) {
			kit.WriteError(w, r, http.StatusInsufficientStorage, "persist_failure", "storage full", nil)
			return
		}
		s.log().Error("write settings failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal", "server error", nil)
		return
	}

	if s.Notifier != nil {
		s.Notifier.Notify(notify.EventSettingsChanged, "put")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func isObject(raw []byte) bool {
	var m map[string]json.RawMessage
	return json.Unmarshal(raw, &m) == nil && m != nil
}
