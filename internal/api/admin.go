package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"DeliveryDashboard/internal/dashboard"
	"DeliveryDashboard/pkg/kit"
)

type loginReq struct {
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string     `json:"access_token"`
	Admin       bool       `json:"admin"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type sessionResp struct {
	Admin bool `json:"admin"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := s.Dispatcher.Dispatch(r.Context(), dashboard.Login{Password: req.Password})
	if err != nil {
		s.writeDispatchError(w, r, err)
		return
	}

	tok, err := s.Tokens.New(s.TokenTTL)
	if err != nil {
		s.log().Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal", "server error", nil)
		return
	}

	resp := loginResp{AccessToken: tok, Admin: res.Admin}
	if s.TokenTTL > 0 {
		exp := time.Now().Add(s.TokenTTL).UTC()
		resp.ExpiresAt = &exp
	}
	kit.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	res, err := s.Dispatcher.Dispatch(r.Context(), dashboard.Logout{})
	if err != nil {
		s.writeDispatchError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, sessionResp{Admin: res.Admin})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	res, err := s.Dispatcher.Dispatch(r.Context(), dashboard.SessionStatus{})
	if err != nil {
		s.writeDispatchError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, sessionResp{Admin: res.Admin})
}

// requireAdmin admits requests with a valid admin token while admin mode is on.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := kit.BearerToken(r)
		if !ok {
			kit.WriteError(w, r, http.StatusUnauthorized, "missing_token", "missing token", nil)
			return
		}
		if _, err := s.Tokens.Parse(tok); err != nil {
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid_token", "invalid token", nil)
			return
		}
		if !s.Session.IsAdmin() {
			kit.WriteError(w, r, http.StatusUnauthorized, "admin_required", dashboard.ErrAdminRequired.Error(), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
