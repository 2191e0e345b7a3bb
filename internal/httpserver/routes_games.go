// internal/httpserver/routes_games.go
//
// HTTP routes for playing a game.
//   - POST   /games      → start a session on today's word, returns a token + view
//   - GET    /game       → current view of the token's session
//   - POST   /game/keys  → press one or more keys, returns the resulting view
//   - DELETE /game       → stop the session and clear the cookie
//
// Keys are logical names ("A".."Z", "Enter", "Backspace", "ArrowLeft",
// "ArrowRight"). Unknown keys are accepted and leave the view unchanged.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/input"
	"github.com/robalobadob/wordgrid/internal/session"
)

const (
	// maxKeysPerRequest bounds a single POST /game/keys batch.
	maxKeysPerRequest = 64
	// maxKeysBody bounds the POST /game/keys body; a full batch of the
	// longest key names fits well within it.
	maxKeysBody = 4 << 10
)

// mountGames registers the session routes.
func (s *Server) mountGames() {
	s.r.Post("/games", s.handleNewGame)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/game", s.handleGetGame)
		r.Post("/game/keys", s.handleKeys)
		r.Delete("/game", s.handleEndGame)
	})
}

// newGameRes is returned by POST /games.
type newGameRes struct {
	Token string       `json:"token"`
	View  session.View `json:"view"`
}

// handleNewGame creates a session on today's solution and starts its loop.
// The session is removed once its token expires.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	if s.store.Len() >= s.cfg.MaxSessions {
		writeError(w, http.StatusServiceUnavailable, "too_many_sessions")
		return
	}
	solution := s.words.SolutionForToday()
	sess, err := session.New(newSessionID(), solution, s.words)
	if err != nil {
		log.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "no_solution")
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.runSession(sess, s.cfg.TokenTTL)

	tok, exp, err := s.signToken(sess.ID())
	if err != nil {
		_ = s.store.Delete(r.Context(), sess.ID())
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setTokenCookie(w, tok, exp)
	log.Info().Str("session", sess.ID()).Msg("game started")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newGameRes{Token: tok, View: sess.View()})
}

// runSession starts the loop of a stored session and deletes it after ttl.
func (s *Server) runSession(sess *session.Session, ttl time.Duration) {
	id := sess.ID()
	expiry := time.AfterFunc(ttl, func() {
		if err := s.store.Delete(s.ctx, id); err == nil {
			log.Info().Str("session", id).Msg("session expired")
		}
	})
	go func() {
		defer expiry.Stop()
		if err := sess.Run(s.ctx); err != nil && !errors.Is(err, s.ctx.Err()) {
			log.Warn().Err(err).Str("session", id).Msg("session loop")
		}
	}()
}

// handleGetGame returns the latest view.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(sessionFrom(r.Context()).View())
}

// keysReq accepts a single key or a batch.
type keysReq struct {
	Key  string   `json:"key"`
	Keys []string `json:"keys"`
}

// handleKeys presses each key in order and returns the view after the last one.
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxKeysBody)
	var req keysReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large")
			return
		}
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	keys := req.Keys
	if req.Key != "" {
		keys = append([]string{req.Key}, keys...)
	}
	if len(keys) == 0 {
		writeError(w, http.StatusBadRequest, "no_keys")
		return
	}
	if len(keys) > maxKeysPerRequest {
		writeError(w, http.StatusRequestEntityTooLarge, "too_many_keys")
		return
	}

	sess := sessionFrom(r.Context())
	var view session.View
	for _, k := range keys {
		v, err := sess.Press(r.Context(), input.Key(k))
		if errors.Is(err, session.ErrClosed) {
			writeError(w, http.StatusGone, "session_closed")
			return
		}
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "timeout")
			return
		}
		view = v
	}
	_ = json.NewEncoder(w).Encode(view)
}

// handleEndGame stops the session.
func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.store.Delete(r.Context(), sess.ID()); err != nil {
		writeError(w, http.StatusNotFound, "no_session")
		return
	}
	s.clearTokenCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
