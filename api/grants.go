package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sero/database"
	"sero/model"
)

type createGrantRequest struct {
	UserID          string          `json:"userId"`
	Kind            model.GrantKind `json:"kind"`
	RoleID          string          `json:"roleId,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
}

func (s *Server) listGrants(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")
	grants, err := database.GetGrantsByGuild(s.db, guildID)
	if err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Msg("failed to list grants")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, grants)
}

func (s *Server) createGrant(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")

	var req createGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.DurationMinutes <= 0 {
		http.Error(w, "userId and a positive durationMinutes are required", http.StatusBadRequest)
		return
	}
	switch req.Kind {
	case model.GrantKindRole:
		if req.RoleID == "" {
			http.Error(w, "roleId is required for role grants", http.StatusBadRequest)
			return
		}
	case model.GrantKindBan:
	default:
		http.Error(w, "kind must be role or ban", http.StatusBadRequest)
		return
	}

	grant := model.NewTemporaryGrant(guildID, req.UserID, req.Kind, req.RoleID, req.Reason, req.DurationMinutes)
	if err := database.AddGrant(s.db, grant); err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Str("user_id", req.UserID).
			Msg("failed to create grant")
		http.Error(w, "could not create grant", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, grant)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
