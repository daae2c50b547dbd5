package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sero/database"
	"sero/model"
	"sero/pubsub"
)

func (s *Server) getSetting(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")
	settingType := model.SettingType(chi.URLParam(r, "type"))

	setting, err := database.GetGuildSetting(s.db, guildID, settingType)
	if err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Msg("failed to get setting")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if setting == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

func (s *Server) putSetting(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")
	settingType := model.SettingType(chi.URLParam(r, "type"))

	var body struct {
		TargetID string `json:"targetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TargetID == "" {
		http.Error(w, "targetId is required", http.StatusBadRequest)
		return
	}

	setting := model.GuildSetting{GuildID: guildID, Type: settingType, TargetID: body.TargetID}
	if err := database.UpsertGuildSetting(s.db, setting); err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Msg("failed to upsert setting")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

// putLevel records nothing durable; it broadcasts a level change so the bot
// process can announce it.
func (s *Server) putLevel(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")
	userID := chi.URLParam(r, "userID")

	var body struct {
		Level int `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Level <= 0 {
		http.Error(w, "a positive level is required", http.StatusBadRequest)
		return
	}

	ev := model.LevelChanged{GuildID: guildID, UserID: userID, Level: body.Level}
	if err := s.pub.Publish(r.Context(), pubsub.ChannelLevelChanged, ev); err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Str("user_id", userID).
			Msg("failed to publish level change")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
