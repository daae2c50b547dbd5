package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"sero/pubsub"
)

// Server exposes the CRUD surface of the API process. The expiration core
// never depends on these routes; they exist so moderation tools and the bot
// can manage grants and settings remotely.
type Server struct {
	db  *sqlx.DB
	pub pubsub.Publisher
	log zerolog.Logger
}

func NewServer(db *sqlx.DB, pub pubsub.Publisher, log zerolog.Logger) *Server {
	return &Server{db: db, pub: pub, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/guilds/{guildID}", func(r chi.Router) {
		r.Get("/grants", s.listGrants)
		r.Post("/grants", s.createGrant)
		r.Get("/settings/{type}", s.getSetting)
		r.Put("/settings/{type}", s.putSetting)
		r.Put("/members/{userID}/level", s.putLevel)
	})
	return r
}

func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("api listening")
	return srv.ListenAndServe()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).Msg("request")
	})
}
