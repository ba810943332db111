// Package handlers wires the surf report onto HTTP. The report itself is
// assembled by pkg/report; this layer handles routing, sessions, rendering,
// and the tide curve image.
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/kholland/surfcast/pkg/forecast"
	"github.com/kholland/surfcast/pkg/report"
	"github.com/kholland/surfcast/pkg/scoring"
	"github.com/kholland/surfcast/pkg/sunset"
	"github.com/kholland/surfcast/pkg/tides"
	"github.com/kholland/surfcast/pkg/visualize"
)

const (
	sessionName    = "surfcast"
	sessionUserID  = "userid"
	sessionProfile = "profile"

	sessionKeyEnv = "SESSION_KEY"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.
)

// Env carries everything the handlers need.
type Env struct {
	Builder *report.Builder

	// TideClient serves the raw predictions behind the tide image. Optional;
	// without it /tide.svg is not registered.
	TideClient *tides.Client

	Place sunset.Place
	Store *sessions.CookieStore
}

// NewStore builds the cookie store from the SESSION_KEY environment
// variable, falling back to an ephemeral key.
func NewStore() *sessions.CookieStore {
	key := []byte(os.Getenv(sessionKeyEnv))
	if len(key) == 0 {
		key = []byte(uuid.NewString())
		log.Printf("SESSION_KEY unset; sessions will not survive a restart")
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   defaultMaxAge,
		HttpOnly: true,
	}
	return store
}

// Register attaches all routes to the router.
func Register(r *mux.Router, env *Env) {
	r.HandleFunc("/healthz", serveHealth)
	r.Handle("/api/v1/report", env.makeServeReport())
	r.Handle("/config", env.makeServeConfig())
	if env.TideClient != nil {
		r.Handle("/tide.svg", env.makeServeTideImage())
	}
}

func serveHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (env *Env) makeServeReport() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)

		session, _ := env.Store.Get(r, sessionName)
		ensureUserID(session)
		if err := session.Save(r, w); err != nil {
			log.Printf("Failed to save session: %v", err)
		}

		builder := env.builderFor(session)
		rep, err := builder.Build(r.Context())
		if err != nil {
			// Prefer an honest "insufficient data" over invented numbers.
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, "Insufficient data for a surf report: %+v", err)
			log.Printf("Failed to build report: %+v", err)
			return
		}

		if r.FormValue("o") == "json" {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if err := json.NewEncoder(w).Encode(rep); err != nil {
				log.Printf("Failed to encode JSON report: %+v", err)
			}
			return
		}
		w.Header().Add("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, rep.String())
	})
}

// builderFor applies the session's scoring profile, if any, on top of the
// configured builder.
func (env *Env) builderFor(session *sessions.Session) *report.Builder {
	name, ok := session.Values[sessionProfile].(string)
	if !ok {
		return env.Builder
	}
	profile, ok := scoring.ProfileByName(name)
	if !ok || profile == env.Builder.Engine.Profile() {
		return env.Builder
	}

	override := *env.Builder
	engine := scoring.NewEngine(profile, nil)
	override.Engine = engine
	override.Summarizer = forecast.NewSummarizer(engine, nil)
	return &override
}

func (env *Env) makeServeConfig() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)
		session, _ := env.Store.Get(r, sessionName)
		ensureUserID(session)

		switch r.Method {
		case http.MethodGet:
			session.Save(r, w)
			name, _ := session.Values[sessionProfile].(string)
			profile, ok := scoring.ProfileByName(name)
			if !ok {
				profile = env.Builder.Engine.Profile()
			}
			w.Header().Add("Content-Type", "application/json")
			json.NewEncoder(w).Encode(profile)

		case http.MethodPost:
			if err := r.ParseForm(); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintf(w, "Failed to parse form: %v", err)
				return
			}
			name := r.PostForm.Get("profile")
			if _, ok := scoring.ProfileByName(name); !ok {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintf(w, "Unknown profile %q", name)
				return
			}
			session.Values[sessionProfile] = name
			if err := session.Save(r, w); err != nil {
				log.Printf("Failed to save session: %v", err)
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "profile set to %q\n", name)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (env *Env) makeServeTideImage() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)

		now := time.Now()
		// Pad a day on both sides so the curve reaches the image edges.
		preds, err := env.TideClient.Predictions(r.Context(), now.Add(-24*time.Hour), now.Add(24*time.Hour))
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, "Failed to fetch tide predictions: %+v", err)
			log.Printf("Failed to fetch tide predictions: %+v", err)
			return
		}

		img := visualize.NewTidal(preds, sunset.DaylightWindow(now, env.Place), now)
		w.Header().Add("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		if _, err := img.Encode(w); err != nil {
			log.Printf("Failed to encode tide image: %+v", err)
		}
	})
}

func ensureUserID(session *sessions.Session) {
	if _, ok := session.Values[sessionUserID].(string); !ok {
		session.Values[sessionUserID] = uuid.NewString()
	}
}
