package webhookd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/01100100/kreuzungen/geo"
	"github.com/01100100/kreuzungen/stash"
)

// Event is a Strava webhook push.
type Event struct {
	AspectType string            `json:"aspect_type"`
	ObjectType string            `json:"object_type"`
	ObjectID   int64             `json:"object_id"`
	OwnerID    int64             `json:"owner_id"`
	Updates    map[string]string `json:"updates"`
}

// Server holds what the HTTP handlers need. Routes is optional; without it
// the saved-route endpoints 404.
type Server struct {
	Deps        Deps
	VerifyToken string
	Routes      *stash.Store
}

func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/routes", s.handleRoutes)
	return mux
}

// Serve blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Mux()}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down webhook server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("shutdown", "err", err)
		}
	}()

	slog.Info("webhook server listening", "addr", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.verifySubscription(w, r)
	case http.MethodPost:
		s.receiveEvent(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// verifySubscription answers Strava's subscription handshake.
func (s *Server) verifySubscription(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode != "subscribe" || token != s.VerifyToken {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	slog.Info("webhook subscription verified")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"hub.challenge": challenge})
}

// receiveEvent acknowledges immediately and processes in the background:
// Strava retries on anything slower than 2 seconds or not a 200.
func (s *Server) receiveEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	slog.Info("webhook event received",
		"aspect_type", event.AspectType, "object_type", event.ObjectType,
		"object_id", event.ObjectID, "owner_id", event.OwnerID)

	switch {
	case event.AspectType == "create" && event.ObjectType == "activity":
		go func() {
			if err := ProcessActivity(context.Background(), s.Deps, event.OwnerID, event.ObjectID); err != nil {
				slog.Error("process activity", "activity_id", event.ObjectID, "err", err)
			}
		}()
	case event.AspectType == "update" && event.ObjectType == "athlete" && event.Updates["authorized"] == "false":
		go func() {
			if err := s.Deps.Tokens.Delete(context.Background(), event.OwnerID); err != nil {
				slog.Error("delete tokens on deauthorization", "owner_id", event.OwnerID, "err", err)
				return
			}
			slog.Info("deauthorized, tokens deleted", "owner_id", event.OwnerID)
		}()
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("EVENT_RECEIVED"))
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	if s.Routes == nil {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPost:
		s.saveRoute(w, r)
	case http.MethodGet:
		s.getRoute(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) saveRoute(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var route geo.Route
	if r.Header.Get("Content-Type") == "application/gpx+xml" {
		route, err = geo.ParseGPX(bytes.NewReader(body))
	} else {
		route, err = decodeRouteFeature(body)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := s.Routes.Save(r.Context(), route)
	if err != nil {
		slog.Error("save route", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if r.Header.Get("Content-Type") == "application/gpx+xml" {
		if err := s.Routes.ArchiveGPX(r.Context(), saved.ID, body); err != nil {
			slog.Warn("archive gpx", "route_id", saved.ID, "err", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(saved)
}

func (s *Server) getRoute(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	route, err := s.Routes.Route(r.Context(), id)
	if errors.Is(err, stash.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("load route", "route_id", id, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(encodeRouteFeature(route))
}
