package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/matt-g-everett/ledanim/animation"
	"github.com/matt-g-everett/ledanim/stream"
)

// Stage is the set of animations the API controls.
type Stage interface {
	Status() []stream.Status
	Play(ctx context.Context, name string) (*animation.Future, error)
	Cancel(name string) (bool, error)
}

// Api serves the HTTP control surface.
type Api struct {
	stage Stage
	log   *zap.Logger
}

// NewApi creates an Api controlling stage.
func NewApi(stage Stage, log *zap.Logger) *Api {
	if log == nil {
		log = zap.NewNop()
	}
	a := new(Api)
	a.stage = stage
	a.log = log.Named("api")
	return a
}

// Handler returns the routes of the API.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /animations", a.list)
	mux.HandleFunc("POST /animations/{name}/play", a.play)
	mux.HandleFunc("POST /animations/{name}/cancel", a.cancel)
	return mux
}

func (a *Api) list(w http.ResponseWriter, r *http.Request) {
	a.reply(w, http.StatusOK, a.stage.Status())
}

func (a *Api) play(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	// The playback outlives the request.
	_, err := a.stage.Play(context.WithoutCancel(r.Context()), name)
	switch {
	case errors.Is(err, stream.ErrUnknownAnimation):
		a.fail(w, http.StatusNotFound, err)
	case errors.Is(err, animation.ErrAlreadyPlaying):
		a.fail(w, http.StatusConflict, err)
	case err != nil:
		a.fail(w, http.StatusInternalServerError, err)
	default:
		a.reply(w, http.StatusAccepted, map[string]string{"name": name, "state": animation.StatePlaying.String()})
	}
}

func (a *Api) cancel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	cancelled, err := a.stage.Cancel(name)
	if errors.Is(err, stream.ErrUnknownAnimation) {
		a.fail(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		a.fail(w, http.StatusInternalServerError, err)
		return
	}
	a.reply(w, http.StatusOK, map[string]any{"name": name, "cancelled": cancelled})
}

func (a *Api) fail(w http.ResponseWriter, status int, err error) {
	a.log.Debug("Request failed", zap.Int("status", status), zap.Error(err))
	a.reply(w, status, map[string]string{"error": err.Error()})
}

func (a *Api) reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.log.Warn("Failed to write response", zap.Error(err))
	}
}

// Serve listens on addr until ctx is done, then shuts the server down.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info("Listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
