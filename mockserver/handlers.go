package mockserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		MockVersion(s.config.Version),
		RequestID(),
		Recovery(s.logger),
		Logger(s.logger),
		s.metrics.middleware,
	)
	r.NotFound(unrecognizedURL)
	r.MethodNotAllowed(unrecognizedURL)

	r.Method(http.MethodGet, "/metrics", s.metrics.handler)

	r.Route("/v1", func(r chi.Router) {
		r.Use(RequireTestKey())
		for _, res := range resources {
			r.Route("/"+res.collection, func(r chi.Router) {
				r.Get("/", list(res))
				r.Post("/", create(res))
				r.Get("/{id}", retrieve(res))
				r.Post("/{id}", update(res))
				if res.deletable {
					r.Delete("/{id}", remove(res))
				}
				if res.capturable {
					r.Post("/{id}/capture", capture)
				}
			})
		}
	})

	return r
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "Invalid request body.")
		return false
	}
	return true
}

func list(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"object":   "list",
			"url":      "/v1/" + res.collection,
			"has_more": false,
			"data":     []map[string]any{res.fixture()},
		})
	}
}

func create(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseForm(w, r) {
			return
		}
		obj := res.fixture()
		merge(obj, r.PostForm)
		writeJSON(w, http.StatusOK, obj)
	}
}

func retrieve(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj := res.fixture()
		obj["id"] = chi.URLParam(r, "id")
		writeJSON(w, http.StatusOK, obj)
	}
}

func update(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseForm(w, r) {
			return
		}
		obj := res.fixture()
		merge(obj, r.PostForm)
		obj["id"] = chi.URLParam(r, "id")
		writeJSON(w, http.StatusOK, obj)
	}
}

func remove(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj := res.fixture()
		writeJSON(w, http.StatusOK, map[string]any{
			"id":      chi.URLParam(r, "id"),
			"object":  obj["object"],
			"deleted": true,
		})
	}
}

func capture(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	obj := chargeFixture()
	obj["id"] = chi.URLParam(r, "id")
	obj["captured"] = true
	if amount := r.PostForm.Get("amount"); amount != "" {
		merge(obj, map[string][]string{"amount": {amount}})
	}
	writeJSON(w, http.StatusOK, obj)
}
