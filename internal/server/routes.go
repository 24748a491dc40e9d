// Route registration for the document assembly API.
//
// All endpoints live under /api/sessions. CORS and request logging are
// enabled globally; the swagger UI is restricted to localhost.
package server

import (
	"net"
	"net/http"

	_ "go-mergesign/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/sessions", func(api chi.Router) {
		api.Post("/", s.api.CreateSession)
		api.Route("/{sessionID}", func(sr chi.Router) {
			sr.Get("/documents", s.api.ListDocuments)
			sr.Post("/documents", s.api.UploadDocuments)
			sr.Put("/documents/order", s.api.UpdateOrder)
			sr.Delete("/documents/{documentID}", s.api.DeleteDocument)
			sr.Patch("/documents/{documentID}/pages/{pageIndex}", s.api.PatchPage)
			sr.Put("/documents/{documentID}/pages/selection", s.api.SetSelection)
			sr.Post("/signature", s.api.UploadSignature)
			sr.Post("/actions/merge", s.api.MergeDocuments)
			sr.Post("/actions/sign", s.api.SignDocuments)
			sr.Get("/files/{filename}", s.api.DownloadFile)
		})
	})

	return r
}
