/*
Package server offers document conversion over HTTP.

	POST /render?from=markdown&to=xhtml   converts the request body
	GET  /healthz                         liveness check

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package server

import (
	"bytes"
	"encoding/json"
	stdxml "encoding/xml"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/blockdom/engine"
	"github.com/npillmayer/blockdom/syntax"
	"github.com/npillmayer/blockdom/syntax/xml"
	"github.com/npillmayer/blockdom/transform/linkcheck"
	"github.com/npillmayer/blockdom/transform/macro"
)

// Server is the HTTP front end of an engine.
type Server struct {
	router  chi.Router
	engine  *engine.Engine
	log     *log.Logger
	maxBody int64
}

// New creates a server converting with engine e. Log output goes to logger.
func New(e *engine.Engine, logger *log.Logger) *Server {
	s := &Server{engine: e, log: logger, maxBody: e.Config().Server.MaxBody}
	if s.maxBody <= 0 {
		s.maxBody = 4 << 20
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(s.log))
	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var contentTypes = map[string]string{
	syntax.Markdown: "text/markdown; charset=utf-8",
	syntax.XHTML:    "text/html; charset=utf-8",
	syntax.XML:      "application/xml; charset=utf-8",
	syntax.Plain:    "text/plain; charset=utf-8",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if to == "" {
		to = s.engine.Config().Output
	}
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	var out bytes.Buffer
	res, err := s.engine.Convert(&out, body, from, to)
	if err != nil {
		status := statusOf(err)
		s.log.Warn("conversion failed", "request_id", RequestIDFrom(r.Context()),
			"status", status, "err", err)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	if report := res.LinkReport(); report != nil {
		w.Header().Set("X-Link-Problems", strconv.Itoa(len(report.Problems)))
	}
	ct, ok := contentTypes[syntax.Normalize(to)]
	if !ok {
		ct = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = out.WriteTo(w)
}

// statusOf maps conversion errors to HTTP status codes.
func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	var xmlErr *stdxml.SyntaxError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, syntax.ErrUnknownSyntax), errors.Is(err, block.ErrStructure),
		errors.Is(err, xml.ErrUnknownElement), errors.Is(err, xml.ErrInvalidAttribute),
		errors.Is(err, xml.ErrMisplacedParameter), errors.As(err, &xmlErr):
		return http.StatusBadRequest
	case errors.Is(err, linkcheck.ErrBrokenLinks), errors.Is(err, macro.ErrUnknownMacro):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
