package handler

import (
	"net/http"
	"path"
	"strings"

	"github.com/gemchat-dev/gemchat/shared/utils"
)

const routeNotFound = "Route not found"

// NotFound serves chat UI assets when a matching file exists and answers
// {"error":"Route not found"} otherwise. /api paths never hit the disk.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if h.static != nil && h.staticExists(r) {
		h.static.ServeHTTP(w, r)
		return
	}
	utils.WriteError(w, http.StatusNotFound, routeNotFound)
}

// MethodNotAllowed keeps wrong-method requests on known paths
// indistinguishable from unknown paths.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusNotFound, routeNotFound)
}

func (h *Handler) staticExists(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	name := path.Clean("/" + r.URL.Path)
	if name == "/api" || strings.HasPrefix(name, "/api/") {
		return false
	}

	dir := http.Dir(h.cfg.Public.StaticDir)
	f, err := dir.Open(name)
	if err != nil {
		return false
	}
	stat, err := f.Stat()
	f.Close()
	if err != nil {
		return false
	}
	if !stat.IsDir() {
		return true
	}

	index, err := dir.Open(path.Join(name, "index.html"))
	if err != nil {
		return false
	}
	index.Close()
	return true
}
