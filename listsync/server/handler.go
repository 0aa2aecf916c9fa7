package server

import (
	"net/http"
	"sync/atomic"

	"github.com/golang/glog"
)

type handler struct {
	page atomic.Pointer[Page]
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
	case http.MethodHead:
	default:
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	page := h.page.Load()
	if req.URL.Path != "/" || page == nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		if req.Method == http.MethodGet {
			w.Write([]byte("not found"))
		}
		return
	}

	w.Header().Set("Content-Type", page.MimeType)
	w.Header().Set("Cache-Control", "no-store")
	if req.Method == http.MethodHead {
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page.Body); err != nil {
		glog.Warningf("failed to write response: %v", err)
	}
}
