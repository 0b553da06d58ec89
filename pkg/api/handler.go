package api

import (
	"encoding/json"
	"net/http"

	"github.com/formsiq/fieldbridge/pkg/kit"
)

// NewRouter returns an http.Handler with all fieldbridge API routes.
func NewRouter(svc *Service) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		generate:  svc.generateEndpoint(),
		interpret: svc.interpretEndpoint(),
		taxonomy:  svc.taxonomyEndpoint(),
		svc:       svc,
	}

	mux.HandleFunc("POST /v1/mappings/{doc}", h.handleGenerate)
	mux.HandleFunc("POST /v1/checkbox", h.handleInterpret)
	mux.HandleFunc("GET /v1/mappings/{doc}", h.handleLastMapping)
	mux.HandleFunc("GET /v1/taxonomy", h.handleTaxonomy)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	generate  kit.Endpoint
	interpret kit.Endpoint
	taxonomy  kit.Endpoint
	svc       *Service
}

// --- generate a mapping ---

func (h *handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256*1024) // 256 KiB max
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.DocID = r.PathValue("doc")

	resp, err := h.generate(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- interpret one checkbox answer ---

func (h *handler) handleInterpret(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var req interpretReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.interpret(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- last stored mapping ---

func (h *handler) handleLastMapping(w http.ResponseWriter, r *http.Request) {
	if h.svc.Store == nil {
		writeError(w, http.StatusNotFound, "mapping store disabled")
		return
	}
	result, err := h.svc.Store.Get(r.PathValue("doc"))
	if err != nil {
		writeError(w, http.StatusNotFound, "no mapping for document")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- taxonomy info ---

func (h *handler) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	resp, err := h.taxonomy(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status           string `json:"status"`
	Concepts         int    `json:"concepts"`
	CheckboxConcepts int    `json:"checkbox_concepts"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t := h.svc.Registry.Current()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:           "ok",
		Concepts:         t.ConceptCount(),
		CheckboxConcepts: len(t.CheckboxConcepts()),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
