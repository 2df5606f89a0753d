package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	t4ferr "github.com/tools4freee/t4f/internal/errors"
	"github.com/tools4freee/t4f/internal/log"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/service"
	"github.com/tools4freee/t4f/internal/version"
)

// maxBodyBytes bounds request bodies; the largest legitimate body is a
// generation request with an htpasswd password.
const maxBodyBytes = 64 << 10

// Handler contains all HTTP handlers for the API.
//
// The ServiceContext is built once; Reload swaps the config it carries and
// pushes the new defaults into the generator service.
type Handler struct {
	svc *ServiceContext

	mu  sync.RWMutex
	cfg *model.Config
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(svc *ServiceContext) *Handler {
	return &Handler{svc: svc, cfg: svc.Config}
}

// Config returns the config currently in effect.
func (h *Handler) Config() *model.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// Reload rereads the config file. On failure the previous config stays active.
func (h *Handler) Reload() (*model.Config, error) {
	cfg, err := h.svc.Configs.Load()
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.cfg = cfg
	h.mu.Unlock()
	h.svc.Generator.SetDefaults(cfg.Defaults)
	return cfg, nil
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /api/v1/families", h.ListFamilies)
	mux.HandleFunc("POST /api/v1/generate", h.Generate)
	mux.HandleFunc("GET /api/v1/generate/{family}", h.GenerateFamily)
	mux.HandleFunc("POST /api/v1/validate", h.Validate)
	mux.HandleFunc("GET /api/v1/config", h.GetConfig)
}

// HealthResponse reports liveness and whether secure families can run.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	SecureEntropy bool   `json:"secure_entropy"`
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       version.Version,
		SecureEntropy: h.svc.Generator.SecureAvailable(),
	})
}

// ListFamilies handles GET /api/v1/families.
func (h *Handler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{"families": h.svc.Generator.Families()})
}

// Generate handles POST /api/v1/generate. A request with a count returns a
// batch; otherwise a single value.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.respondGenerated(w, r, &req)
}

// GenerateFamily handles GET /api/v1/generate/{family}, reading parameters
// from the query string.
func (h *Handler) GenerateFamily(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r.PathValue("family"), r.URL.Query())
	if err != nil {
		Error(w, r, err)
		return
	}
	if req.Family == model.FamilyHtpasswd {
		// Keep passwords out of URLs and access logs.
		JSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "htpasswd must be requested with POST /api/v1/generate",
			Code:  "INVALID_PARAMETERS",
		})
		return
	}
	h.respondGenerated(w, r, req)
}

func (h *Handler) respondGenerated(w http.ResponseWriter, r *http.Request, req *model.GenerationRequest) {
	logger := log.Ctx(r.Context())

	if req.Count != 0 {
		batch, err := h.svc.Generator.GenerateBatch(req)
		if err != nil {
			Error(w, r, err)
			return
		}
		logger.Debug().Str(log.FieldFamily, string(batch.Family)).Int(log.FieldCount, len(batch.Values)).Msg("generated batch")
		JSON(w, http.StatusOK, batch)
		return
	}

	value, err := h.svc.Generator.Generate(req)
	if err != nil {
		Error(w, r, err)
		return
	}
	logger.Debug().Str(log.FieldFamily, string(value.Family)).Msg("generated")
	JSON(w, http.StatusOK, value)
}

// Validate handles POST /api/v1/validate.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req model.ValidationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.svc.Generator.Validate(&req)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

// GetConfig handles GET /api/v1/config.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.Config())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeStrict(http.MaxBytesReader(w, r.Body, maxBodyBytes), v); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// decodeStrict decodes one JSON value and rejects unknown fields. HTTP bodies
// and WebSocket frames go through it alike.
func decodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// requestFromQuery builds a GenerationRequest from URL query parameters.
func requestFromQuery(family string, q url.Values) (*model.GenerationRequest, error) {
	f, err := model.ParseFamily(family)
	if err != nil {
		return nil, err
	}
	req := &model.GenerationRequest{
		Family:           f,
		Variant:          q.Get("variant"),
		Separator:        q.Get("separator"),
		Charset:          q.Get("charset"),
		From:             q.Get("from"),
		To:               q.Get("to"),
		ExcludeAmbiguous: q.Get("exclude_ambiguous") == "true",
	}

	if req.Min, err = queryFloat(q, "min"); err != nil {
		return nil, err
	}
	if req.Max, err = queryFloat(q, "max"); err != nil {
		return nil, err
	}
	if req.Precision, err = queryInt(q, "precision"); err != nil {
		return nil, err
	}
	if req.Length, err = queryInt(q, "length"); err != nil {
		return nil, err
	}
	count, err := queryInt(q, "count")
	if err != nil {
		return nil, err
	}
	if count != nil {
		if *count < 1 {
			return nil, t4ferr.OutOfBounds("count", *count, 1, service.MaxBatch)
		}
		req.Count = *count
	}
	return req, nil
}

func queryFloat(q url.Values, key string) (*float64, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, t4ferr.InvalidParameter(key, strconv.Quote(s)+" is not a number")
	}
	return &v, nil
}

func queryInt(q url.Values, key string) (*int, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, t4ferr.InvalidParameter(key, strconv.Quote(s)+" is not an integer")
	}
	return &v, nil
}
