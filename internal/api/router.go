package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/nouraliman/kunuz/internal/kahf"
	"github.com/nouraliman/kunuz/internal/middleware"
	"github.com/nouraliman/kunuz/internal/services"
)

// Config wires a Router. Store is required; the rest configures the single
// moderator account and the PDF export.
type Config struct {
	Store             Store
	AdminEmail        string
	AdminPasswordHash string
	PDFFontPath       string
	TokenTTL          time.Duration
}

type Router struct {
	store       Store
	submissions *services.SubmissionService
	moderation  *services.ModerationService
	stats       *services.StatsService
	exports     *services.ExportService
	imports     *services.ImportService
	auth        *services.AuthService
}

func NewRouter(cfg Config) *Router {
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	sign := func(email string) (string, error) { return middleware.SignToken(email, ttl) }
	return &Router{
		store:       cfg.Store,
		submissions: services.NewSubmissionService(cfg.Store),
		moderation:  services.NewModerationService(cfg.Store),
		stats:       services.NewStatsService(cfg.Store),
		exports:     services.NewExportService(cfg.Store, cfg.PDFFontPath),
		imports:     services.NewImportService(cfg.Store),
		auth:        services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, sign),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", rt.handleHealth)

	// public
	mux.HandleFunc("/api/reflections", rt.handleReflections)   // GET list, POST submit
	mux.HandleFunc("/api/duaas", rt.handleDuaas)               // GET approved list, POST submit
	mux.HandleFunc("/api/ayahs/random", rt.handleRandomAyah)   // GET
	mux.HandleFunc("/api/stats", rt.handleStats)               // GET
	mux.HandleFunc("/api/admin/login", rt.handleLogin)         // POST

	// moderator only
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	mux.Handle("/api/admin/reflections", admin(rt.handleAdminReflections))   // GET
	mux.Handle("/api/admin/reflections/", admin(rt.handleReflectionAction))  // POST feature, DELETE
	mux.Handle("/api/admin/duaas", admin(rt.handleAdminDuaas))               // GET ?state=
	mux.Handle("/api/admin/duaas/", admin(rt.handleDuaaAction))              // POST approve/feature, DELETE
	mux.Handle("/api/admin/export", admin(rt.handleExport))                  // GET ?entity=&format=
	mux.Handle("/api/admin/import", admin(rt.handleImport))                  // POST ?filename=
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Store faults
// surface as 502: the request was fine, the backend was not.
func writeServiceError(w http.ResponseWriter, err error) {
	se, ok := services.AsServiceError(err)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal", "message": err.Error()})
		return
	}
	status := http.StatusInternalServerError
	switch se.Code {
	case services.ErrorInvalid:
		status = http.StatusBadRequest
	case services.ErrorUnauthorized:
		status = http.StatusUnauthorized
	case services.ErrorForbidden:
		status = http.StatusForbidden
	case services.ErrorNotFound:
		status = http.StatusNotFound
	case services.ErrorUnsupportedFormat:
		status = http.StatusUnsupportedMediaType
	case services.ErrorStore:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": string(se.Code), "message": se.Message})
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) handleReflections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rs, err := rt.moderation.ListReflections()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rs)
	case http.MethodPost:
		var in services.ReflectionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeServiceError(w, services.NewInvalidError("malformed JSON body"))
			return
		}
		stored, err := rt.submissions.SubmitReflection(in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (rt *Router) handleDuaas(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ds, err := rt.moderation.PublicDuaas()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ds)
	case http.MethodPost:
		var in services.DuaaInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeServiceError(w, services.NewInvalidError("malformed JSON body"))
			return
		}
		stored, err := rt.submissions.SubmitDuaa(in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (rt *Router) handleRandomAyah(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"ayah_number": kahf.RandomAyah()})
}

// GET /api/stats. A storage fault degrades to an empty summary so the public
// stats page renders instead of erroring.
func (rt *Router) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s, err := rt.stats.Summary()
	if err != nil {
		log.Printf("stats: summary unavailable: %v", err)
		s = services.Summarize(nil)
	}
	writeJSON(w, http.StatusOK, s)
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var c services.Credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeServiceError(w, services.NewInvalidError("malformed JSON body"))
		return
	}
	res, err := rt.auth.Login(c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/admin/reflections. Same record set as the public gallery, kept as
// a separate route so the dashboard survives future visibility rules.
func (rt *Router) handleAdminReflections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rs, err := rt.moderation.ListReflections()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

// GET /api/admin/duaas?state=pending|approved
func (rt *Router) handleAdminDuaas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var (
		ds  []*services.Duaa
		err error
	)
	switch state := r.URL.Query().Get("state"); state {
	case "", "pending":
		ds, err = rt.moderation.PendingDuaas()
	case "approved":
		ds, err = rt.moderation.ApprovedDuaas()
	default:
		writeServiceError(w, services.NewInvalidError("unknown state: "+state))
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// POST /api/admin/duaas/{id}/approve
// POST /api/admin/duaas/{id}/feature
// DELETE /api/admin/duaas/{id}
func (rt *Router) handleDuaaAction(w http.ResponseWriter, r *http.Request) {
	id, action := splitAction(r.URL.Path, "/api/admin/duaas/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case r.Method == http.MethodDelete && action == "":
		if err := rt.moderation.RejectDuaa(id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	case r.Method == http.MethodPost && action == "approve":
		if err := rt.moderation.ApproveDuaa(id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
	case r.Method == http.MethodPost && action == "feature":
		on, err := rt.moderation.ToggleDuaaFeatured(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"is_featured": on})
	default:
		http.NotFound(w, r)
	}
}

// POST /api/admin/reflections/{id}/feature
// DELETE /api/admin/reflections/{id}
func (rt *Router) handleReflectionAction(w http.ResponseWriter, r *http.Request) {
	id, action := splitAction(r.URL.Path, "/api/admin/reflections/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case r.Method == http.MethodDelete && action == "":
		if err := rt.moderation.DeleteReflection(id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	case r.Method == http.MethodPost && action == "feature":
		on, err := rt.moderation.ToggleReflectionFeatured(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"is_featured": on})
	default:
		http.NotFound(w, r)
	}
}

// GET /api/admin/export?entity=reflections|duaas&format=json|csv|pdf
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	params := services.ExportParams{
		Entity: r.URL.Query().Get("entity"),
		Format: r.URL.Query().Get("format"),
	}
	if params.Entity == "" {
		params.Entity = services.EntityReflections
	}
	if params.Format == "" {
		params.Format = services.FormatJSON
	}
	res, err := rt.exports.Export(params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	_, _ = w.Write(res.Data)
}

const maxImportBytes = 10 << 20

// POST /api/admin/import?filename=... with the file contents as the body.
// The filename query parameter carries the extension that selects the codec.
func (rt *Router) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeServiceError(w, services.NewInvalidError("filename query parameter required"))
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeServiceError(w, services.NewInvalidError("could not read upload: "+err.Error()))
		return
	}
	n, err := rt.imports.ImportReflections(filename, data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// splitAction peels "{id}" or "{id}/{action}" off a route prefix.
func splitAction(path, prefix string) (id, action string) {
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.SplitN(rest, "/", 2)
	id = parts[0]
	if len(parts) == 2 {
		action = parts[1]
	}
	return id, action
}
