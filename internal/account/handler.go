// AngelaMos | 2026
// handler.go

package account

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/me", h.GetMe)
		r.Patch("/me", h.UpdateMe)
	})

	r.Route("/admin/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireAdmin)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/suspend", h.Suspend)
		r.Post("/{id}/ban", h.Ban)
		r.Post("/{id}/reinstate", h.Reinstate)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/restore", h.Restore)
		r.Post("/{id}/vendor-decision", h.VendorDecision)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == "" {
		core.Unauthorized(w, "")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), accountID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, profile)
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), accountID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, profile)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListAccountsParams{
		Search: r.URL.Query().Get("search"),
		Role:   r.URL.Query().Get("role"),
		Status: r.URL.Query().Get("status"),
	}
	params.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	params.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.service.ListAccounts(r.Context(), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathAccountID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, profile)
}

func (h *Handler) Suspend(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Suspend)
}

func (h *Handler) Ban(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Ban)
}

func (h *Handler) Reinstate(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Reinstate)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.SoftDelete)
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Restore)
}

func (h *Handler) VendorDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := pathAccountID(w, r)
	if !ok {
		return
	}

	var req VendorDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.DecideVendor(r.Context(), id, req); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, map[string]string{"status": req.Status})
}

func (h *Handler) moderate(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, accountID string) error,
) {
	id, ok := pathAccountID(w, r)
	if !ok {
		return
	}

	// Admins cannot moderate themselves; a master admin locking out the
	// only master admin is unrecoverable without database access.
	if id == middleware.GetAccountID(r.Context()) {
		core.BadRequest(w, "cannot moderate your own account")
		return
	}

	if err := action(r.Context(), id); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func pathAccountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		core.BadRequest(w, "invalid account id")
		return "", false
	}
	return id, true
}
