// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

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
	authenticator, loginLimiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)

		r.Group(func(r chi.Router) {
			r.Use(loginLimiter)
			r.Post("/login", h.Login)
			r.Post("/admin/login", h.AdminLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
			r.Post("/logout", h.Logout)
			r.Post("/logout-all", h.LogoutAll)
			r.Get("/sessions", h.GetSessions)
		})
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.RegisterUser(r.Context(), CreateUserInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Role:         req.Role,
		Phone:        req.Phone,
		Location:     req.Location,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
	}, loginOptions(r))
	if err != nil {
		writeAuthError(w, err)
		return
	}

	core.Created(w, result)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.LoginUser(r.Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, loginOptions(r))
	if err != nil {
		writeAuthError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.LoginAdmin(r.Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, loginOptions(r))
	if err != nil {
		writeAuthError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())

	si, err := h.service.ValidateSession(r.Context(), token)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	core.OK(w, si.User)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())

	deleted, err := h.service.LogoutByToken(r.Context(), token)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]bool{"logged_out": deleted})
}

func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == "" {
		core.Unauthorized(w, "")
		return
	}

	count, err := h.service.DeleteUserSessions(r.Context(), accountID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]int64{"revoked": count})
}

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == "" {
		core.Unauthorized(w, "")
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), accountID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SessionsResponse{Sessions: sessions})
}

// writeAuthError maps pipeline codes onto HTTP. Lookup and password
// failures share one public message so the API does not confirm whether an
// email is registered.
func writeAuthError(w http.ResponseWriter, err error) {
	authErr, ok := AsAuthError(err)
	if !ok {
		core.InternalServerError(w, err)
		return
	}

	switch authErr.Code {
	case CodeInvalidInput:
		core.BadRequest(w, authErr.Message)
	case CodeEmailExists:
		core.JSONError(w, core.DuplicateError("email"))
	case CodeUserNotFound, CodeAdminNotFound, CodeInvalidCredentials:
		core.Unauthorized(w, "invalid email or password")
	case CodeUserSuspended, CodeUserBanned, CodeUserDeleted,
		CodeAdminDisabled:
		core.JSONError(w, core.NewAppError(
			core.ErrForbidden,
			authErr.Message,
			http.StatusForbidden,
			string(authErr.Code),
		))
	default:
		core.InternalServerError(w, err)
	}
}

func loginOptions(r *http.Request) LoginOptions {
	return LoginOptions{
		UserAgent: r.UserAgent(),
		IPAddress: extractIPAddress(r),
	}
}

func extractIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
