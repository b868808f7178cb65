package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paywise/paywise-backend/internal/api/httpx"
	"github.com/paywise/paywise-backend/internal/api/validate"
	"github.com/paywise/paywise-backend/internal/middleware"
	"github.com/paywise/paywise-backend/internal/models"
	"github.com/paywise/paywise-backend/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type signupRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (r signupRequest) Validate() error {
	return validate.Collect(
		validate.Required("username", r.Username),
		validate.Email("username", r.Username),
		validate.MaxLen("username", r.Username, 30),
		validate.Required("firstName", r.FirstName),
		validate.MaxLen("firstName", r.FirstName, 50),
		validate.Required("lastName", r.LastName),
		validate.MaxLen("lastName", r.LastName, 50),
		validate.MinLen("password", r.Password, 6),
	)
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, err.(validate.Errs).First())
		return
	}

	token, err := h.svc.Signup(r.Context(), req.Username, req.FirstName, req.LastName, req.Password)
	if err != nil {
		httpx.WriteDomainError(w, err, "Server error. Please try again later.")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User created successfully",
		"token":   token,
	})
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r signinRequest) Validate() error {
	return validate.Collect(
		validate.Required("username", r.Username),
		validate.Email("username", r.Username),
		validate.MinLen("password", r.Password, 6),
	)
}

func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, err.(validate.Errs).First())
		return
	}

	token, err := h.svc.Signin(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteDomainError(w, err, "Server error. Please try again later.")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

type updateRequest struct {
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

func (r updateRequest) Validate() error {
	var checks []*validate.ErrField
	if r.Password != nil {
		checks = append(checks, validate.MinLen("password", *r.Password, 6))
	}
	if r.FirstName != nil {
		checks = append(checks, validate.MaxLen("firstName", *r.FirstName, 50))
	}
	if r.LastName != nil {
		checks = append(checks, validate.MaxLen("lastName", *r.LastName, 50))
	}
	return validate.Collect(checks...)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, err.(validate.Errs).First())
		return
	}

	if err := h.svc.Update(r.Context(), uid, req.Password, req.FirstName, req.LastName); err != nil {
		httpx.WriteDomainError(w, err, "Error while updating information")
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Updated successfully")
}

func (h *UserHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Search(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		httpx.WriteDomainError(w, err, "Error fetching users")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string][]models.UserSummary{"users": users})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	u, err := h.svc.Get(r.Context(), uid)
	if err != nil {
		httpx.WriteDomainError(w, err, "Error fetching user information")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"firstName": u.FirstName,
		"lastName":  u.LastName,
	})
}
