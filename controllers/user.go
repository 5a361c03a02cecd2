package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"go-shop/middleware"
	"go-shop/models"
	"go-shop/services"
)

// UserController handles account and profile requests.
type UserController struct {
	auth     services.AuthService
	validate *validator.Validate
}

// NewUserController creates a new UserController.
func NewUserController(auth services.AuthService) *UserController {
	return &UserController{
		auth:     auth,
		validate: validator.New(),
	}
}

type credentialsPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles user registration.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := uc.validate.Struct(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := uc.auth.Register(r.Context(), payload.Email, payload.Password); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusCreated,
		"User registered successfully. Check your email for the verification link.")
}

// VerifyEmail consumes the emailed verification link.
func (uc *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondMessage(w, http.StatusBadRequest, "Verification token missing")
		return
	}

	if err := uc.auth.VerifyEmail(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Email verified successfully. You can now log in.")
}

// Login handles user authentication.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	token, err := uc.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailNotVerified) {
			respondMessage(w, http.StatusOK, "Email not verified. New verification link sent.")
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// ForgotPassword mails a one-shot password reset link.
func (uc *UserController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := uc.validate.Struct(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := uc.auth.ForgotPassword(r.Context(), payload.Email); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Password reset link sent.")
}

// ResetPassword consumes the emailed reset link.
func (uc *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var payload struct {
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := uc.validate.Struct(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := uc.auth.ResetPassword(r.Context(), token, payload.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Password reset successful.")
}

// Logout revokes the presented session token.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := uc.auth.Logout(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Successfully logged out")
}

// GetProfile returns the authenticated user's profile.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := uc.auth.Profile(r.Context(), claims.Email())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile updates the optional profile fields.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := uc.auth.UpdateProfile(r.Context(), claims.Email(), update); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Profile updated successfully")
}
