package handler

import (
	"net/http"

	"github.com/gemchat-dev/gemchat/shared/api"
	"github.com/gemchat-dev/gemchat/shared/domain"
	internal_errors "github.com/gemchat-dev/gemchat/shared/errors"
	"github.com/gemchat-dev/gemchat/shared/middleware"
	"github.com/gemchat-dev/gemchat/shared/utils"
)

// malformed JSON is reported the same way as missing fields
var errCredentialsRequired = &internal_errors.ErrorWithStatusCode{
	Message:    "Email and password are required",
	StatusCode: http.StatusBadRequest,
	Err:        internal_errors.ErrValidation,
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(http.MaxBytesReader(w, r.Body, maxBodyBytes), &body); err != nil {
		utils.WriteErrorAndStatusCode(w, errCredentialsRequired)
		return
	}

	user, err := h.auth.Register(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.RegisterResponse{Message: "User registered successfully", User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(http.MaxBytesReader(w, r.Body, maxBodyBytes), &body); err != nil {
		utils.WriteErrorAndStatusCode(w, errCredentialsRequired)
		return
	}

	token, err := h.auth.Login(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.LoginResponse{Message: "Login successful", Token: token})
}

// User echoes the verified claims. Mounted behind NeedAuth.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.UserResponse{Message: "User authenticated", User: claims})
}
