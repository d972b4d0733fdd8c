package handler

import (
	"net/http"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/transport"
	"thrift-store-be/internal/user"
)

type authResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    user.User `json:"user"`
}

type userResponse struct {
	User *user.User `json:"user"`
}

// setAccessToken mirrors the token into an HttpOnly cookie for browser clients.
func setAccessToken(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	var in user.RegisterInput
	if err := transport.Decode(r, &in); err != nil {
		return err
	}

	res, err := h.users.Register(r.Context(), in)
	if err != nil {
		return err
	}

	setAccessToken(w, r, res.Token)
	transport.JSON(w, r, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    res.User,
	})
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	var in user.LoginInput
	if err := transport.Decode(r, &in); err != nil {
		return err
	}

	res, err := h.users.Login(r.Context(), in)
	if err != nil {
		return err
	}

	setAccessToken(w, r, res.Token)
	transport.JSON(w, r, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User,
	})
	return nil
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	u, err := h.users.Me(r.Context(), id.ID)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, userResponse{User: u})
	return nil
}
