package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/am24/brickshop/internal/application/port/output"
	"github.com/am24/brickshop/internal/domain/session"
)

// AuthAPI implements output.AuthAPI. Auth is the one surface where status
// codes are refined into user-facing messages; the sync engines just
// propagate failure.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth gateway.
func NewAuthAPI(client *Client) output.AuthAPI {
	return &AuthAPI{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID int64 `json:"id"`
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := a.client.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", refineAuthError(err)
	}
	return resp.Token, nil
}

func (a *AuthAPI) Register(ctx context.Context, username, email, password string) (int64, error) {
	var resp registerResponse
	req := registerRequest{Username: username, Email: email, Password: password}
	if err := a.client.post(ctx, "/auth/register", req, &resp); err != nil {
		return 0, refineAuthError(err)
	}
	return resp.ID, nil
}

func (a *AuthAPI) Me(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := a.client.get(ctx, "/users/me", nil, &user); err != nil {
		return nil, refineAuthError(err)
	}
	return &user, nil
}

// refineAuthError keeps a server-provided message, otherwise replaces the
// generic status description with a canned one for the known codes.
func refineAuthError(err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err
	}

	// A server-provided message survived newError untouched; only the
	// generic fallback gets refined.
	if !isGenericMessage(apiErr) {
		return apiErr
	}

	switch apiErr.Status {
	case http.StatusNotFound:
		apiErr.Message = "User not found."
	case http.StatusUnauthorized:
		apiErr.Message = "Incorrect password."
	case http.StatusConflict:
		apiErr.Message = "User with this email already exists."
	case http.StatusBadRequest:
		apiErr.Message = "Invalid input data."
	}
	return apiErr
}

func isGenericMessage(e *Error) bool {
	return e.Message == newError(e.Status, nil).Message
}
