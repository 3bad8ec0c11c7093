package authapi

import (
	"authd/cmd/identity"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// baseResponse is the envelope every endpoint shares.
type baseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	baseResponse
	User userResponse `json:"user"`
}

type loggedInResponse struct {
	baseResponse
	IsLoggedIn bool          `json:"isLoggedIn"`
	User       *userResponse `json:"user,omitempty"`
}

type healthResponse struct {
	baseResponse
	Timestamp string `json:"timestamp"`
}

func toUserResponse(u identity.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}
