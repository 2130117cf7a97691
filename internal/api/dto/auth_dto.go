package dto

// LoginRequest payload for the API login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token. The token itself encodes
// subject, roles and expiry; nothing else is recorded server-side.
type LoginResponse struct {
	Token string `json:"token"`
}
