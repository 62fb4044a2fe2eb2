package schemas

type TokenRequest struct {
	UserID string `json:"userId,omitempty"`
}

type TokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
