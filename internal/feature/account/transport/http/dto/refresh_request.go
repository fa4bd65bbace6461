package dto

// RefreshReq represents the request for token refresh.
type RefreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshRes represents the response for a successful token refresh.
type RefreshRes struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
