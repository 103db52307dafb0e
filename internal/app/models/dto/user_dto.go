package dto

// NewUserRequest carries the payload for admin user creation
type NewUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=250"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Admin    bool   `json:"admin"`
}

// UserResponse is the full user view
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserShortResponse is the condensed user view embedded in event payloads
type UserShortResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LoginRequest carries credentials for token issuance
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}
