package models

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session maps a refresh token to its owner for the lifetime of the sign-in.
type Session struct {
	UserID       string `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
}
