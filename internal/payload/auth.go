package payload

// SignUpRequest is the body of POST /auth/sign-up.
type SignUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest is the body of POST /auth/sign-in.
type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleSignInRequest is the body of POST /auth/google.
type GoogleSignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// SendResetPasswordEmailRequest is the body of POST /auth/send-reset-password-email.
type SendResetPasswordEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password/:token.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// SignedInUser is the minimal profile returned with a freshly issued token.
type SignedInUser struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
