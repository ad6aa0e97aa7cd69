package application

type RegisterUserCommand struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	StudentID   *string
	SchoolClass *string
}

type RegistrationResult struct {
	// UserID is the identity provider's id for the new user.
	UserID               string
	Email                string
	Message              string
	VerificationRequired bool
}

type EmailAvailability struct {
	Email     string
	Available bool
	Allowed   bool
}

type LoginCommand struct {
	Email    string
	Password string
}

type RefreshTokenCommand struct {
	RefreshToken string
}

type RequestPasswordResetCommand struct {
	Email string
}

type ResetPasswordCommand struct {
	Email       string
	NewPassword string
}

type UpdateNameCommand struct {
	FirstName string
	LastName  string
}
