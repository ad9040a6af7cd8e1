package models

// Profile is the authenticated user's account record.
type Profile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	IsActivated bool   `json:"is_activated"`
}

// FullName joins first and last name with a space.
func (p Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// ProfilePatch is the body of PUT /auth/me. Empty fields are omitted so the
// same type serves both the profile form and the activation update.
type ProfilePatch struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	IsActivated *bool  `json:"is_activated,omitempty"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Language  string `json:"language"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordChange is the body of PUT /auth/me/password.
type PasswordChange struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RegistrationResult is what the register endpoint returns: the new token
// alongside the freshly created profile fields.
type RegistrationResult struct {
	Token string `json:"token"`
	Profile
}
