package profile

// Profile is the user-facing identity card, auto-created at sign-up.
type Profile struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Account is the credentials record behind a profile. The password hash
// never leaves this package.
type Account struct {
	UserID       string
	Email        string
	PasswordHash string
}
