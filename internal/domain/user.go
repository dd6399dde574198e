package domain

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	AvatarURL    string
	// EmailVerified is an independent boolean lifecycle: initialized false,
	// flips to true exactly once upon verification-token redemption.
	EmailVerified bool
	Lifecycle
}

// MarkVerified flips the verification flag. Safe to call when already
// verified.
func (u *User) MarkVerified() {
	u.EmailVerified = true
}
