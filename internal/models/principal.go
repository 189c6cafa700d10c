package models

// Principal is a registered user seeded from configuration at process start.
// Principals are immutable for the process lifetime and are never persisted
// alongside courses.
type Principal struct {
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"` // bcrypt hash, never exposed
	Authorities  []string `json:"authorities"`
	Roles        []string `json:"roles"`
}
