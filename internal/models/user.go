package models

// User is one entry of the fixed voter roster.
//
// Accounts are provisioned through configuration; the poll has no
// registration or account management. The voting core only ever consumes
// the opaque ID; username and password hash exist for the login flow.
type User struct {
	// ID is the opaque stable identifier used to key stored ballots.
	ID string `json:"id"`

	// Username is the login name, unique within the roster.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string `json:"-"`
}
