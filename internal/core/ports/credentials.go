package ports

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns false without error on mismatch. An error means the
	// stored hash itself is unusable.
	Verify(password, hash string) (bool, error)
}

// Identity is the set of claims bound into a bearer token.
type Identity struct {
	UserID string
}

// TokenIssuer mints and verifies stateless bearer tokens.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
	Verify(token string) (Identity, error)
}
