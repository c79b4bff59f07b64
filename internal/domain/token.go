package domain

// APIToken is a bearer token bound to one list. Tokens stay listable and
// revocable from the issuing chat, so the stored value is the token itself.
type APIToken struct {
	ID         int64
	ListID     int64
	Token      string
	IssuedAt   int64
	LastUsedAt *int64
	RevokedAt  *int64
}
