package domain

// Identity is the owning identity of a submission: an authenticated user,
// or a guest known only by contact email.
type Identity struct {
	UserID *int32 `json:"user_id,omitempty"`
	Email  string `json:"email"`
}

// Authenticated reports whether the identity carries a verified user id.
func (i Identity) Authenticated() bool {
	return i.UserID != nil
}

// IdentityHint is the read-time lookup key for resolving ownership. Email
// matching is case-insensitive so guest records are adopted once a user
// registers with the same address.
type IdentityHint struct {
	UserID *int32
	Email  string
}

// OwnedRecords is the deduplicated set of record ids an identity owns.
type OwnedRecords struct {
	RequestIDs []int32 `json:"request_ids"`
	RentalIDs  []int32 `json:"rental_ids"`
}
