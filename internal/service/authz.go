package service

import "strings"

// AuthorizeOwner is the access policy for every project and task operation:
// a pure comparison between the authenticated principal and the resource
// owner's email. For tasks the owner email is resolved through the parent
// project before calling this.
//
// Returns ErrNotOwned on mismatch so the API layer can answer 403 rather
// than 404; the caller decides whether revealing existence is acceptable.
func AuthorizeOwner(principalEmail, ownerEmail string) error {
	if !strings.EqualFold(principalEmail, ownerEmail) {
		return ErrNotOwned
	}
	return nil
}
