package domain

// Principal is the authenticated caller as resolved from its credential.
type Principal struct {
	SubjectID int64
	Role      Role
}

func (p Principal) Is(role Role) bool {
	return p.SubjectID > 0 && p.Role == role
}

// Authorize allows the call only when the principal is the resource owner:
// same role and same numeric id. A zero owner id never matches.
func Authorize(p Principal, ownerID int64, ownerRole Role) error {
	if p.SubjectID <= 0 || ownerID <= 0 {
		return ErrForbidden
	}
	if p.Role != ownerRole || p.SubjectID != ownerID {
		return ErrForbidden
	}
	return nil
}

// AuthorizeOptional is Authorize for nullable owner references.
func AuthorizeOptional(p Principal, ownerID *int64, ownerRole Role) error {
	if ownerID == nil {
		return ErrForbidden
	}
	return Authorize(p, *ownerID, ownerRole)
}
