package booking

import "github.com/grupo05/coworking-space/internal/model"

// Identity is the caller's authenticated identity for the duration of one
// request.  It is passed explicitly to every engine operation; the engine
// never consults ambient or global state to find out who is calling.
type Identity struct {
	UserID uint64
	Role   string
}

// IsAdmin reports whether the caller holds the administrative role.
func (id Identity) IsAdmin() bool { return id.Role == model.RoleAdmin }

// CanActFor reports whether the caller may create, read or cancel a
// reservation owned by ownerID.  Owners act for themselves;
// administrators act for anyone.
func (id Identity) CanActFor(ownerID uint64) bool {
	return id.IsAdmin() || id.UserID == ownerID
}
