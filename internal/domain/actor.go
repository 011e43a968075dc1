package domain

// Role is the authorization role carried in the access token
type Role string

const (
	RoleUser      Role = "user"
	RoleShopOwner Role = "shop_owner"
	RoleAdmin     Role = "admin"
)

// Valid returns true for a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleShopOwner || r == RoleAdmin
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID int64
	Role   Role
	// SalonID is the salon a shop owner manages. Zero for other roles.
	SalonID int64
}

// SystemActor is used by the payment webhook and background workers
var SystemActor = Actor{Role: RoleAdmin}

// IsStaff returns true for salon owners and admins
func (a Actor) IsStaff() bool {
	return a.Role == RoleShopOwner || a.Role == RoleAdmin
}

// CanManageSalon returns true for admins and for the owner of salonID
func (a Actor) CanManageSalon(salonID int64) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleShopOwner:
		return a.SalonID > 0 && a.SalonID == salonID
	default:
		return false
	}
}

// CanAccessBooking returns true if the actor made the booking or manages its salon
func (a Actor) CanAccessBooking(b *Booking) bool {
	return b.UserID == a.UserID || a.CanManageSalon(b.SalonID)
}
