package booking

import "petmarket/internal/domain"

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	ID   int64
	Role domain.UserRole
}

// rolesForTarget lists which party may drive a booking INTO a status.
// Nobody moves a booking back to pending.
var rolesForTarget = map[domain.BookingStatus][]domain.UserRole{
	domain.BookingConfirmed: {domain.RoleProvider},
	domain.BookingCompleted: {domain.RoleProvider},
	domain.BookingCancelled: {domain.RolePetOwner, domain.RoleProvider},
}

type edge struct {
	from domain.BookingStatus
	to   domain.BookingStatus
	role domain.UserRole
}

// legalEdges is the whole state machine:
// pending -> confirmed (provider), pending -> cancelled (either party),
// confirmed -> completed (provider), confirmed -> cancelled (owner).
// completed and cancelled are terminal.
var legalEdges = map[edge]bool{
	{domain.BookingPending, domain.BookingConfirmed, domain.RoleProvider}:   true,
	{domain.BookingPending, domain.BookingCancelled, domain.RoleProvider}:   true,
	{domain.BookingPending, domain.BookingCancelled, domain.RolePetOwner}:   true,
	{domain.BookingConfirmed, domain.BookingCompleted, domain.RoleProvider}: true,
	{domain.BookingConfirmed, domain.BookingCancelled, domain.RolePetOwner}: true,
}

// AuthorizeTransition decides from a booking snapshot whether the actor may
// move it to target. It is a pure function: no I/O, no request objects.
//
// Ownership is checked first: an actor who is not the booking's party in
// their claimed role, or whose role never drives the target status, gets
// ErrUnauthorized no matter how valid the transition itself would be. Only
// a correctly-owned request can fail with ErrInvalidTransition.
func AuthorizeTransition(actor Actor, b *domain.Booking, target domain.BookingStatus) error {
	switch actor.Role {
	case domain.RolePetOwner:
		if b.OwnerID != actor.ID {
			return ErrUnauthorized
		}
	case domain.RoleProvider:
		if b.ProviderID != actor.ID {
			return ErrUnauthorized
		}
	default:
		return ErrUnauthorized
	}

	allowed := false
	for _, r := range rolesForTarget[target] {
		if r == actor.Role {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrUnauthorized
	}

	if !legalEdges[edge{from: b.Status, to: target, role: actor.Role}] {
		return ErrInvalidTransition
	}
	return nil
}

// ParseStatus maps a request payload value onto a booking status.
func ParseStatus(s string) (domain.BookingStatus, bool) {
	switch domain.BookingStatus(s) {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
		return domain.BookingStatus(s), true
	}
	return "", false
}
