package services

import (
	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/core/domain"

	"gorm.io/gorm"
)

// visibilityKind enumerates the closed set of list-visibility shapes.
// Any role the switch below does not recognize gets visibilityNone, so
// extending the role enum can never silently widen access.
type visibilityKind int

const (
	visibilityNone visibilityKind = iota
	visibilityAll
	visibilityOwn
	visibilityAssignedOrPending
)

// Visibility is the query-level predicate restricting which loan
// applications a user may list. It renders either as an in-memory match
// or as a GORM scope for repository queries.
type Visibility struct {
	kind visibilityKind
	user *models.User
}

// ApplicationVisibility derives the list-visibility predicate for a user:
// admin and analyst see everything, loan officers see their own book plus
// the unassigned pending queue, borrowers see only their own records.
func ApplicationVisibility(user *models.User) Visibility {
	switch user.Role {
	case domain.RoleAdmin, domain.RoleAnalyst:
		return Visibility{kind: visibilityAll, user: user}
	case domain.RoleLoanOfficer:
		return Visibility{kind: visibilityAssignedOrPending, user: user}
	case domain.RoleBorrower:
		return Visibility{kind: visibilityOwn, user: user}
	default:
		// Deny-by-default for unrecognized roles
		return Visibility{kind: visibilityNone, user: user}
	}
}

// Unrestricted reports whether the predicate matches every record
// without emitting any field comparison
func (v Visibility) Unrestricted() bool {
	return v.kind == visibilityAll
}

// Matches evaluates the predicate against a single ownership triple
func (v Visibility) Matches(o domain.Ownership) bool {
	switch v.kind {
	case visibilityAll:
		return true
	case visibilityOwn:
		return o.BorrowerID == v.user.ID
	case visibilityAssignedOrPending:
		if o.LoanOfficerID != nil && *o.LoanOfficerID == v.user.ID {
			return true
		}
		if o.UnderwriterID != nil && *o.UnderwriterID == v.user.ID {
			return true
		}
		return o.Status == domain.StatusPending
	default:
		return false
	}
}

// Scope renders the predicate as a GORM scope for multi-record queries
func (v Visibility) Scope() repositories.Scope {
	switch v.kind {
	case visibilityAll:
		return func(db *gorm.DB) *gorm.DB { return db }
	case visibilityOwn:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("borrower_id = ?", v.user.ID)
		}
	case visibilityAssignedOrPending:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("loan_officer_id = ? OR underwriter_id = ? OR status = ?",
				v.user.ID, v.user.ID, domain.StatusPending)
		}
	default:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("1 = 0")
		}
	}
}

// CanAccessApplication decides a single-record access. With
// requireOwnership, staff privileges do not apply and only the owning
// borrower passes. The ownership match is checked last and grants access
// regardless of role: a user can always reach a record they own.
func CanAccessApplication(user *models.User, o domain.Ownership, requireOwnership bool) bool {
	if !requireOwnership && (user.Role == domain.RoleAdmin || user.Role == domain.RoleAnalyst) {
		return true
	}

	// Loan officers get blanket single-record access; the list predicate
	// above is the narrower rule and stays authoritative for listings.
	if !requireOwnership && user.Role == domain.RoleLoanOfficer {
		return true
	}

	return user.ID == o.BorrowerID
}

// InRole reports whether the user's role is in the allow-list. Failing
// this check is always a hard deny, independent of ownership.
func InRole(user *models.User, allowed ...domain.Role) bool {
	for _, role := range allowed {
		if user.Role == role {
			return true
		}
	}
	return false
}

// CanSeePrivateNotes reports whether private team notes are visible to
// the user. Borrowers never see them, whatever the point check said.
func CanSeePrivateNotes(user *models.User) bool {
	return user.Role.IsStaff()
}
