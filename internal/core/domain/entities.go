package domain

import "github.com/google/uuid"

// Role represents user role in the system
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleAnalyst     Role = "analyst"
	RoleLoanOfficer Role = "loan_officer"
	RoleBorrower    Role = "borrower"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleLoanOfficer, RoleBorrower:
		return true
	}
	return false
}

// IsStaff reports whether r belongs to the lender team
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleLoanOfficer:
		return true
	}
	return false
}

// ApplicationStatus represents loan application lifecycle status
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
	StatusDisbursed   ApplicationStatus = "disbursed"
)

// Valid reports whether s is a known status
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusDisbursed:
		return true
	}
	return false
}

// IsFinal reports whether s is a decision status
func (s ApplicationStatus) IsFinal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ApplicationPriority represents review priority
type ApplicationPriority string

const (
	PriorityLow    ApplicationPriority = "low"
	PriorityMedium ApplicationPriority = "medium"
	PriorityHigh   ApplicationPriority = "high"
	PriorityUrgent ApplicationPriority = "urgent"
)

// Valid reports whether p is a known priority
func (p ApplicationPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TransactionType represents cash flow direction
type TransactionType string

const (
	TransactionInflow  TransactionType = "inflow"
	TransactionOutflow TransactionType = "outflow"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	return t == TransactionInflow || t == TransactionOutflow
}

// Ownership holds the assignment identifiers of a loan application.
// It is the read-only input of every access decision: the borrower is
// mandatory, officer and underwriter are optional.
type Ownership struct {
	BorrowerID    uuid.UUID
	LoanOfficerID *uuid.UUID
	UnderwriterID *uuid.UUID
	Status        ApplicationStatus
}
