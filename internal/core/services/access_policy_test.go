package services

import (
	"testing"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
)

func testUser(role domain.Role) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    string(role) + "@example.com",
		Name:     "Test " + string(role),
		Role:     role,
		IsActive: true,
	}
}

func TestApplicationVisibilityAdminAndAnalyst(t *testing.T) {
	stranger := uuid.New()
	o := domain.Ownership{BorrowerID: stranger, Status: domain.StatusApproved}

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAnalyst} {
		v := ApplicationVisibility(testUser(role))
		if !v.Unrestricted() {
			t.Errorf("%s: expected unrestricted visibility", role)
		}
		if !v.Matches(o) {
			t.Errorf("%s: expected to match any record", role)
		}
	}
}

func TestApplicationVisibilityBorrower(t *testing.T) {
	borrower := testUser(domain.RoleBorrower)
	v := ApplicationVisibility(borrower)

	if v.Unrestricted() {
		t.Fatal("borrower visibility must not be unrestricted")
	}

	own := domain.Ownership{BorrowerID: borrower.ID, Status: domain.StatusPending}
	if !v.Matches(own) {
		t.Error("borrower must see their own application")
	}

	other := domain.Ownership{BorrowerID: uuid.New(), Status: domain.StatusPending}
	if v.Matches(other) {
		t.Error("borrower must not see someone else's application")
	}
}

func TestApplicationVisibilityLoanOfficer(t *testing.T) {
	officer := testUser(domain.RoleLoanOfficer)
	v := ApplicationVisibility(officer)

	if v.Unrestricted() {
		t.Fatal("loan officer visibility must not be unrestricted")
	}

	assigned := domain.Ownership{
		BorrowerID:    uuid.New(),
		LoanOfficerID: &officer.ID,
		Status:        domain.StatusUnderReview,
	}
	if !v.Matches(assigned) {
		t.Error("officer must see applications assigned as loan officer")
	}

	underwriting := domain.Ownership{
		BorrowerID:    uuid.New(),
		UnderwriterID: &officer.ID,
		Status:        domain.StatusUnderReview,
	}
	if !v.Matches(underwriting) {
		t.Error("officer must see applications assigned as underwriter")
	}

	pending := domain.Ownership{BorrowerID: uuid.New(), Status: domain.StatusPending}
	if !v.Matches(pending) {
		t.Error("officer must see the unassigned pending queue")
	}

	otherOfficer := uuid.New()
	foreign := domain.Ownership{
		BorrowerID:    uuid.New(),
		LoanOfficerID: &otherOfficer,
		Status:        domain.StatusUnderReview,
	}
	if v.Matches(foreign) {
		t.Error("officer must not see another officer's non-pending book")
	}
}

func TestApplicationVisibilityUnknownRole(t *testing.T) {
	user := testUser(domain.Role("superuser"))
	v := ApplicationVisibility(user)

	own := domain.Ownership{BorrowerID: user.ID, Status: domain.StatusPending}
	if v.Matches(own) {
		t.Error("unknown role must match nothing, even its own records")
	}
	if v.Unrestricted() {
		t.Error("unknown role must not be unrestricted")
	}
}

func TestCanAccessApplication(t *testing.T) {
	borrower := testUser(domain.RoleBorrower)
	o := domain.Ownership{BorrowerID: borrower.ID, Status: domain.StatusPending}

	tests := []struct {
		name             string
		user             *models.User
		requireOwnership bool
		want             bool
	}{
		{"admin blanket access", testUser(domain.RoleAdmin), false, true},
		{"analyst blanket access", testUser(domain.RoleAnalyst), false, true},
		{"officer blanket access", testUser(domain.RoleLoanOfficer), false, true},
		{"owning borrower", borrower, false, true},
		{"other borrower", testUser(domain.RoleBorrower), false, false},
		{"admin with ownership required", testUser(domain.RoleAdmin), true, false},
		{"officer with ownership required", testUser(domain.RoleLoanOfficer), true, false},
		{"owning borrower with ownership required", borrower, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccessApplication(tt.user, o, tt.requireOwnership)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAccessApplicationOwnershipOverridesRole(t *testing.T) {
	// A staff member who is also the borrower of a record passes even
	// when ownership is required
	admin := testUser(domain.RoleAdmin)
	o := domain.Ownership{BorrowerID: admin.ID, Status: domain.StatusPending}

	if !CanAccessApplication(admin, o, true) {
		t.Error("owning user must pass regardless of role")
	}
}

func TestInRole(t *testing.T) {
	admin := testUser(domain.RoleAdmin)
	borrower := testUser(domain.RoleBorrower)

	if !InRole(admin, domain.RoleAdmin, domain.RoleAnalyst) {
		t.Error("admin must pass an allow-list containing admin")
	}
	if InRole(borrower, domain.RoleAdmin, domain.RoleAnalyst) {
		t.Error("borrower must fail a staff-only allow-list")
	}
	if InRole(admin) {
		t.Error("empty allow-list must deny everyone")
	}
}

func TestCanSeePrivateNotes(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAnalyst, domain.RoleLoanOfficer} {
		if !CanSeePrivateNotes(testUser(role)) {
			t.Errorf("%s must see private notes", role)
		}
	}
	if CanSeePrivateNotes(testUser(domain.RoleBorrower)) {
		t.Error("borrower must never see private notes")
	}
}
