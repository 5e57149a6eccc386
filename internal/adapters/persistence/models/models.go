package models

import (
	"time"

	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table. Users are never physically removed;
// deactivation flips is_active only.
type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string      `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"`
	Name         string      `gorm:"size:255;not null" json:"name"`
	Role         domain.Role `gorm:"size:20;not null" json:"role"`
	Organization *string     `gorm:"size:255" json:"organization"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time  `json:"last_login"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserResponse DTO
type UserResponse struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         domain.Role `json:"role"`
	Organization *string     `json:"organization,omitempty"`
	IsActive     bool        `json:"is_active"`
	LastLogin    *time.Time  `json:"last_login,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Organization: u.Organization,
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
	}
}

// ============================================================
// Loan Application Tables
// ============================================================

// LoanApplication represents loan_applications table
type LoanApplication struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Basic info
	BusinessName string  `gorm:"size:255;not null" json:"business_name"`
	BusinessType string  `gorm:"size:255;not null" json:"business_type"`
	LoanAmount   float64 `gorm:"type:decimal(12,2);not null" json:"loan_amount"`
	LoanPurpose  string  `gorm:"type:text;not null" json:"loan_purpose"`

	// Status & priority
	Status   domain.ApplicationStatus   `gorm:"size:20;default:'pending';index" json:"status"`
	Priority domain.ApplicationPriority `gorm:"size:20;default:'medium';index" json:"priority"`

	// Assignment
	BorrowerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"borrower_id"`
	LoanOfficerID *uuid.UUID `gorm:"type:uuid;index" json:"loan_officer_id"`
	UnderwriterID *uuid.UUID `gorm:"type:uuid;index" json:"underwriter_id"`

	// Risk & decision
	RiskScore             *float64 `json:"risk_score"`
	Recommendation        *string  `gorm:"size:50" json:"recommendation"`
	RecommendationSummary *string  `gorm:"type:text" json:"recommendation_summary"`
	AnalystNotes          *string  `gorm:"type:text" json:"analyst_notes"`

	// Timestamps
	ApplicationDate time.Time  `gorm:"autoCreateTime" json:"application_date"`
	DecisionDate    *time.Time `json:"decision_date"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Borrower    *User         `gorm:"foreignKey:BorrowerID" json:"borrower,omitempty"`
	LoanOfficer *User         `gorm:"foreignKey:LoanOfficerID" json:"loan_officer,omitempty"`
	Underwriter *User         `gorm:"foreignKey:UnderwriterID" json:"underwriter,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:ApplicationID" json:"transactions,omitempty"`
	TeamNotes    []TeamNote    `gorm:"foreignKey:ApplicationID" json:"team_notes,omitempty"`
	Messages     []Message     `gorm:"foreignKey:ApplicationID" json:"messages,omitempty"`
}

func (LoanApplication) TableName() string {
	return "loan_applications"
}

// BeforeCreate assigns a UUID primary key
func (a *LoanApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Ownership returns the assignment triple the access policy engine
// decides on
func (a *LoanApplication) Ownership() domain.Ownership {
	return domain.Ownership{
		BorrowerID:    a.BorrowerID,
		LoanOfficerID: a.LoanOfficerID,
		UnderwriterID: a.UnderwriterID,
		Status:        a.Status,
	}
}

// LoanApplicationResponse DTO
type LoanApplicationResponse struct {
	ID                    uuid.UUID                  `json:"id"`
	BusinessName          string                     `json:"business_name"`
	BusinessType          string                     `json:"business_type"`
	LoanAmount            float64                    `json:"loan_amount"`
	LoanPurpose           string                     `json:"loan_purpose"`
	Status                domain.ApplicationStatus   `json:"status"`
	Priority              domain.ApplicationPriority `json:"priority"`
	BorrowerID            uuid.UUID                  `json:"borrower_id"`
	BorrowerName          string                     `json:"borrower_name,omitempty"`
	LoanOfficerID         *uuid.UUID                 `json:"loan_officer_id"`
	LoanOfficerName       string                     `json:"loan_officer_name,omitempty"`
	UnderwriterID         *uuid.UUID                 `json:"underwriter_id"`
	UnderwriterName       string                     `json:"underwriter_name,omitempty"`
	RiskScore             *float64                   `json:"risk_score"`
	Recommendation        *string                    `json:"recommendation"`
	RecommendationSummary *string                    `json:"recommendation_summary"`
	AnalystNotes          *string                    `json:"analyst_notes"`
	ApplicationDate       time.Time                  `json:"application_date"`
	DecisionDate          *time.Time                 `json:"decision_date"`
	CreatedAt             time.Time                  `json:"created_at"`
	UpdatedAt             time.Time                  `json:"updated_at"`
}

func (a *LoanApplication) ToResponse() *LoanApplicationResponse {
	resp := &LoanApplicationResponse{
		ID:                    a.ID,
		BusinessName:          a.BusinessName,
		BusinessType:          a.BusinessType,
		LoanAmount:            a.LoanAmount,
		LoanPurpose:           a.LoanPurpose,
		Status:                a.Status,
		Priority:              a.Priority,
		BorrowerID:            a.BorrowerID,
		LoanOfficerID:         a.LoanOfficerID,
		UnderwriterID:         a.UnderwriterID,
		RiskScore:             a.RiskScore,
		Recommendation:        a.Recommendation,
		RecommendationSummary: a.RecommendationSummary,
		AnalystNotes:          a.AnalystNotes,
		ApplicationDate:       a.ApplicationDate,
		DecisionDate:          a.DecisionDate,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}

	if a.Borrower != nil {
		resp.BorrowerName = a.Borrower.Name
	}
	if a.LoanOfficer != nil {
		resp.LoanOfficerName = a.LoanOfficer.Name
	}
	if a.Underwriter != nil {
		resp.UnderwriterName = a.Underwriter.Name
	}

	return resp
}

// ============================================================
// Transaction Table
// ============================================================

// Transaction represents transactions table
type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`

	TransactionDate time.Time              `gorm:"not null;index" json:"transaction_date"`
	Type            domain.TransactionType `gorm:"size:10;not null" json:"type"`
	Category        string                 `gorm:"size:255;not null" json:"category"`
	Description     string                 `gorm:"type:text;not null" json:"description"`
	Amount          float64                `gorm:"type:decimal(10,2);not null" json:"amount"`

	// Analysis results
	AnomalyScore       *float64 `json:"anomaly_score"`
	IsAnomaly          bool     `gorm:"default:false;index" json:"is_anomaly"`
	AnomalyExplanation *string  `gorm:"type:text" json:"anomaly_explanation"`

	SourceAccount   *string `gorm:"size:255" json:"source_account"`
	ReferenceNumber *string `gorm:"size:255" json:"reference_number"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate assigns a UUID primary key
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ============================================================
// Communication Tables
// ============================================================

// TeamNote represents team_notes table. Private notes are internal to
// the lender team and never shown to borrowers.
type TeamNote struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	AuthorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`

	Content   string `gorm:"type:text;not null" json:"content"`
	IsPrivate bool   `gorm:"default:false" json:"is_private"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (TeamNote) TableName() string {
	return "team_notes"
}

// BeforeCreate assigns a UUID primary key
func (n *TeamNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TeamNoteResponse DTO
type TeamNoteResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	AuthorID      uuid.UUID `json:"author_id"`
	AuthorName    string    `json:"author_name,omitempty"`
	Content       string    `json:"content"`
	IsPrivate     bool      `json:"is_private"`
	CreatedAt     time.Time `json:"created_at"`
}

func (n *TeamNote) ToResponse() *TeamNoteResponse {
	resp := &TeamNoteResponse{
		ID:            n.ID,
		ApplicationID: n.ApplicationID,
		AuthorID:      n.AuthorID,
		Content:       n.Content,
		IsPrivate:     n.IsPrivate,
		CreatedAt:     n.CreatedAt,
	}
	if n.Author != nil {
		resp.AuthorName = n.Author.Name
	}
	return resp
}

// Message represents messages table
type Message struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	SenderID      uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`

	Content      string     `gorm:"type:text;not null" json:"content"`
	IsFromLender bool       `gorm:"not null" json:"is_from_lender"`
	IsRead       bool       `gorm:"default:false" json:"is_read"`
	ReadAt       *time.Time `json:"read_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns a UUID primary key
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MessageResponse DTO
type MessageResponse struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID uuid.UUID  `json:"application_id"`
	SenderID      uuid.UUID  `json:"sender_id"`
	SenderName    string     `json:"sender_name,omitempty"`
	Content       string     `json:"content"`
	IsFromLender  bool       `json:"is_from_lender"`
	IsRead        bool       `json:"is_read"`
	ReadAt        *time.Time `json:"read_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (m *Message) ToResponse() *MessageResponse {
	resp := &MessageResponse{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		SenderID:      m.SenderID,
		Content:       m.Content,
		IsFromLender:  m.IsFromLender,
		IsRead:        m.IsRead,
		ReadAt:        m.ReadAt,
		CreatedAt:     m.CreatedAt,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.Name
	}
	return resp
}

// ============================================================
// Audit & Metrics Tables
// ============================================================

// ApplicationStatusHistory represents application_status_history table
type ApplicationStatusHistory struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`

	OldStatus *domain.ApplicationStatus `gorm:"size:20" json:"old_status"`
	NewStatus domain.ApplicationStatus  `gorm:"size:20;not null" json:"new_status"`
	Reason    *string                   `gorm:"type:text" json:"reason"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ApplicationStatusHistory) TableName() string {
	return "application_status_history"
}

// BeforeCreate assigns a UUID primary key
func (h *ApplicationStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// ApplicationMetric represents application_metrics table, a daily
// snapshot written by the metrics cron job
type ApplicationMetric struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date time.Time `gorm:"not null;index" json:"date"`

	TotalApplications       int `gorm:"default:0" json:"total_applications"`
	PendingApplications     int `gorm:"default:0" json:"pending_applications"`
	ApprovedApplications    int `gorm:"default:0" json:"approved_applications"`
	RejectedApplications    int `gorm:"default:0" json:"rejected_applications"`
	UnderReviewApplications int `gorm:"default:0" json:"under_review_applications"`

	ApprovalRate    *float64 `json:"approval_rate"`
	TotalLoanAmount float64  `gorm:"type:decimal(15,2);default:0" json:"total_loan_amount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ApplicationMetric) TableName() string {
	return "application_metrics"
}

// BeforeCreate assigns a UUID primary key
func (m *ApplicationMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ============================================================
// System Tables
// ============================================================

// SystemSetting represents system_settings table
type SystemSetting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"uniqueIndex;size:255;not null" json:"key"`
	Value       string    `gorm:"type:jsonb;not null" json:"value"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&LoanApplication{},
		&Transaction{},
		&TeamNote{},
		&Message{},
		&ApplicationStatusHistory{},
		&ApplicationMetric{},
		&SystemSetting{},
	)
}
