package catalog

import (
	"regexp"
	"strings"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

var (
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Supplier is a vendor products are bought from
type Supplier struct {
	shared.TenantAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	ContactName string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(200)"`
	Notes       string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new active supplier
func NewSupplier(tenantID uuid.UUID, name string) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		IsActive:            true,
	}, nil
}

// Update updates the supplier name and notes
func (s *Supplier) Update(name, notes string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Notes = notes
	s.touch()

	return nil
}

// SetContact sets the supplier contact information
func (s *Supplier) SetContact(contactName, phone, email string) error {
	if len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if len(phone) > 50 || !phonePattern.MatchString(phone) {
			return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
		}
	}
	if email != "" {
		if len(email) > 200 || !emailPattern.MatchString(email) {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
	}

	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.touch()

	return nil
}

// Activate marks the supplier as active
func (s *Supplier) Activate() {
	s.IsActive = true
	s.touch()
}

// Deactivate marks the supplier as inactive
func (s *Supplier) Deactivate() {
	s.IsActive = false
	s.touch()
}

func (s *Supplier) touch() {
	s.MarkModified()
}

func validateSupplierName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}
