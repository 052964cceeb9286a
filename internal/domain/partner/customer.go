package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a customer in the partner context.
// It is the aggregate root for customer-related operations. Customers are
// identified within a tenant primarily by phone number; email is a secondary
// identity used only when no phone match exists.
type Customer struct {
	shared.TenantAggregateRoot
	Name         string         `gorm:"type:varchar(200);not null"`
	Phone        string         `gorm:"type:varchar(20);not null;index"`
	Phone2       *string        `gorm:"type:varchar(20);index"`
	Email        *string        `gorm:"type:varchar(200);index"`
	AddressLine1 string         `gorm:"type:varchar(200)"`
	AddressLine2 *string        `gorm:"type:varchar(200)"`
	CityID       *uuid.UUID     `gorm:"type:uuid"`
	Status       CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes        string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new active customer with required fields.
// Phone must already be in canonical local form (0XXXXXXXXX).
func NewCustomer(tenantID uuid.UUID, name, phone string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               phone,
		Status:              CustomerStatusActive,
	}, nil
}

// SetSecondaryPhone sets the customer's secondary phone number.
// Passing an empty string clears it (stored as NULL).
func (c *Customer) SetSecondaryPhone(phone string) error {
	if phone == "" {
		c.Phone2 = nil
		c.touch()
		return nil
	}
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	if phone == c.Phone {
		return shared.NewDomainError("DUPLICATE_PHONE", "Secondary phone must differ from primary phone")
	}
	c.Phone2 = &phone
	c.touch()
	return nil
}

// SetEmail sets the customer's email. Passing an empty string clears it.
func (c *Customer) SetEmail(email string) error {
	if email == "" {
		c.Email = nil
		c.touch()
		return nil
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	lower := strings.ToLower(email)
	c.Email = &lower
	c.touch()
	return nil
}

// SetAddress sets the customer's address. Line 2 is optional and stored as
// NULL when empty; cityID may be nil for customers without a resolved city.
func (c *Customer) SetAddress(line1, line2 string, cityID *uuid.UUID) error {
	if line1 != "" && len(line1) > 200 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot exceed 200 characters")
	}
	if line2 != "" && len(line2) > 200 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line 2 cannot exceed 200 characters")
	}

	c.AddressLine1 = line1
	if line2 == "" {
		c.AddressLine2 = nil
	} else {
		c.AddressLine2 = &line2
	}
	c.CityID = cityID
	c.touch()
	return nil
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.touch()
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}
	c.Status = CustomerStatusActive
	c.touch()
	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}
	c.Status = CustomerStatusInactive
	c.touch()
	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// MatchesPhone reports whether the given canonical phone equals the
// customer's primary or secondary phone.
func (c *Customer) MatchesPhone(phone string) bool {
	if phone == "" {
		return false
	}
	if c.Phone == phone {
		return true
	}
	return c.Phone2 != nil && *c.Phone2 == phone
}

func (c *Customer) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Validation functions

var (
	phonePattern = regexp.MustCompile(`^0\d{9}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

// ValidatePhone checks that a phone number is in canonical local form
// (a leading zero followed by nine digits).
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone must be a 10-digit local number starting with 0")
	}
	return nil
}

// ValidateEmail checks the basic shape of an email address.
func ValidateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
