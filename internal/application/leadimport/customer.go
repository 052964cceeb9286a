package leadimport

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// ResolveCustomer finds or creates the customer for a validated lead.
// Matching is scoped to the tenant's active customers and follows a strict
// priority: a customer whose primary or secondary phone equals the lead's
// phone wins over any email match. Existing customers are reused untouched;
// only when neither match exists is a new active customer created and saved
// through the given repository.
//
// The returned notice is non-empty when an existing customer was matched;
// it is informational, not an error.
func ResolveCustomer(ctx context.Context, customers partner.CustomerRepository, tenantID uuid.UUID, rowNum int, lead *Lead, cityID uuid.UUID) (*partner.Customer, string, error) {
	existing, err := customers.FindActiveByPhone(ctx, tenantID, lead.Phone)
	if err == nil {
		return existing, fmt.Sprintf("Row %d: existing customer matched by phone", rowNum), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, "", err
	}

	if lead.Email != nil {
		existing, err = customers.FindActiveByEmail(ctx, tenantID, *lead.Email)
		if err == nil {
			return existing, fmt.Sprintf("Row %d: existing customer matched by email", rowNum), nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, "", err
		}
	}

	customer, err := partner.NewCustomer(tenantID, lead.FullName, lead.Phone)
	if err != nil {
		return nil, "", err
	}
	if lead.Phone2 != nil {
		if err := customer.SetSecondaryPhone(*lead.Phone2); err != nil {
			return nil, "", err
		}
	}
	if lead.Email != nil {
		if err := customer.SetEmail(*lead.Email); err != nil {
			return nil, "", err
		}
	}

	var addr2 string
	if lead.AddressLine2 != nil {
		addr2 = *lead.AddressLine2
	}
	if err := customer.SetAddress(lead.AddressLine1, addr2, &cityID); err != nil {
		return nil, "", err
	}

	if err := customers.Save(ctx, customer); err != nil {
		return nil, "", err
	}
	return customer, "", nil
}
