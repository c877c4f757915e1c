package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

// CustomerStore captures the persistence operations of the customer directory.
type CustomerStore interface {
	CreateCustomer(ctx context.Context, customer persistence.Customer) (persistence.Customer, error)
	GetCustomer(ctx context.Context, phone string) (persistence.Customer, error)
	CustomerExists(ctx context.Context, phone string) (bool, error)
}

// CustomerService manages phone-keyed customer profiles. Profiles are created
// on first registration and never deleted; their reservation counters record
// lifetime bookings made, not currently active ones.
type CustomerService struct {
	customers CustomerStore
	logger    *slog.Logger
}

// NewCustomerService wires dependencies for directory operations.
func NewCustomerService(customers CustomerStore) *CustomerService {
	return NewCustomerServiceWithLogger(customers, nil)
}

// NewCustomerServiceWithLogger constructs a customer service with a specified logger.
func NewCustomerServiceWithLogger(customers CustomerStore, logger *slog.Logger) *CustomerService {
	return &CustomerService{customers: customers, logger: defaultLogger(logger)}
}

// Register creates a new profile. A phone number that is already registered
// yields ErrAlreadyExists; callers wanting idempotence should check Exists
// first.
func (s *CustomerService) Register(ctx context.Context, params RegisterCustomerParams) (persistence.Customer, error) {
	if s == nil {
		return persistence.Customer{}, fmt.Errorf("CustomerService is nil")
	}

	phone := strings.TrimSpace(params.Phone)
	name := strings.TrimSpace(params.Name)

	vErr := &ValidationError{}
	if phone == "" {
		vErr.add("phone", "phone number is required")
	}
	if name == "" {
		vErr.add("name", "customer name is required")
	}
	if vErr.HasErrors() {
		return persistence.Customer{}, vErr
	}

	customer, err := s.customers.CreateCustomer(ctx, persistence.Customer{Phone: phone, Name: name})
	if err != nil {
		mapped := mapRepoError(err)
		serviceLogger(ctx, s.logger, "customer", "register", "phone", phone).
			WarnContext(ctx, "registration failed", "error", mapped, "error_kind", ErrorKind(mapped))
		return persistence.Customer{}, mapped
	}

	return customer, nil
}

// Lookup retrieves a profile by phone number, reporting ErrNotFound for
// unknown numbers.
func (s *CustomerService) Lookup(ctx context.Context, phone string) (persistence.Customer, error) {
	if s == nil {
		return persistence.Customer{}, fmt.Errorf("CustomerService is nil")
	}

	customer, err := s.customers.GetCustomer(ctx, strings.TrimSpace(phone))
	if err != nil {
		return persistence.Customer{}, mapRepoError(err)
	}
	return customer, nil
}

// Exists reports whether a profile is registered for the phone number.
func (s *CustomerService) Exists(ctx context.Context, phone string) (bool, error) {
	if s == nil {
		return false, fmt.Errorf("CustomerService is nil")
	}

	exists, err := s.customers.CustomerExists(ctx, strings.TrimSpace(phone))
	if err != nil {
		return false, mapRepoError(err)
	}
	return exists, nil
}
