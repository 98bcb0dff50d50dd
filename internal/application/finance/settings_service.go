package finance

import (
	"context"
	"fmt"

	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SettingsService manages the tax rates and shipping options of a store
type SettingsService struct {
	taxRepo      finance.TaxRateRepository
	shippingRepo finance.ShippingOptionRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(taxRepo finance.TaxRateRepository, shippingRepo finance.ShippingOptionRepository) *SettingsService {
	return &SettingsService{taxRepo: taxRepo, shippingRepo: shippingRepo}
}

// ListTaxRates lists the tax rates of a store
func (s *SettingsService) ListTaxRates(ctx context.Context, tenantID uuid.UUID) ([]TaxRateResponse, error) {
	rows, _, err := s.taxRepo.FindAll(ctx, tenantID, unpaged())
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, ToTaxRateResponse), nil
}

// CreateTaxRate creates a tax rate. A default rate clears the flag on the
// store's other rates.
func (s *SettingsService) CreateTaxRate(ctx context.Context, tenantID uuid.UUID, req TaxRateRequest) (*TaxRateResponse, error) {
	t, err := finance.NewTaxRate(tenantID, req.Name, req.Rate, req.IsDefault)
	if err != nil {
		return nil, err
	}
	if err := s.taxRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create tax rate: %w", err)
	}
	if err := s.keepSingleDefault(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTaxRateResponse(t)
	return &resp, nil
}

// UpdateTaxRate replaces a tax rate
func (s *SettingsService) UpdateTaxRate(ctx context.Context, tenantID, id uuid.UUID, req TaxRateRequest) (*TaxRateResponse, error) {
	t, err := s.taxRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := t.Update(req.Name, req.Rate, req.IsDefault); err != nil {
		return nil, err
	}
	if err := s.taxRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update tax rate: %w", err)
	}
	if err := s.keepSingleDefault(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTaxRateResponse(t)
	return &resp, nil
}

// DeleteTaxRate deletes a tax rate
func (s *SettingsService) DeleteTaxRate(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.taxRepo.Delete(ctx, tenantID, id)
}

func (s *SettingsService) keepSingleDefault(ctx context.Context, t *finance.TaxRate) error {
	if !t.IsDefault {
		return nil
	}
	if err := s.taxRepo.ClearDefault(ctx, t.TenantID, t.ID); err != nil {
		return fmt.Errorf("clear default tax rate: %w", err)
	}
	return nil
}

// ListShippingOptions lists the shipping options of a store
func (s *SettingsService) ListShippingOptions(ctx context.Context, tenantID uuid.UUID) ([]ShippingOptionResponse, error) {
	rows, _, err := s.shippingRepo.FindAll(ctx, tenantID, unpaged())
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, ToShippingOptionResponse), nil
}

// CreateShippingOption creates a shipping option
func (s *SettingsService) CreateShippingOption(ctx context.Context, tenantID uuid.UUID, req ShippingOptionRequest) (*ShippingOptionResponse, error) {
	o, err := finance.NewShippingOption(tenantID, req.Name, req.Cost, req.MinOrderTotal)
	if err != nil {
		return nil, err
	}
	if err := s.shippingRepo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create shipping option: %w", err)
	}
	resp := ToShippingOptionResponse(o)
	return &resp, nil
}

// UpdateShippingOption replaces a shipping option
func (s *SettingsService) UpdateShippingOption(ctx context.Context, tenantID, id uuid.UUID, req ShippingOptionRequest) (*ShippingOptionResponse, error) {
	o, err := s.shippingRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := o.Update(req.Name, req.Cost, req.MinOrderTotal); err != nil {
		return nil, err
	}
	if err := s.shippingRepo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update shipping option: %w", err)
	}
	resp := ToShippingOptionResponse(o)
	return &resp, nil
}

// DeleteShippingOption deletes a shipping option
func (s *SettingsService) DeleteShippingOption(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.shippingRepo.Delete(ctx, tenantID, id)
}

// settings lists are small; fetch them in one page
func unpaged() shared.Filter {
	f := shared.DefaultFilter()
	f.PageSize = 500
	f.OrderDir = "asc"
	return f
}
