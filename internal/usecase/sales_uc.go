package usecase

import (
	"context"

	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ SalesUseCase = (*salesUC)(nil)

type SalesUseCase interface {
	VendorSalesStatus(ctx context.Context, vendorID string) (model.SalesStatus, error)
}

// mockSalesStatus is served for every vendor. There is no aggregation behind it.
var mockSalesStatus = model.SalesStatus{
	TotalSubscriptions:   100,
	TotalRevenueCents:    30000000,
	TotalCommissionCents: 6000000,
}

type salesUC struct {
	log *zerolog.Logger
}

func NewSalesUseCase(logger *zerolog.Logger) *salesUC {
	return &salesUC{log: logger}
}

func (s *salesUC) VendorSalesStatus(ctx context.Context, vendorID string) (model.SalesStatus, error) {
	logging.With(ctx, s.log).Debug().Str("vendor_id", vendorID).Msg("vendor sales status (mock)")
	return mockSalesStatus, nil
}
