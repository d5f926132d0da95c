package accounts

import (
	"context"

	"github.com/piresc/accounts/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/accounts/services/accounts AccountGW

// AccountGW delivers password reset codes out of band
type AccountGW interface {
	DeliverOTP(ctx context.Context, delivery *models.OTPDelivery) error
}
