package gateway

import (
	"context"

	"github.com/piresc/accounts/internal/pkg/logger"
	"github.com/piresc/accounts/internal/pkg/models"
)

// LogGateway writes codes to the service log. Meant for local development only.
type LogGateway struct {
	log *logger.ZapLogger
}

func NewLogGateway() *LogGateway {
	return &LogGateway{}
}

func (g *LogGateway) out() *logger.ZapLogger {
	if g.log != nil {
		return g.log
	}
	return logger.GetGlobalLogger()
}

func (g *LogGateway) DeliverOTP(_ context.Context, delivery *models.OTPDelivery) error {
	g.out().Info("Password reset OTP issued",
		logger.String("phone", delivery.Phone),
		logger.String("otp", delivery.Code),
		logger.Time("expires_at", delivery.ExpiresAt),
	)
	return nil
}
