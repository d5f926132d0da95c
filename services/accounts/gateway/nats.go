package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/accounts/internal/pkg/constants"
	"github.com/piresc/accounts/internal/pkg/logger"
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/piresc/accounts/internal/pkg/retry"
)

// NATSPublisher is satisfied by *nats.Client
type NATSPublisher interface {
	PublishJSON(subject string, message interface{}) error
}

// NATSGateway publishes codes for an external SMS sender subscribed to the delivery subject
type NATSGateway struct {
	client  NATSPublisher
	retrier *retry.Retrier
}

// NewNATSGateway creates a new NATS gateway
func NewNATSGateway(client NATSPublisher) *NATSGateway {
	return &NATSGateway{
		client:  client,
		retrier: retry.New(deliveryRetry),
	}
}

// DeliverOTP publishes the delivery event to NATS
func (g *NATSGateway) DeliverOTP(ctx context.Context, delivery *models.OTPDelivery) error {
	err := g.retrier.Execute(ctx, func(context.Context) error {
		return g.client.PublishJSON(constants.SubjectOTPDelivery, delivery)
	})
	if err != nil {
		return fmt.Errorf("failed to publish otp delivery: %w", err)
	}

	logger.Debug("Published OTP delivery",
		logger.String("subject", constants.SubjectOTPDelivery),
		logger.String("phone", delivery.Phone),
	)
	return nil
}
