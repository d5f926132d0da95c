package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/accounts/internal/pkg/constants"
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/piresc/accounts/internal/pkg/retry"
)

// NSQPublisher is satisfied by *nsq.Producer
type NSQPublisher interface {
	Publish(topic string, message interface{}) error
}

// NSQGateway queues codes on an NSQ topic
type NSQGateway struct {
	producer NSQPublisher
	retrier  *retry.Retrier
}

func NewNSQGateway(producer NSQPublisher) *NSQGateway {
	return &NSQGateway{producer: producer, retrier: retry.New(deliveryRetry)}
}

func (g *NSQGateway) DeliverOTP(ctx context.Context, delivery *models.OTPDelivery) error {
	err := g.retrier.Execute(ctx, func(context.Context) error {
		return g.producer.Publish(constants.TopicOTPDelivery, delivery)
	})
	if err != nil {
		return fmt.Errorf("failed to queue otp delivery: %w", err)
	}
	return nil
}
