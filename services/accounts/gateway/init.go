package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/piresc/accounts/internal/pkg/retry"
	"github.com/piresc/accounts/services/accounts"
)

// publish attempts for broker channels; the request waits on them
var deliveryRetry = retry.Config{
	MaxRetries: 2,
	BaseDelay:  50 * time.Millisecond,
	MaxDelay:   500 * time.Millisecond,
	Multiplier: 2,
	Jitter:     true,
}

type deliverer interface {
	DeliverOTP(ctx context.Context, delivery *models.OTPDelivery) error
}

// AccountGW hands reset codes to the configured delivery channel
type AccountGW struct {
	channel   string
	deliverer deliverer
}

// NewAccountGW selects the delivery channel. natsClient and nsqProducer may be nil
// when their channel is not the selected one.
func NewAccountGW(channel string, natsClient NATSPublisher, nsqProducer NSQPublisher) (accounts.AccountGW, error) {
	gw := &AccountGW{channel: channel}

	switch channel {
	case models.OTPDeliveryLog, "":
		gw.channel = models.OTPDeliveryLog
		gw.deliverer = NewLogGateway()
	case models.OTPDeliveryNATS:
		if natsClient == nil {
			return nil, fmt.Errorf("otp delivery %q requires a nats client", channel)
		}
		gw.deliverer = NewNATSGateway(natsClient)
	case models.OTPDeliveryNSQ:
		if nsqProducer == nil {
			return nil, fmt.Errorf("otp delivery %q requires an nsq producer", channel)
		}
		gw.deliverer = NewNSQGateway(nsqProducer)
	default:
		return nil, fmt.Errorf("unknown otp delivery channel %q", channel)
	}

	return gw, nil
}

// DeliverOTP forwards to the selected channel
func (g *AccountGW) DeliverOTP(ctx context.Context, delivery *models.OTPDelivery) error {
	return g.deliverer.DeliverOTP(ctx, delivery)
}

// Channel returns the name of the selected delivery channel
func (g *AccountGW) Channel() string {
	return g.channel
}
