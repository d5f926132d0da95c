package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/piresc/accounts/internal/pkg/constants"
	"github.com/piresc/accounts/internal/pkg/logger"
	"github.com/piresc/accounts/internal/pkg/models"
	natspkg "github.com/piresc/accounts/internal/pkg/nats"
)

type fakeNSQ struct {
	calls   int
	topic   string
	message interface{}
	err     error
}

func (f *fakeNSQ) Publish(topic string, message interface{}) error {
	f.calls++
	f.topic = topic
	f.message = message
	return f.err
}

func testDelivery() *models.OTPDelivery {
	return &models.OTPDelivery{
		Phone:     "0811",
		Code:      "482913",
		ExpiresAt: time.Date(2026, 1, 1, 10, 10, 0, 0, time.UTC),
	}
}

func TestNewAccountGW(t *testing.T) {
	t.Run("Defaults to log", func(t *testing.T) {
		gw, err := NewAccountGW("", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, models.OTPDeliveryLog, gw.(*AccountGW).Channel())
	})

	t.Run("NATS without client", func(t *testing.T) {
		_, err := NewAccountGW(models.OTPDeliveryNATS, nil, nil)
		assert.Error(t, err)
	})

	t.Run("NSQ without producer", func(t *testing.T) {
		_, err := NewAccountGW(models.OTPDeliveryNSQ, nil, nil)
		assert.Error(t, err)
	})

	t.Run("Unknown channel", func(t *testing.T) {
		_, err := NewAccountGW("carrier-pigeon", nil, nil)
		assert.ErrorContains(t, err, "carrier-pigeon")
	})
}

func TestLogGateway_DeliverOTP(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	g := &LogGateway{log: &logger.ZapLogger{Logger: zap.New(core)}}

	require.NoError(t, g.DeliverOTP(context.Background(), testDelivery()))

	entries := logs.FilterMessage("Password reset OTP issued").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "0811", fields["phone"])
	assert.Equal(t, "482913", fields["otp"])
}

func TestNATSGateway_DeliverOTP(t *testing.T) {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	defer s.Shutdown()

	client, err := natspkg.NewClient(s.ClientURL(), "accounts-gateway-test")
	require.NoError(t, err)
	defer client.Close()

	received := make(chan *nats.Msg, 1)
	sub, err := client.Subscribe(constants.SubjectOTPDelivery, func(msg *nats.Msg) {
		received <- msg
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, client.GetConn().Flush())

	gw, err := NewAccountGW(models.OTPDeliveryNATS, client, nil)
	require.NoError(t, err)
	require.NoError(t, gw.DeliverOTP(context.Background(), testDelivery()))

	select {
	case msg := <-received:
		var got models.OTPDelivery
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "0811", got.Phone)
		assert.Equal(t, "482913", got.Code)
		assert.True(t, got.ExpiresAt.Equal(testDelivery().ExpiresAt))
	case <-time.After(2 * time.Second):
		t.Fatal("delivery event not received")
	}
}

func TestNSQGateway_DeliverOTP(t *testing.T) {
	t.Run("Publishes to topic", func(t *testing.T) {
		producer := &fakeNSQ{}
		gw, err := NewAccountGW(models.OTPDeliveryNSQ, nil, producer)
		require.NoError(t, err)

		require.NoError(t, gw.DeliverOTP(context.Background(), testDelivery()))
		assert.Equal(t, constants.TopicOTPDelivery, producer.topic)
		assert.Equal(t, "482913", producer.message.(*models.OTPDelivery).Code)
	})

	t.Run("Producer failure is retried", func(t *testing.T) {
		producer := &fakeNSQ{err: errors.New("nsqd unavailable")}
		err := NewNSQGateway(producer).DeliverOTP(context.Background(), testDelivery())
		assert.ErrorContains(t, err, "failed to queue otp delivery")
		assert.Equal(t, deliveryRetry.MaxRetries+1, producer.calls)
	})
}
