package constants

// NATS Subjects
const (
	SubjectOTPDelivery = "account.otp.delivery"
)

// NSQ Topics
const (
	TopicOTPDelivery = "account_otp_delivery"
)

// Echo context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)
