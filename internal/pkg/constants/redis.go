package constants

// Redis key formats
const (
	KeyPasswordResetOTP = "account:otp:%s" // Format: account:otp:{phone}
)
