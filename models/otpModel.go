package models

// Request bodies for the OTP-driven verification and password reset flows.
// The OTPs themselves live on the User document.

type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email       string `json:"email" validate:"required,email"`
	RegisterOTP string `json:"registerOtp" validate:"required,len=6"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	ResetOTP string `json:"resetOtp" validate:"required,len=6"`
	Password string `json:"password" validate:"required,min=8"`
}
