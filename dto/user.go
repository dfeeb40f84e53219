package dto

type TokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh"`
}

type TwoFactorSetupResponse struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauth_url"`
}
