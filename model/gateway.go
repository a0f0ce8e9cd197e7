package model

type GatewayConfig struct {
	KeyId     string
	KeySecret string
	BaseURL   string
}

type IntentRequest struct {
	Amount  int64  `json:"amount"` // minor currency units
	Receipt string `json:"receipt"`
}

type IntentResponse struct {
	GatewayOrderId string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}
