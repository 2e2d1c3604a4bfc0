package models

type PaymentInfo struct {
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCvv    string `json:"cardCvv"`
	CardName   string `json:"cardName"`
	CardType   string `json:"cardType"`
}

type SavePaymentRequest struct {
	PaymentInfo PaymentInfo `json:"paymentInfo"`
}
