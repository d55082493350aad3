// Package payhere implements the PayHere signed-hash handshake. Everything
// here is pure: hashes are computed from inputs only, no state, no I/O.
package payhere

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// StatusSuccess is the gateway status code for a completed payment.
const StatusSuccess = 2

// Config carries the merchant credentials and redirect endpoints used to
// build checkout payloads.
type Config struct {
	MerchantID     string
	MerchantSecret string
	ReturnURL      string
	CancelURL      string
	NotifyURL      string
	Currency       string
	Sandbox        bool
}

// CheckoutRequest is the order-side input for a checkout payload.
type CheckoutRequest struct {
	OrderID       string
	ItemsTitle    string
	AmountCents   int64
	CustomerName  string
	CustomerPhone string
	Email         string
	Address       string
	City          string
	Country       string
}

// Checkout is the outbound handshake posted to the gateway by the client.
// Field names follow the gateway's published wire contract.
type Checkout struct {
	MerchantID string `json:"merchant_id"`
	ReturnURL  string `json:"return_url"`
	CancelURL  string `json:"cancel_url"`
	NotifyURL  string `json:"notify_url"`
	OrderID    string `json:"order_id"`
	Items      string `json:"items"`
	Currency   string `json:"currency"`
	Amount     string `json:"amount"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Hash       string `json:"hash"`
	Sandbox    bool   `json:"sandbox"`
}

// Callback is the inbound server-to-server notification.
type Callback struct {
	MerchantID string `json:"merchant_id"`
	OrderID    string `json:"order_id"`
	PaymentID  string `json:"payment_id"`
	Amount     string `json:"payhere_amount"`
	Currency   string `json:"payhere_currency"`
	StatusCode string `json:"status_code"`
	MD5Sig     string `json:"md5sig"`
}

// FormatAmount renders cents as the fixed two-decimal string the gateway
// hashes against. Any formatting drift breaks signature verification.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// BuildCheckout computes the checkout hash and assembles the payload.
//
//	hash = upper(md5(merchant_id + order_id + amount + currency + upper(md5(secret))))
func BuildCheckout(cfg Config, req CheckoutRequest) Checkout {
	amount := FormatAmount(req.AmountCents)
	hashedSecret := upperMD5(cfg.MerchantSecret)
	hash := upperMD5(cfg.MerchantID + req.OrderID + amount + cfg.Currency + hashedSecret)

	firstName, lastName := splitName(req.CustomerName)

	return Checkout{
		MerchantID: cfg.MerchantID,
		ReturnURL:  cfg.ReturnURL,
		CancelURL:  cfg.CancelURL,
		NotifyURL:  cfg.NotifyURL,
		OrderID:    req.OrderID,
		Items:      req.ItemsTitle,
		Currency:   cfg.Currency,
		Amount:     amount,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      req.Email,
		Phone:      req.CustomerPhone,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		Hash:       hash,
		Sandbox:    cfg.Sandbox,
	}
}

// VerifyCallback recomputes the callback signature and reports whether it
// matches, together with the parsed status code. A callback counts as a
// completed payment only when verified and the status code equals
// StatusSuccess.
func VerifyCallback(cb Callback, merchantSecret string) (verified bool, statusCode int) {
	hashedSecret := upperMD5(merchantSecret)
	local := upperMD5(cb.MerchantID + cb.OrderID + cb.Amount + cb.Currency + cb.StatusCode + hashedSecret)

	verified = subtle.ConstantTimeCompare([]byte(local), []byte(strings.ToUpper(cb.MD5Sig))) == 1
	statusCode, err := strconv.Atoi(strings.TrimSpace(cb.StatusCode))
	if err != nil {
		return verified, 0
	}
	return verified, statusCode
}

// IsSuccess reports whether a verified callback confirms payment.
func IsSuccess(verified bool, statusCode int) bool {
	return verified && statusCode == StatusSuccess
}

func upperMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// splitName splits a full name into the first_name/last_name pair the
// gateway expects. A single token gets "." as last name.
func splitName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", "."
	}
	if len(parts) == 1 {
		return parts[0], "."
	}
	return parts[0], strings.Join(parts[1:], " ")
}
