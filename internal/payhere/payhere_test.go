package payhere

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "whole rupees", cents: 20000, want: "200.00"},
		{name: "with cents", cents: 123456, want: "1234.56"},
		{name: "single cent", cents: 1, want: "0.01"},
		{name: "zero", cents: 0, want: "0.00"},
		{name: "under one rupee", cents: 99, want: "0.99"},
		{name: "negative", cents: -250, want: "-2.50"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatAmount(tc.cents); got != tc.want {
				t.Fatalf("unexpected amount: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestBuildCheckoutHash(t *testing.T) {
	t.Parallel()

	cfg := Config{
		MerchantID:     "1211149",
		MerchantSecret: "supersecret",
		Currency:       "LKR",
		ReturnURL:      "https://shop.example/payment/return",
		CancelURL:      "https://shop.example/payment/cancel",
		NotifyURL:      "https://api.example/api/orders/notify",
		Sandbox:        true,
	}
	checkout := BuildCheckout(cfg, CheckoutRequest{
		OrderID:      "42",
		ItemsTitle:   "Salon Order",
		AmountCents:  20000,
		CustomerName: "Nimal Perera",
	})

	if checkout.Amount != "200.00" {
		t.Fatalf("unexpected amount: got=%q", checkout.Amount)
	}

	// Recompute the documented formula independently.
	innerSum := md5.Sum([]byte("supersecret"))
	inner := strings.ToUpper(hex.EncodeToString(innerSum[:]))
	outerSum := md5.Sum([]byte("1211149" + "42" + "200.00" + "LKR" + inner))
	want := strings.ToUpper(hex.EncodeToString(outerSum[:]))

	if checkout.Hash != want {
		t.Fatalf("unexpected hash: got=%q want=%q", checkout.Hash, want)
	}
	if checkout.FirstName != "Nimal" || checkout.LastName != "Perera" {
		t.Fatalf("unexpected name split: got=%q/%q", checkout.FirstName, checkout.LastName)
	}
	if !checkout.Sandbox {
		t.Fatal("expected sandbox flag to carry over")
	}
}

func TestBuildCheckoutDeterministic(t *testing.T) {
	t.Parallel()

	cfg := Config{MerchantID: "m1", MerchantSecret: "s1", Currency: "LKR"}
	req := CheckoutRequest{OrderID: "7", AmountCents: 150050}

	first := BuildCheckout(cfg, req)
	second := BuildCheckout(cfg, req)
	if first.Hash != second.Hash {
		t.Fatalf("hash is not deterministic: %q vs %q", first.Hash, second.Hash)
	}
}

func TestSplitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		full      string
		wantFirst string
		wantLast  string
	}{
		{name: "two tokens", full: "Nimal Perera", wantFirst: "Nimal", wantLast: "Perera"},
		{name: "three tokens", full: "A B C", wantFirst: "A", wantLast: "B C"},
		{name: "single token", full: "Nimal", wantFirst: "Nimal", wantLast: "."},
		{name: "empty", full: "", wantFirst: "", wantLast: "."},
		{name: "spaces only", full: "   ", wantFirst: "", wantLast: "."},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			first, last := splitName(tc.full)
			if first != tc.wantFirst || last != tc.wantLast {
				t.Fatalf("unexpected split: got=%q/%q want=%q/%q", first, last, tc.wantFirst, tc.wantLast)
			}
		})
	}
}

// signedCallback builds a callback whose md5sig is valid for the secret.
func signedCallback(merchantID, orderID, amount, currency, statusCode, secret string) Callback {
	innerSum := md5.Sum([]byte(secret))
	inner := strings.ToUpper(hex.EncodeToString(innerSum[:]))
	outerSum := md5.Sum([]byte(merchantID + orderID + amount + currency + statusCode + inner))
	return Callback{
		MerchantID: merchantID,
		OrderID:    orderID,
		Amount:     amount,
		Currency:   currency,
		StatusCode: statusCode,
		MD5Sig:     strings.ToUpper(hex.EncodeToString(outerSum[:])),
	}
}

func TestVerifyCallback(t *testing.T) {
	t.Parallel()

	const secret = "merchant-secret"
	valid := signedCallback("1211149", "42", "200.00", "LKR", "2", secret)

	t.Run("valid success callback", func(t *testing.T) {
		t.Parallel()
		verified, statusCode := VerifyCallback(valid, secret)
		if !verified {
			t.Fatal("expected callback to verify")
		}
		if statusCode != StatusSuccess {
			t.Fatalf("unexpected status code: got=%d", statusCode)
		}
		if !IsSuccess(verified, statusCode) {
			t.Fatal("expected IsSuccess")
		}
	})

	t.Run("lowercase signature accepted", func(t *testing.T) {
		t.Parallel()
		cb := valid
		cb.MD5Sig = strings.ToLower(cb.MD5Sig)
		if verified, _ := VerifyCallback(cb, secret); !verified {
			t.Fatal("expected case-insensitive signature to verify")
		}
	})

	t.Run("tampered amount rejected", func(t *testing.T) {
		t.Parallel()
		cb := valid
		cb.Amount = "900.00"
		if verified, _ := VerifyCallback(cb, secret); verified {
			t.Fatal("expected tampered callback to fail verification")
		}
	})

	t.Run("flipped signature character rejected", func(t *testing.T) {
		t.Parallel()
		cb := valid
		sig := []byte(cb.MD5Sig)
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		cb.MD5Sig = string(sig)
		if verified, _ := VerifyCallback(cb, secret); verified {
			t.Fatal("expected altered signature to fail verification")
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		t.Parallel()
		if verified, _ := VerifyCallback(valid, "other-secret"); verified {
			t.Fatal("expected wrong secret to fail verification")
		}
	})

	t.Run("non-success status verifies but is not success", func(t *testing.T) {
		t.Parallel()
		cb := signedCallback("1211149", "42", "200.00", "LKR", "-2", secret)
		verified, statusCode := VerifyCallback(cb, secret)
		if !verified {
			t.Fatal("expected callback to verify")
		}
		if statusCode != -2 {
			t.Fatalf("unexpected status code: got=%d", statusCode)
		}
		if IsSuccess(verified, statusCode) {
			t.Fatal("status -2 must not count as success")
		}
	})

	t.Run("unparseable status code", func(t *testing.T) {
		t.Parallel()
		cb := valid
		cb.StatusCode = "abc"
		cb.MD5Sig = "" // signature no longer matters here
		verified, statusCode := VerifyCallback(cb, secret)
		if verified {
			t.Fatal("expected verification failure")
		}
		if statusCode != 0 {
			t.Fatalf("unexpected status code: got=%d", statusCode)
		}
	})
}
