package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/saloncartapp/saloncart/internal/models"
	"github.com/saloncartapp/saloncart/internal/payhere"
)

// WhatsAppSender messages the salon's contact number about a new paid order
// through the Twilio WhatsApp channel.
type WhatsAppSender struct {
	client *twilio.RestClient
	from   string
	// defaultCountryCode is prepended to local numbers entered without one.
	defaultCountryCode string
}

func NewWhatsAppSender(accountSID, authToken, from string) *WhatsAppSender {
	return &WhatsAppSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from:               from,
		defaultCountryCode: "+94",
	}
}

func (w *WhatsAppSender) Name() string { return "whatsapp" }

func (w *WhatsAppSender) Notify(ctx context.Context, order *models.Order, salon *models.Salon) error {
	_ = ctx // the twilio client manages its own request deadline

	if !salon.HasContactNumber() {
		return fmt.Errorf("salon %s has no contact number", salon.ID)
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(w.from)
	params.SetTo(w.formatRecipient(salon.ContactNumber))
	params.SetBody(w.messageBody(order))

	if _, err := w.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	return nil
}

func (w *WhatsAppSender) formatRecipient(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	if !strings.HasPrefix(phone, "+") {
		phone = w.defaultCountryCode + strings.TrimLeft(phone, "0")
	}
	return "whatsapp:" + phone
}

func (w *WhatsAppSender) messageBody(order *models.Order) string {
	var b strings.Builder
	b.WriteString("*New Order Received!*\n")
	fmt.Fprintf(&b, "*Order:* #%s\n", order.MerchantOrderID)
	fmt.Fprintf(&b, "*Customer:* %s\n", order.CustomerName)
	fmt.Fprintf(&b, "*Phone:* %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "*Address:* %s, %s\n", order.Address, order.City)
	fmt.Fprintf(&b, "*Total:* Rs.%s\n", payhere.FormatAmount(order.TotalCents))
	b.WriteString("*Items:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (x%d)\n", item.ProductName, item.Quantity)
	}
	b.WriteString("\nPlease check your dashboard for details.")
	return b.String()
}
