package models

import "testing"

func TestOrderStatusIsKnown(t *testing.T) {
	t.Parallel()

	known := []OrderStatus{
		StatusDraft, StatusPendingPayment, StatusPaid, StatusProcessing,
		StatusShipped, StatusCompleted, StatusCancelled, StatusReturned,
		StatusPaymentFailed,
	}
	for _, status := range known {
		if !status.IsKnown() {
			t.Fatalf("status %q must be known", status)
		}
	}

	for _, status := range []OrderStatus{"", "PAID", "Delivered", "refunded"} {
		if status.IsKnown() {
			t.Fatalf("status %q must not be known", status)
		}
	}
}

func TestItemsSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []OrderItem
		want  string
	}{
		{name: "empty", items: nil, want: ""},
		{
			name:  "single item",
			items: []OrderItem{{ProductName: "Shampoo", Quantity: 2}},
			want:  "Shampoo (x2)",
		},
		{
			name: "multiple items",
			items: []OrderItem{
				{ProductName: "Shampoo", Quantity: 2},
				{ProductName: "Keratin Mask", Quantity: 1},
			},
			want: "Shampoo (x2), Keratin Mask (x1)",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			order := &Order{Items: tc.items}
			if got := order.ItemsSummary(); got != tc.want {
				t.Fatalf("unexpected summary: got=%q want=%q", got, tc.want)
			}
		})
	}
}
