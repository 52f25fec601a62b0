package order

import (
	"time"

	"atelier/internal/ledger"
)

// Ledger record builders. Field names match the columns the sheet endpoint
// expects; optional fields collapse to "N/A" rather than being omitted.

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// CustomerEntryRecord marks a customer announcing themselves on the home page.
func CustomerEntryRecord(name string, at time.Time) ledger.Record {
	return ledger.Stamp(ledger.Record{
		"customer_name": name,
		"page":          "homepage",
	}, ledger.EventCustomerEntry, at)
}

// NavigationRecord marks a customer browsing into a catalog section.
func NavigationRecord(name, action string, at time.Time) ledger.Record {
	return ledger.Stamp(ledger.Record{
		"customer_name": name,
		"action":        action,
		"page":          "homepage",
	}, ledger.EventNavigation, at)
}

func paymentSuccessRecord(d Draft, at time.Time) ledger.Record {
	return ledger.Stamp(ledger.Record{
		"customer_name":     d.Customer.Name,
		"customer_email":    d.Customer.Email,
		"customer_phone":    d.Customer.Phone,
		"customer_location": d.Customer.Location,
		"item_name":         d.Item.Name,
		"item_design":       d.Item.Image,
		"sleeve_type":       orNA(d.Sleeve),
		"product_type":      string(d.Item.ProductType),
		"amount":            d.Amount,
		"reference":         d.PaymentReference,
	}, ledger.EventPaymentSuccess, at)
}

func orderCompleteRecord(d Draft, m Measurements, at time.Time) ledger.Record {
	return ledger.Stamp(ledger.Record{
		"reference": d.PaymentReference,

		"customer_name":     d.Customer.Name,
		"customer_email":    d.Customer.Email,
		"customer_phone":    d.Customer.Phone,
		"customer_location": d.Customer.Location,

		"item_name":    d.Item.Name,
		"item_design":  d.Item.Image,
		"sleeve_type":  orNA(d.Sleeve),
		"product_type": string(d.Item.ProductType),
		"amount_paid":  d.Amount,

		"shirt_measurement":    m.Shirt,
		"trouser_measurement":  m.Trouser,
		"hand_measurement":     m.Hand,
		"neck_measurement":     m.Neck,
		"shoulder_measurement": m.Shoulder,
		"fabric_color":         m.FabricColor,
		"special_description":  orNA(m.Description),

		"payment_status": "success",
		"order_status":   "measurements_completed",
	}, ledger.EventOrderComplete, at)
}
