package nlu

import (
	"regexp"
	"strings"

	"shop-assistant-be/internal/constant"
)

var orderIDPattern = regexp.MustCompile(`(?i)ORD[_-]?\d+`)

// ExtractOrderID pulls the first order id out of a message and returns
// it in canonical ORD-<digits> form, or "" when none is present.
func ExtractOrderID(message string) string {
	match := orderIDPattern.FindString(message)
	if match == "" {
		return ""
	}
	return NormalizeOrderID(match)
}

// NormalizeOrderID uppercases and canonicalizes the separator so
// "ord_1001" and "ORD1001" both become "ORD-1001".
func NormalizeOrderID(raw string) string {
	id := strings.ToUpper(raw)
	id = strings.ReplaceAll(id, "_", "-")
	if !strings.HasPrefix(id, "ORD-") {
		id = strings.Replace(id, "ORD", "ORD-", 1)
	}
	return id
}

// DetectBrand returns the first known brand mentioned in the message.
func DetectBrand(message string) string {
	lowered := strings.ToLower(message)
	for _, brand := range constant.KnownBrands {
		if strings.Contains(lowered, brand) {
			return brand
		}
	}
	return ""
}

// ResolveLocally runs the deterministic rules that sit in front of the
// model: an order id means order_status, a known brand means
// product_inquiry. Returns nil when no rule fires and the model has to
// decide.
func ResolveLocally(message string) *Resolution {
	if orderID := ExtractOrderID(message); orderID != "" {
		return &Resolution{
			Intent:   constant.IntentOrderStatus,
			Entities: map[string]string{"order_id": orderID},
			Source:   "rules",
		}
	}

	if brand := DetectBrand(message); brand != "" {
		return &Resolution{
			Intent:   constant.IntentProductInquiry,
			Entities: map[string]string{"brand": brand},
			Source:   "rules",
		}
	}

	return nil
}
