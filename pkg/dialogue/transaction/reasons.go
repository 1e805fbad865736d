package transaction

import (
	"fmt"
	"strings"

	"shop-assistant-be/pkg/store"

	"github.com/google/uuid"
)

var cancellationReasons = []string{
	"Found better price elsewhere",
	"Changed my mind",
	"Ordered by mistake",
	"Delivery too long",
	"Other",
}

var returnReasons = []string{
	"Faulty/Defective",
	"Wrong item received",
	"Item not as described",
	"No longer needed",
	"Other",
}

var warrantyReasons = []string{
	"Battery issues",
	"Screen problems",
	"Performance issues",
	"Hardware failure",
	"Software problems",
	"Other",
}

// keyword → canonical reason, checked in order before the
// partial-match pass
var reasonKeywords = []struct {
	keyword string
	reason  string
}{
	{"fault", "Faulty/Defective"},
	{"faulty", "Faulty/Defective"},
	{"defective", "Faulty/Defective"},
	{"broken", "Faulty/Defective"},
	{"not working", "Faulty/Defective"},
	{"damaged", "Faulty/Defective"},
	{"wrong", "Wrong item received"},
	{"incorrect", "Wrong item received"},
	{"different", "Wrong item received"},
	{"not as described", "Item not as described"},
	{"description", "Item not as described"},
	{"changed mind", "No longer needed"},
	{"dont need", "No longer needed"},
	{"no need", "No longer needed"},
	{"other", "Other"},
}

// Reasons lists the canonical reasons offered for a transaction type.
func Reasons(t store.TransactionType) []string {
	switch t {
	case store.TransactionCancellation:
		return cancellationReasons
	case store.TransactionReturn:
		return returnReasons
	case store.TransactionWarranty:
		return warrantyReasons
	}
	return nil
}

// MapReason maps a free-text answer onto a canonical reason for the
// transaction type. Keyword hits win, then a word-level partial match
// against the canonical list, then "Other".
func MapReason(userReason string, t store.TransactionType) string {
	valid := Reasons(t)
	lowered := strings.ToLower(strings.TrimSpace(userReason))

	for _, m := range reasonKeywords {
		if strings.Contains(lowered, m.keyword) {
			for _, v := range valid {
				if v == m.reason {
					return m.reason
				}
			}
		}
	}

	for _, v := range valid {
		for _, word := range strings.Fields(strings.ToLower(v)) {
			if strings.Contains(lowered, word) {
				return v
			}
		}
	}

	return "Other"
}

// NewID mints a transaction reference: CXL- for cancellations, REF-
// for returns, WAR- for warranty claims, followed by the first eight
// characters of a UUID, uppercased.
func NewID(t store.TransactionType) string {
	var prefix string
	switch t {
	case store.TransactionCancellation:
		prefix = "CXL"
	case store.TransactionReturn:
		prefix = "REF"
	case store.TransactionWarranty:
		prefix = "WAR"
	default:
		prefix = "TXN"
	}
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}
