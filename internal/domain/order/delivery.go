package order

import (
	"regexp"
	"strings"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
)

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// DeliveryInfo is the shipping form submitted at checkout
type DeliveryInfo struct {
	Address string
	Phone   string
	Notes   string
}

// Validate checks the address is present and the phone is 9 to 15 digits
// with an optional leading "+".
func (d DeliveryInfo) Validate() error {
	verr := shared.NewValidationError("", "Please correct the delivery details")
	if strings.TrimSpace(d.Address) == "" {
		verr.AddField("address", "Delivery address is required")
	}
	if !ValidPhone(d.Phone) {
		verr.AddField("phone", "Phone number must be 9 to 15 digits, optionally starting with +")
	}
	if len(d.Notes) > 2000 {
		verr.AddField("notes", "Notes cannot exceed 2000 characters")
	}
	if !verr.HasErrors() {
		return nil
	}
	if len(verr.Fields) == 1 {
		if _, ok := verr.Fields["phone"]; ok {
			verr.Code = "INVALID_PHONE"
		}
	}
	return verr
}

// ValidPhone reports whether phone matches the accepted format
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}
