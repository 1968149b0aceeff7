package checkout

import (
	"regexp"
	"strings"

	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

var (
	phoneRe  = regexp.MustCompile(`^[0-9]{10}$`)
	postalRe = regexp.MustCompile(`^[0-9]{5}$`)
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// normalizePhone strips the separators people type into Thai phone numbers.
func normalizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}

// validateInput checks every shipping field and reports all failures at once
// so the client can render them inline.
func validateInput(input Input) error {
	fields := map[string]string{}

	if strings.TrimSpace(input.CustomerName) == "" {
		fields["customer_name"] = "name is required"
	}

	phone := normalizePhone(input.CustomerPhone)
	if phone == "" {
		fields["customer_phone"] = "phone is required"
	} else if !phoneRe.MatchString(phone) {
		fields["customer_phone"] = "phone must be 10 digits"
	}

	email := strings.TrimSpace(input.CustomerEmail)
	if email == "" {
		fields["customer_email"] = "email is required"
	} else if !emailRe.MatchString(email) {
		fields["customer_email"] = "email is invalid"
	}

	if strings.TrimSpace(input.Shipping.Line1) == "" {
		fields["shipping.line1"] = "address is required"
	}
	if strings.TrimSpace(input.Shipping.Subdistrict) == "" {
		fields["shipping.subdistrict"] = "subdistrict is required"
	}
	if strings.TrimSpace(input.Shipping.District) == "" {
		fields["shipping.district"] = "district is required"
	}
	if strings.TrimSpace(input.Shipping.Province) == "" {
		fields["shipping.province"] = "province is required"
	}

	postal := strings.TrimSpace(input.Shipping.PostalCode)
	if postal == "" {
		fields["shipping.postal_code"] = "postal code is required"
	} else if !postalRe.MatchString(postal) {
		fields["shipping.postal_code"] = "postal code must be 5 digits"
	}

	if !input.PaymentMethod.IsValid() {
		fields["payment_method"] = "payment method is invalid"
	}

	if len(fields) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "checkout validation failed").WithDetails(map[string]any{
		"fields": fields,
	})
}
