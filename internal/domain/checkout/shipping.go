package checkout

import (
	"fmt"
	"strings"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

type ShippingForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

func (f ShippingForm) fields() []struct{ name, value string } {
	return []struct{ name, value string }{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"zipCode", f.ZipCode},
	}
}

// ValidateShippingForm returns the required fields that are blank, in form order.
func ValidateShippingForm(form ShippingForm) []string {
	missing := make([]string, 0)
	for _, field := range form.fields() {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("Please fill in all required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == domainErrors.ErrMissingShippingFields
}
