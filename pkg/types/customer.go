package types

import "strings"

// CustomerInfo is the contact block collected during checkout.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// IsZero reports whether no customer fields were collected.
func (c CustomerInfo) IsZero() bool {
	return strings.TrimSpace(c.Name) == "" && strings.TrimSpace(c.Email) == ""
}

// AsAddress derives a fallback shipping address when the customer never
// provided a separate one.
func (c CustomerInfo) AsAddress() Address {
	phone := c.Phone
	return Address{
		FullName: c.Name,
		Phone:    &phone,
	}
}
