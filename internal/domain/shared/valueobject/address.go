package valueobject

import (
	"fmt"
	"strings"
)

// Address is a value object representing a shipping address.
// It is immutable: construct it through NewAddress and treat it as a value.
// Orders embed a copy of the address at creation time, never a reference.
type Address struct {
	Street string `gorm:"column:street;type:varchar(500)" json:"street"`
	City   string `gorm:"column:city;type:varchar(100)" json:"city"`
	State  string `gorm:"column:state;type:varchar(100)" json:"state"`
}

// NewAddress creates a new Address. Street, city and state are all required.
func NewAddress(street, city, state string) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)

	if err := validateComponent("street", street, 500); err != nil {
		return Address{}, err
	}
	if err := validateComponent("city", city, 100); err != nil {
		return Address{}, err
	}
	if err := validateComponent("state", state, 100); err != nil {
		return Address{}, err
	}

	return Address{Street: street, City: city, State: state}, nil
}

// MustNewAddress creates a new Address, panics on error. Test helper.
func MustNewAddress(street, city, state string) Address {
	addr, err := NewAddress(street, city, state)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address
func EmptyAddress() Address {
	return Address{}
}

// IsEmpty returns true if all fields are blank
func (a Address) IsEmpty() bool {
	return a.Street == "" && a.City == "" && a.State == ""
}

// IsComplete returns true if every required field is present
func (a Address) IsComplete() bool {
	return a.Street != "" && a.City != "" && a.State != ""
}

// String returns the formatted single-line address
func (a Address) String() string {
	if a.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.City, a.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

func validateComponent(name, value string, maxLen int) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if len(value) > maxLen {
		return fmt.Errorf("%s cannot exceed %d characters", name, maxLen)
	}
	return nil
}
