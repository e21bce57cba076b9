package enums

import "fmt"

// ScooterStatus describes the operational state of a single unit.
type ScooterStatus string

const (
	ScooterStatusAvailable   ScooterStatus = "AVAILABLE"
	ScooterStatusRented      ScooterStatus = "RENTED"
	ScooterStatusMaintenance ScooterStatus = "MAINTENANCE"
)

var validScooterStatuses = []ScooterStatus{
	ScooterStatusAvailable,
	ScooterStatusRented,
	ScooterStatusMaintenance,
}

// BookableScooterStatuses are the statuses a unit may hold and still be
// considered when resolving a booking request. RENTED units stay bookable
// for non-overlapping date ranges.
var BookableScooterStatuses = []ScooterStatus{
	ScooterStatusAvailable,
	ScooterStatusRented,
}

// String implements fmt.Stringer.
func (s ScooterStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ScooterStatus.
func (s ScooterStatus) IsValid() bool {
	for _, candidate := range validScooterStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScooterStatus converts raw input into a ScooterStatus.
func ParseScooterStatus(value string) (ScooterStatus, error) {
	for _, candidate := range validScooterStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid scooter status %q", value)
}
