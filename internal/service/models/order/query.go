package order

import "time"

// ListOrdersModel represents filter parameters for the privileged listing.
// A nil field means no constraint on that dimension.
type ListOrdersModel struct {
	Status    *Status    `json:"status,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}
