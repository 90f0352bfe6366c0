package domain

import "time"

// Intensity is one level of the ordered exertion taxonomy (calm through
// extreme). The order value is a display and sort key only.
type Intensity struct {
	ID        string     `json:"id,omitempty"`
	Intensity string     `json:"intensity"`
	Order     int        `json:"order"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewIntensity validates the candidate fields and constructs an Intensity.
func NewIntensity(id, label string, order int) (*Intensity, error) {
	if label == "" {
		return nil, Required("Intensity")
	}
	if order == 0 {
		return nil, Required("Order")
	}
	return &Intensity{
		ID:        id,
		Intensity: label,
		Order:     order,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Equals compares two intensities structurally.
func (i *Intensity) Equals(other *Intensity) bool {
	if other == nil {
		return false
	}
	return i.Intensity == other.Intensity &&
		i.Order == other.Order &&
		i.CreatedAt.Equal(other.CreatedAt) &&
		equalTimePtr(i.UpdatedAt, other.UpdatedAt)
}
