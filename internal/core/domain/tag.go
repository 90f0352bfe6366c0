package domain

import "time"

// Tag is a free-text label used for filtering games. Tags are unique by
// label and created lazily when a game first references them. No casing
// or whitespace normalisation is applied.
type Tag struct {
	ID        string     `json:"id,omitempty"`
	Tag       string     `json:"tag"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewTag validates the candidate fields and constructs a Tag.
func NewTag(id, label string) (*Tag, error) {
	if label == "" {
		return nil, Required("Tag")
	}
	return &Tag{
		ID:        id,
		Tag:       label,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Equals compares two tags structurally.
func (t *Tag) Equals(other *Tag) bool {
	if other == nil {
		return false
	}
	return t.Tag == other.Tag &&
		t.CreatedAt.Equal(other.CreatedAt) &&
		equalTimePtr(t.UpdatedAt, other.UpdatedAt)
}
