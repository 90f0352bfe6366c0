package domain

import "time"

// Media is an optional file attachment on a game.
type Media struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	File      string     `json:"file"`
	Filetype  string     `json:"filetype"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewMedia validates the candidate fields and constructs a Media.
func NewMedia(id, name, file, filetype string) (*Media, error) {
	if name == "" {
		return nil, Required("Name")
	}
	if file == "" {
		return nil, Required("File")
	}
	if filetype == "" {
		return nil, Required("Filetype")
	}
	return &Media{
		ID:        id,
		Name:      name,
		File:      file,
		Filetype:  filetype,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Equals compares two media attachments structurally.
func (m *Media) Equals(other *Media) bool {
	if other == nil {
		return false
	}
	return m.Name == other.Name &&
		m.File == other.File &&
		m.Filetype == other.Filetype &&
		m.CreatedAt.Equal(other.CreatedAt) &&
		equalTimePtr(m.UpdatedAt, other.UpdatedAt)
}
