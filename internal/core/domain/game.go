package domain

import "time"

// Game is the core aggregate: a described party activity owned by exactly
// one user, classified by one intensity and zero or more shared tags.
type Game struct {
	ID          string     `json:"id,omitempty"`
	User        User       `json:"user"`
	Intensity   Intensity  `json:"intensity"`
	Name        string     `json:"name"`
	Groups      bool       `json:"groups"`
	Duration    int        `json:"duration"`
	Explanation string     `json:"explanation"`
	Tags        []Tag      `json:"tags"`
	Medias      []Media    `json:"medias,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// NewGame validates the candidate fields and constructs a Game. User,
// intensity and tags must already be resolved entities; duration is in
// minutes and must be positive.
func NewGame(id string, user *User, intensity *Intensity, name string, groups bool, duration int, explanation string, tags []Tag, medias []Media) (*Game, error) {
	if user == nil {
		return nil, Required("User")
	}
	if intensity == nil {
		return nil, Required("Intensity")
	}
	if name == "" {
		return nil, Required("Name")
	}
	if duration <= 0 {
		return nil, Required("Duration")
	}
	if explanation == "" {
		return nil, Required("Explanation")
	}
	if tags == nil {
		return nil, Required("Tags")
	}
	if medias == nil {
		medias = []Media{}
	}

	return &Game{
		ID:          id,
		User:        *user,
		Intensity:   *intensity,
		Name:        name,
		Groups:      groups,
		Duration:    duration,
		Explanation: explanation,
		Tags:        tags,
		Medias:      medias,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Equals compares two games structurally. Tag and media associations are
// compared positionally, so identical sets in a different order are
// unequal.
func (g *Game) Equals(other *Game) bool {
	if other == nil {
		return false
	}
	if !g.User.Equals(&other.User) ||
		!g.Intensity.Equals(&other.Intensity) ||
		g.Name != other.Name ||
		g.Groups != other.Groups ||
		g.Duration != other.Duration ||
		g.Explanation != other.Explanation {
		return false
	}
	if len(g.Tags) != len(other.Tags) || len(g.Medias) != len(other.Medias) {
		return false
	}
	for i := range g.Tags {
		if !g.Tags[i].Equals(&other.Tags[i]) {
			return false
		}
	}
	for i := range g.Medias {
		if !g.Medias[i].Equals(&other.Medias[i]) {
			return false
		}
	}
	return g.CreatedAt.Equal(other.CreatedAt) && equalTimePtr(g.UpdatedAt, other.UpdatedAt)
}
