package handler

import (
	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
)

// --- Request → service input ---

func toGameInput(req gameRequest) ports.GameInput {
	in := ports.GameInput{
		UserID:      req.User.ID,
		IntensityID: req.Intensity.ID,
		Name:        req.Name,
		Duration:    req.Duration,
		Explanation: req.Explanation,
		Tags:        req.Tags,
	}
	if req.Groups != nil {
		in.Groups = *req.Groups
	}
	for _, m := range req.Medias {
		in.Medias = append(in.Medias, ports.MediaInput{Name: m.Name, File: m.File, Filetype: m.Filetype})
	}
	return in
}

func toFilterInput(req filterRequest) ports.FilterInput {
	return ports.FilterInput{
		Tags:        req.Tags,
		IntensityID: req.IntensityID,
		Groups:      req.Groups,
		Duration:    req.Duration,
	}
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt,
	}
}

func toPublicUserResponse(u domain.PublicUser) publicUserResponse {
	return publicUserResponse{ID: u.ID, Email: u.Email, Username: u.Username}
}

func toIntensityResponse(i *domain.Intensity) intensityResponse {
	return intensityResponse{ID: i.ID, Intensity: i.Intensity, Order: i.Order}
}

func toTagResponse(t *domain.Tag) tagResponse {
	return tagResponse{ID: t.ID, Tag: t.Tag}
}

func toGameResponse(g *domain.Game) gameResponse {
	tags := make([]tagResponse, len(g.Tags))
	for i := range g.Tags {
		tags[i] = toTagResponse(&g.Tags[i])
	}
	medias := make([]mediaResponse, len(g.Medias))
	for i, m := range g.Medias {
		medias[i] = mediaResponse{Name: m.Name, File: m.File, Filetype: m.Filetype}
	}
	return gameResponse{
		ID: g.ID,
		User: userSummaryResponse{
			ID:       g.User.ID,
			Username: g.User.Username,
			Email:    g.User.Email,
		},
		Intensity:   toIntensityResponse(&g.Intensity),
		Name:        g.Name,
		Groups:      g.Groups,
		Duration:    g.Duration,
		Explanation: g.Explanation,
		Tags:        tags,
		Medias:      medias,
		CreatedAt:   g.CreatedAt.UTC(),
		UpdatedAt:   g.UpdatedAt,
	}
}

func toGameListResponse(games []domain.Game) []gameResponse {
	out := make([]gameResponse, len(games))
	for i := range games {
		out[i] = toGameResponse(&games[i])
	}
	return out
}
