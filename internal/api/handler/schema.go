package handler

import "time"

// messageResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth / user requests ---

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=superadmin admin guest"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Game requests ---
//
// Game bodies are deliberately bound without schema validation: the
// domain constructors own the field rules and their exact messages
// ("Name is required.", "User id is required.", ...), and those are part
// of the API contract.

type gameUserRequest struct {
	ID string `json:"id"`
}

type gameIntensityRequest struct {
	ID string `json:"id"`
}

type mediaRequest struct {
	Name     string `json:"name"`
	File     string `json:"file"`
	Filetype string `json:"filetype"`
}

type gameRequest struct {
	User        gameUserRequest      `json:"user"`
	Intensity   gameIntensityRequest `json:"intensity"`
	Name        string               `json:"name"`
	Groups      *bool                `json:"groups"`
	Duration    int                  `json:"duration"`
	Explanation string               `json:"explanation"`
	Tags        []string             `json:"tags"`
	Medias      []mediaRequest       `json:"medias"`
}

// filterRequest carries the optional filter dimensions. Absent fields
// stay nil/empty and are excluded from the query entirely.
type filterRequest struct {
	Tags        []string `json:"tags"`
	IntensityID string   `json:"intensityId"`
	Groups      *bool    `json:"groups"`
	Duration    *int     `json:"duration"`
}

// --- Responses ---

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type userResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// publicUserResponse is the reduced projection served to non-privileged
// viewers.
type publicUserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type userSummaryResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type intensityResponse struct {
	ID        string `json:"id"`
	Intensity string `json:"intensity"`
	Order     int    `json:"order"`
}

type tagResponse struct {
	ID  string `json:"id"`
	Tag string `json:"tag"`
}

type mediaResponse struct {
	Name     string `json:"name"`
	File     string `json:"file"`
	Filetype string `json:"filetype"`
}

type gameResponse struct {
	ID          string              `json:"id"`
	User        userSummaryResponse `json:"user"`
	Intensity   intensityResponse   `json:"intensity"`
	Name        string              `json:"name"`
	Groups      bool                `json:"groups"`
	Duration    int                 `json:"duration"`
	Explanation string              `json:"explanation"`
	Tags        []tagResponse       `json:"tags"`
	Medias      []mediaResponse     `json:"medias"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   *time.Time          `json:"updatedAt,omitempty"`
}
