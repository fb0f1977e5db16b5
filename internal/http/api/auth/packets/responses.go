package packets

// RESPONSES FOR /api/admin/auth/*

type TokenResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
