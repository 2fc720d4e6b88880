package apiclient

import (
	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
)

// backendUser is the user record as the auth service sends it.
type backendUser struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Phone        string   `json:"phone"`
	AvatarURL    *string  `json:"avatar_url"`
	Status       string   `json:"status"`
	Role         string   `json:"role"`
	IsSuperAdmin bool     `json:"is_super_admin"`
	Permissions  []string `json:"permissions"`
	CreatedAt    string   `json:"created_at"`
}

// toIdentity normalizes the record: guest role fallback and a permission set.
func (u backendUser) toIdentity() domainauth.Identity {
	id := domainauth.Identity{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         domainauth.NormalizeRole(u.Role),
		IsSuperAdmin: u.IsSuperAdmin,
		Permissions:  domainauth.NewPermissionSet(u.Permissions...),
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		Phone:        u.Phone,
	}
	if u.AvatarURL != nil {
		id.AvatarURL = *u.AvatarURL
	}
	return id
}
