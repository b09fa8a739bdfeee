package models

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Mobile       string    `json:"mobile,omitempty"`
	Addresses    []Address `json:"addresses"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DefaultAddressID returns the default address id, falling back to the
// first address, or "" when the user has none.
func (u *User) DefaultAddressID() string {
	if u == nil {
		return ""
	}
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a.ID
		}
	}
	if len(u.Addresses) > 0 {
		return u.Addresses[0].ID
	}
	return ""
}

type Address struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // Home | Work
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"isDefault"`
}
