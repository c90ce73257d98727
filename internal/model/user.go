package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

type User struct {
	BaseModel
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Role     Role   `db:"role" json:"role"`
	IsActive bool   `db:"is_active" json:"isActive"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
