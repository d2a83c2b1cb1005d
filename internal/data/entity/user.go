package entity

type User struct {
	Base
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	IsActive     bool   `db:"is_active"`
	Roles        Roles  `db:"roles"`
}
