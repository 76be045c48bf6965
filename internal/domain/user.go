package domain

type UserRole string

const (
	UserRoleUser    UserRole = "USER"
	UserRoleManager UserRole = "MANAGER"
	UserRoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID            int32    `json:"id"`
	Email         string   `json:"email"`
	PhoneNumber   string   `json:"phone_number"`
	PasswordHash  string   `json:"-"`
	Name          string   `json:"name"`
	Role          UserRole `json:"role"`
	EmailVerified bool     `json:"email_verified"`
	CreatedOn     string   `json:"created_on"`
	UpdatedOn     string   `json:"updated_on"`
}
