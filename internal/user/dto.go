// AngelaMos | 2026
// dto.go

package user

import (
	"github.com/carterperez-dev/dwellingly-api/internal/policy"
	"github.com/carterperez-dev/dwellingly-api/internal/timeutil"
)

type CreateUserRequest struct {
	Email     string `json:"email"     validate:"required,email,max=100"`
	Password  string `json:"password"  validate:"required,min=8,max=128"`
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName"  validate:"required,min=1,max=100"`
	Phone     string `json:"phone"     validate:"required,min=7,max=20"`
	Role      *int16 `json:"role,omitempty" validate:"omitempty,oneof=2 3 4"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty"  validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone,omitempty"     validate:"omitempty,min=7,max=20"`
	Email     *string `json:"email,omitempty"     validate:"omitempty,email,max=100"`
}

type AssignRoleRequest struct {
	Role int16 `json:"role" validate:"required,oneof=2 3 4"`
}

// UserResponse is the contract shape: role is the numeric enum value or
// null, dates go through the shared formatter.
type UserResponse struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Role       policy.NullRole `json:"role"`
	Archived   bool            `json:"archived"`
	LastActive string          `json:"lastActive"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// WidgetResponse feeds the dashboard's "new property managers" card.
type WidgetResponse struct {
	ID      string `json:"id"`
	Stat    string `json:"stat"`
	Desc    string `json:"desc"`
	Subtext string `json:"subtext"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		Archived:   u.Archived,
		LastActive: timeutil.FormatDate(u.LastActive),
		CreatedAt:  timeutil.FormatDate(u.CreatedAt),
		UpdatedAt:  timeutil.FormatDate(u.UpdatedAt),
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}

func ToWidgetResponse(u *User, subtext string) WidgetResponse {
	return WidgetResponse{
		ID:      u.ID,
		Stat:    timeutil.FormatDate(u.CreatedAt),
		Desc:    u.FullName(),
		Subtext: subtext,
	}
}
