package dto

import (
	"time"

	"petstore_backend/internal/feature/account/domain/entity"
)

// MessageRes is a generic message response.
type MessageRes struct {
	Message string `json:"message"`
}

// AddressRes is the JSON shape of a shipping address.
type AddressRes struct {
	ID     uint   `json:"id"`
	Unit   string `json:"unit"`
	Road   string `json:"road"`
	City   string `json:"city"`
	UserID uint   `json:"userId"`
}

// UserRes is the JSON shape of a user. The password hash is never exposed.
type UserRes struct {
	ID        uint         `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Age       int          `json:"age"`
	Phone     string       `json:"phone"`
	Role      string       `json:"role"`
	Email     string       `json:"email"`
	Addresses []AddressRes `json:"addresses"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// AuthRes is returned on registration and login: the user plus a fresh
// token pair.
type AuthRes struct {
	UserRes
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// NewUserRes converts a user entity into its response shape.
func NewUserRes(u *entity.User) UserRes {
	addresses := make([]AddressRes, 0, len(u.Addresses))
	for _, a := range u.Addresses {
		addresses = append(addresses, AddressRes{
			ID:     a.ID,
			Unit:   a.Unit,
			Road:   a.Road,
			City:   a.City,
			UserID: a.UserID,
		})
	}
	return UserRes{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
		Phone:     u.Phone,
		Role:      u.Role,
		Email:     u.Email,
		Addresses: addresses,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserResList converts a slice of user entities.
func NewUserResList(users []entity.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for i := range users {
		out = append(out, NewUserRes(&users[i]))
	}
	return out
}
