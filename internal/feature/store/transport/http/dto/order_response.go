package dto

import (
	"time"

	"petstore_backend/internal/feature/store/domain/entity"
)

// MessageRes is a generic message response.
type MessageRes struct {
	Message string `json:"message"`
}

// OrderRes is the JSON shape of an order.
type OrderRes struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	PetID     uint      `json:"petId"`
	Quantity  int       `json:"quantity"`
	ShipDate  time.Time `json:"shipDate"`
	Status    string    `json:"status"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewOrderRes converts an order entity into its response shape.
func NewOrderRes(o *entity.Order) OrderRes {
	return OrderRes{
		ID:        o.ID,
		UserID:    o.UserID,
		PetID:     o.PetID,
		Quantity:  o.Quantity,
		ShipDate:  o.ShipDate,
		Status:    string(o.Status),
		Complete:  o.Complete,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// NewOrderResList converts a slice of order entities.
func NewOrderResList(orders []entity.Order) []OrderRes {
	out := make([]OrderRes, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderRes(&orders[i]))
	}
	return out
}
