// Package dto はstoreフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "time"

// PlaceOrderReq は POST /store/orders のリクエストボディを表します。
type PlaceOrderReq struct {
	PetID    uint      `json:"petId"`
	Quantity int       `json:"quantity"`
	ShipDate time.Time `json:"shipDate"`
}

// UpdateOrderStatusReq は PUT /store/orders/:id のリクエストボディを表します。
type UpdateOrderStatusReq struct {
	Status string `json:"status"`
}
