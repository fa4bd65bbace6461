package dto

// UpdateUserReq は部分更新のリクエストボディを表します。
// 省略されたフィールド（nil）は変更されません。
type UpdateUserReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Age       *int    `json:"age"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
}

// UpdateAddressReq は住所の部分更新のリクエストボディを表します。
type UpdateAddressReq struct {
	Unit *string `json:"unit"`
	Road *string `json:"road"`
	City *string `json:"city"`
}
