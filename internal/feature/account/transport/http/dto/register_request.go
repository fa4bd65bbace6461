// Package dto はaccountフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// AddressReq はネストされた住所の作成リクエストを表します。
type AddressReq struct {
	Unit string `json:"unit"`
	Road string `json:"road"`
	City string `json:"city"`
}

// RegisterReq は/usersおよび/users/adminエンドポイントのリクエストボディを表します。
// 必須フィールドの検証はユースケース側で行うため、bindingタグは持ちません。
// roleキーは管理者ルートのallowlistにのみ含まれます。
type RegisterReq struct {
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Age       int          `json:"age"`
	Phone     string       `json:"phone"`
	Email     string       `json:"email"`
	Password  string       `json:"password"`
	Role      string       `json:"role"`
	Addresses []AddressReq `json:"addresses"`
}
