// Package dto はcatalogフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// CreatePetReq は POST /pets のリクエストボディを表します。
type CreatePetReq struct {
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
}

// UpdatePetReq は PUT /pets/:id のリクエストボディを表します。
// 省略されたフィールド（nil）は変更されません。tagsが指定された場合、
// タグ集合全体が置換されます。
type UpdatePetReq struct {
	Category *string   `json:"category"`
	Name     *string   `json:"name"`
	Tags     *[]string `json:"tags"`
	Status   *string   `json:"status"`
}
