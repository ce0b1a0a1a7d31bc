// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/api/users/registerエンドポイントのリクエストボディを表します。
// 形式チェックはドメインの値オブジェクトが行うため、ここでは必須と長さのみ検証します。
type RegisterReq struct {
	Name     string `json:"name" binding:"required,username"`
	Email    string `json:"email" binding:"required,max=320"`
	Password string `json:"password" binding:"required"`
}

// LoginReq は/api/users/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserReq はPUT /api/users/:idのリクエストボディを表します。
// 空のフィールドは変更しません。
type UpdateUserReq struct {
	Name        string `json:"name" binding:"omitempty,username"`
	NewPassword string `json:"new_password"`
}

// EmailQuery is the query string of GET /api/users/by-email.
type EmailQuery struct {
	Email string `form:"email" binding:"required"`
}
