// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// Health は /healthz エンドポイントを処理します。ペットストアAPIの唯一の
// 非認証・非ドメインエンドポイントで、ロードバランサーの死活監視に使います。
// HTTPメソッドに応じてレスポンスし、キャッシュを防止します。
func Health(c *gin.Context) {
	// 死活監視結果がキャッシュされないよう明示的に防止
	c.Header("Cache-Control", "no-store")

	// GET/HEAD/OPTIONSに対して200または204を返す
	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
