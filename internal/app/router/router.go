package router

import (
	accounthandler "petstore_backend/internal/feature/account/transport/handler"
	cataloghandler "petstore_backend/internal/feature/catalog/transport/handler"
	storehandler "petstore_backend/internal/feature/store/transport/handler"
	platformhandler "petstore_backend/internal/platform/http/handler"
	jwtmw "petstore_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the full route table. Route protection follows three
// tiers: public, bearer-authenticated, and bearer + admin role.
func NewRouter(users *accounthandler.UserHandler, pets *cataloghandler.PetHandler,
	orders *storehandler.OrderHandler, finder jwtmw.UserFinder, uploadDir string) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	// アップロード済み画像の静的配信
	r.Static("/images", uploadDir)

	auth := jwtmw.AuthRequired(finder)
	admin := jwtmw.AdminRequired()

	// ユーザー
	u := r.Group("/users")
	{
		// 認証不要
		u.POST("", users.Register)
		u.POST("/login", users.Login)
		u.POST("/token", users.Refresh)

		// 認証必須（本人操作）
		u.GET("", auth, users.GetMe)
		u.PUT("", auth, users.UpdateMe)
		u.DELETE("", auth, users.DeleteMe)
		u.DELETE("/logout", auth, users.Logout)
		u.POST("/addresses", auth, users.AddAddress)
		u.PUT("/addresses/:id", auth, users.UpdateAddress)
		u.DELETE("/addresses/:id", auth, users.DeleteAddress)

		// 認証＋管理者必須
		u.GET("/getAllUsers", auth, admin, users.GetAll)
		u.POST("/admin", auth, admin, users.RegisterByAdmin)
		u.GET("/:id", auth, admin, users.GetByID)
		u.PUT("/:id", auth, admin, users.UpdateByID)
		u.DELETE("/:id", auth, admin, users.DeleteByID)
	}

	// ペットカタログ
	p := r.Group("/pets")
	{
		// 公開リード
		p.GET("", pets.GetAll)
		p.GET("/findByStatus", pets.FindByStatus)
		p.GET("/:id", pets.Get)

		// 認証＋管理者必須
		p.POST("", auth, admin, pets.Create)
		p.PUT("/:id", auth, admin, pets.Update)
		p.DELETE("/:id", auth, admin, pets.Delete)
		p.POST("/:id/uploadImage", auth, admin, pets.UploadImages)
	}

	// 注文
	s := r.Group("/store")
	{
		// 認証必須（誰でも注文可能）
		s.POST("/orders", auth, orders.Place)

		// 認証＋管理者必須
		s.GET("/orders", auth, admin, orders.GetAll)
		s.GET("/orders/:id", auth, admin, orders.Get)
		s.PUT("/orders/:id", auth, admin, orders.UpdateStatus)
		s.DELETE("/orders/:id", auth, admin, orders.Delete)
	}

	return r
}
