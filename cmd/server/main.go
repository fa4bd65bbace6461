package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"petstore_backend/internal/app/di"
	"petstore_backend/internal/app/router"
	accountadapters "petstore_backend/internal/feature/account/adapters"
	accounthandler "petstore_backend/internal/feature/account/transport/handler"
	accountusecase "petstore_backend/internal/feature/account/usecase"
	catalogadapters "petstore_backend/internal/feature/catalog/adapters"
	cataloghandler "petstore_backend/internal/feature/catalog/transport/handler"
	catalogusecase "petstore_backend/internal/feature/catalog/usecase"
	storeadapters "petstore_backend/internal/feature/store/adapters"
	storehandler "petstore_backend/internal/feature/store/transport/handler"
	storeusecase "petstore_backend/internal/feature/store/usecase"
	platformdb "petstore_backend/internal/platform/db"
	jwtmw "petstore_backend/internal/platform/jwt"
	platformredis "petstore_backend/internal/platform/redis"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func main() {
	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to MySQL session store.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWTシークレットチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyAccessSecret) == "" {
		log.Println("[WARN] JWT_ACCESS_SECRET is not set. Set a strong secret in production.")
	}
	if os.Getenv(jwtmw.EnvKeyRefreshSecret) == "" {
		log.Println("[WARN] JWT_REFRESH_SECRET is not set. Set a strong secret in production.")
	}

	// アップロード先ディレクトリ
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload dir: %v", err)
	}

	// Repository
	userRepo := accountadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db, refreshTokenTTL)
	petRepo := catalogadapters.NewPetGorm(db)
	orderRepo := storeadapters.NewOrderGorm(db)

	// Token issuer
	issuer := jwtmw.NewGenerator(
		os.Getenv(jwtmw.EnvKeyAccessSecret),
		os.Getenv(jwtmw.EnvKeyRefreshSecret),
		accessTokenTTL,
		refreshTokenTTL,
	)

	// Usecase
	accountUC := accountusecase.NewAccountUsecase(userRepo, sessionRepo, issuer)
	catalogUC := catalogusecase.NewCatalogUsecase(petRepo)
	orderUC := storeusecase.NewOrderUsecase(orderRepo)

	// Handler
	userH := accounthandler.NewUserHandler(accountUC)
	petH := cataloghandler.NewPetHandler(catalogUC, uploadDir)
	orderH := storehandler.NewOrderHandler(orderUC)

	// ルータ生成
	r := router.NewRouter(userH, petH, orderH, userRepo, uploadDir)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
