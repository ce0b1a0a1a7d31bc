package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"users_backend/internal/app/di"
	"users_backend/internal/app/router"
	"users_backend/internal/feature/users/adapters"
	"users_backend/internal/platform/cache"
	infradb "users_backend/internal/platform/db"
	platformhandler "users_backend/internal/platform/http/handler"
	jwtmw "users_backend/internal/platform/jwt"
	infraredis "users_backend/internal/platform/redis"
	"users_backend/internal/platform/security"
)

func main() {
	// .env はローカル開発用。存在しなくてもよい
	_ = godotenv.Load()

	// db
	db := infradb.OpenDB(&adapters.UserModel{}, &adapters.StoredEventModel{})
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(context.Background(), infraredis.LoadConfig()); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRETチェック（未設定ならログインも認証も失敗する）
	jwtCfg := jwtmw.LoadConfig()
	if jwtCfg.Secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Repository（Redisがあればキャッシュでラップ）
	userRepo := di.NewUserRepository(rdb, db)
	if rdb != nil {
		log.Printf("[INFO] user cache enabled (ttl=%s)", cache.TTLFromEnv())
	}

	// Handler
	userH := di.NewUserHandler(userRepo, db, security.NewBcryptHasherFromEnv(), jwtCfg)

	checks := map[string]platformhandler.Check{
		"database": func(ctx context.Context) error { return sqlDB.PingContext(ctx) },
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// ルータ生成
	r := router.NewRouter(userH, router.Options{
		JWT:            jwtCfg,
		AllowedOrigins: router.ParseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		ReadyChecks:    checks,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
