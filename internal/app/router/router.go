// Package router はHTTPルーティングを組み立てます。
package router

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"users_backend/internal/feature/users/domain/valueobject"
	usershandler "users_backend/internal/feature/users/transport/handler"
	platformhandler "users_backend/internal/platform/http/handler"
	jwtmw "users_backend/internal/platform/jwt"
)

// Options are the cross-cutting settings of the router.
type Options struct {
	JWT jwtmw.Config
	// AllowedOrigins enables CORS when non-empty. "*" allows any origin.
	AllowedOrigins []string
	// ReadyChecks are probed by /readyz.
	ReadyChecks map[string]platformhandler.Check
}

// NewRouter wires every endpoint of the users service.
func NewRouter(users *usershandler.UserHandler, opts Options) *gin.Engine {
	r := gin.Default()

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	}

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/readyz", platformhandler.Ready(opts.ReadyChecks))

	api := r.Group("/api/users")

	// 認証不要
	api.POST("/register", users.Register)
	api.POST("/login", users.Login)

	// 認証必須のルート
	auth := api.Group("")
	auth.Use(jwtmw.AuthRequired(opts.JWT))
	{
		auth.GET("/me", users.Me)
		// 本人または管理者（ハンドラー内で確認）
		auth.GET("/:id", users.GetByID)
		auth.PUT("/:id", users.Update)
	}

	// 管理者のみ
	admin := auth.Group("")
	admin.Use(jwtmw.RequireRole(valueobject.ProfileAdmin.String()))
	{
		admin.GET("", users.List)
		admin.GET("/by-email", users.GetByEmail)
		admin.DELETE("/:id", users.Delete)
		admin.GET("/:id/events", users.Events)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.ExposeHeaders = []string{"Location"}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// ParseOrigins splits CORS_ALLOWED_ORIGINS on commas and drops blanks.
func ParseOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
