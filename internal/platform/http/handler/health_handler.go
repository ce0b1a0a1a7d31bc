// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether a dependency (database, cache) is reachable.
type Check func(ctx context.Context) error

const readyTimeout = 2 * time.Second

// Health はプロセスの生存確認用 /healthz エンドポイントを処理します。
// 依存先には触れず、キャッシュを防止します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Ready は /readyz を処理し、登録された依存先をすべて確認します。
// 1つでも失敗すれば503を返し、どの依存先が落ちているかを返却します。
// エラー内容はログにのみ出力し、レスポンスには"unavailable"だけを含めます。
func Ready(checks map[string]Check) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				slog.Warn("readiness check failed", "check", name, "error", err)
				status = http.StatusServiceUnavailable
				results[name] = "unavailable"
				continue
			}
			results[name] = "ok"
		}

		if status == http.StatusOK {
			c.JSON(status, gin.H{"status": "ok", "checks": results})
			return
		}
		c.JSON(status, gin.H{"status": "unavailable", "checks": results})
	}
}
