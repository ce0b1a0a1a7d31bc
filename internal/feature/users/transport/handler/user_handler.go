// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain"
	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/valueobject"
	"users_backend/internal/feature/users/transport/http/dto"
	"users_backend/internal/feature/users/usecase"
	jwtmw "users_backend/internal/platform/jwt"
	"users_backend/internal/platform/validation"
)

// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type (
	// CreateUserUsecase はユーザー登録を行います。
	CreateUserUsecase interface {
		Handle(ctx context.Context, in usecase.CreateUserInput) (usecase.UserResponse, error)
	}
	// LoginUsecase は認証しアクセストークンを発行します。
	LoginUsecase interface {
		Handle(ctx context.Context, email, password string) (usecase.LoginResponse, error)
	}
	// UpdateUserUsecase は名前とパスワードを部分的に更新します。
	UpdateUserUsecase interface {
		Handle(ctx context.Context, in usecase.UpdateUserInput) (usecase.UserResponse, error)
	}
	// DeleteUserUsecase はユーザーを削除します。
	DeleteUserUsecase interface {
		Handle(ctx context.Context, id uuid.UUID) (usecase.DeleteUserResponse, error)
	}
	GetUserByIDUsecase interface {
		Handle(ctx context.Context, id uuid.UUID) (usecase.UserResponse, error)
	}
	GetUserByEmailUsecase interface {
		Handle(ctx context.Context, email string) (usecase.UserResponse, error)
	}
	ListUsersUsecase interface {
		Handle(ctx context.Context) (usecase.ListUsersResponse, error)
	}
	ListUserEventsUsecase interface {
		Handle(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)
	}
)

// Usecases groups the use cases served by UserHandler.
type Usecases struct {
	Create     CreateUserUsecase
	Login      LoginUsecase
	Update     UpdateUserUsecase
	Delete     DeleteUserUsecase
	GetByID    GetUserByIDUsecase
	GetByEmail GetUserByEmailUsecase
	List       ListUsersUsecase
	Events     ListUserEventsUsecase
}

// UserHandler はユーザー操作のHTTPリクエストを処理します。
type UserHandler struct {
	uc Usecases
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
// DTOのバインドタグが使うエイリアスを登録するため、バリデーターも初期化します。
func NewUserHandler(uc Usecases) *UserHandler {
	validation.Init()
	return &UserHandler{uc: uc}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時はLocationヘッダー付きで201を返却
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	res, err := h.uc.Create.Handle(c.Request.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, "register", err)
		return
	}

	slog.Info("user registered", "user_id", res.ID, "profile", res.Profile, "remote_addr", c.ClientIP())
	c.Header("Location", "/api/users/"+res.ID.String())
	c.JSON(http.StatusCreated, dto.FromUser(res))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗の理由は区別せず常に401を返却します。
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	res, err := h.uc.Login.Handle(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	slog.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.FromLogin(res))
}

// List returns every user ordered by name. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	res, err := h.uc.List.Handle(c.Request.Context())
	if err != nil {
		h.fail(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUsers(res))
}

// GetByID returns a user to its owner or to an admin.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if !canAccess(c, id) {
		c.JSON(http.StatusForbidden, dto.ErrorRes{Error: "forbidden"})
		return
	}

	res, err := h.uc.GetByID.Handle(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(res))
}

// GetByEmail looks a user up by address. Admin only.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	var q dto.EmailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	res, err := h.uc.GetByEmail.Handle(c.Request.Context(), q.Email)
	if err != nil {
		h.fail(c, "get user by email", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(res))
}

// Update は名前・パスワードの部分更新を処理します。本人または管理者のみ実行できます。
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if !canAccess(c, id) {
		c.JSON(http.StatusForbidden, dto.ErrorRes{Error: "forbidden"})
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	res, err := h.uc.Update.Handle(c.Request.Context(), usecase.UpdateUserInput{
		UserID:      id,
		Name:        req.Name,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.fail(c, "update user", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(res))
}

// Delete removes a user. Admin only. Responds 204, or 404 when nothing was deleted.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	res, err := h.uc.Delete.Handle(c.Request.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		h.fail(c, "delete user", err)
		return
	}
	if !res.Deleted {
		c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "user not found"})
		return
	}

	slog.Info("user deleted", "user_id", id, "remote_addr", c.ClientIP())
	c.Status(http.StatusNoContent)
}

// Me returns the identity carried by the caller's token.
func (h *UserHandler) Me(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.MeRes{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	})
}

// Events returns the audit trail of a user in append order. Admin only.
func (h *UserHandler) Events(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	events, err := h.uc.Events.Handle(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "list user events", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEvents(events))
}

func (h *UserHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{
			Error:   "invalid request",
			Details: map[string]string{"id": "must be a valid UUID"},
		})
		return uuid.Nil, false
	}
	return id, true
}

// canAccess allows the owner of the resource and admins.
func canAccess(c *gin.Context, id uuid.UUID) bool {
	if c.GetString(jwtmw.ContextRole) == valueobject.ProfileAdmin.String() {
		return true
	}
	caller, ok := jwtmw.UserIDFromContext(c)
	return ok && caller == id
}

// fail maps domain errors to status codes. Unknown errors become a generic 500.
func (h *UserHandler) fail(c *gin.Context, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		slog.Warn(op+" rejected", "field", verr.Field, "reason", verr.Reason, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{
			Error:   "invalid request",
			Details: map[string]string{verr.Field: verr.Reason},
		})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		slog.Warn(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, dto.ErrorRes{Error: "email already exists"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "user not found"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid email or password"})
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
	}
}
