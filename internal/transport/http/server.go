package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"stylemix/internal/domain/models"
	"stylemix/internal/lib/logger/sl"
	combosvc "stylemix/internal/services/combination_service"
	engsvc "stylemix/internal/services/engagement_service"
	protosvc "stylemix/internal/services/prototype_service"
	usersvc "stylemix/internal/services/user_service"
	wardrobesvc "stylemix/internal/services/wardrobe_service"
	"stylemix/internal/storage"
	"stylemix/internal/transport/http/dto"
	"stylemix/internal/transport/http/dto/request"
	"stylemix/internal/transport/http/dto/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	_ "stylemix/docs"
)

type UserService interface {
	RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (int64, error)
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	GetUserByID(ctx context.Context, userID int64) (*dto.UserProfileResponse, error)
	UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error
}

type TokenService interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
}

type CombinationService interface {
	CreateCombination(ctx context.Context, userID int64, req dto.CreateCombinationRequest) (*models.FeedCombination, error)
	ListFeed(ctx context.Context, viewerID *int64, page, perPage int) (*dto.CombinationListResponse, error)
	ListByUser(ctx context.Context, userID int64, page, perPage int) (*dto.CombinationListResponse, error)
	GetCombination(ctx context.Context, combinationID int64, viewerID *int64) (*dto.CombinationDetailResponse, error)
}

type PrototypeService interface {
	CreatePrototype(ctx context.Context, userID int64, req dto.CreatePrototypeRequest) (*dto.PrototypeDetailResponse, error)
	ListPrototypes(ctx context.Context, userID int64) (*dto.PrototypeListResponse, error)
	GetPrototype(ctx context.Context, prototypeID int64) (*dto.PrototypeDetailResponse, error)
}

type EngagementService interface {
	ToggleLike(ctx context.Context, combinationID, userID int64) (*dto.LikeResponse, error)
	LikeStatus(ctx context.Context, combinationID, userID int64) (*dto.LikeResponse, error)
	ListComments(ctx context.Context, combinationID int64, page, perPage int) (*dto.CommentListResponse, error)
	AddComment(ctx context.Context, combinationID, userID int64, text string) (*models.Comment, error)
}

type WardrobeService interface {
	AddClothing(ctx context.Context, userID int64, req dto.AddClothingRequest) (*models.ClothingItem, error)
	ListWardrobe(ctx context.Context, userID int64, category string, page, perPage int) (*dto.WardrobeListResponse, error)
	RemoveClothing(ctx context.Context, userID, clothingID int64) (*dto.RemoveClothingResponse, error)
}

type CatalogService interface {
	StoreProducts(ctx context.Context, page, perPage int) (*models.CatalogPage, error)
	Photos(ctx context.Context, query string, page, perPage int) (*models.CatalogPage, error)
	PlaceholderProducts(page, perPage int) *models.CatalogPage
	AllProducts(ctx context.Context, page, perPage int) *models.CatalogPage
}

type MediaService interface {
	UploadImage(ctx context.Context, payload, folder string) (string, error)
}

type Routers struct {
	log                *slog.Logger
	UserService        UserService
	TokenService       TokenService
	CombinationService CombinationService
	PrototypeService   PrototypeService
	EngagementService  EngagementService
	WardrobeService    WardrobeService
	CatalogService     CatalogService
	MediaService       MediaService
}

func NewRouter(
	log *slog.Logger,
	userService UserService,
	tokenService TokenService,
	combinationService CombinationService,
	prototypeService PrototypeService,
	engagementService EngagementService,
	wardrobeService WardrobeService,
	catalogService CatalogService,
	mediaService MediaService,
) *Routers {
	return &Routers{
		log:                log,
		UserService:        userService,
		TokenService:       tokenService,
		CombinationService: combinationService,
		PrototypeService:   prototypeService,
		EngagementService:  engagementService,
		WardrobeService:    wardrobeService,
		CatalogService:     catalogService,
		MediaService:       mediaService,
	}
}

var ErrNoToken = errors.New("missing or malformed token")

// userIDFromToken reads the authenticated user id out of the JWT the
// middleware already verified.
func userIDFromToken(c echo.Context) (int64, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, ErrNoToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrNoToken
	}
	uid, ok := claims["uid"].(string)
	if !ok {
		return 0, ErrNoToken
	}
	return strconv.ParseInt(uid, 10, 64)
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "registration payload"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(slog.String("op", op))

	var req dto.UserRegisterInput
	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_register_request", err.Error()))
	}

	userID, err := r.UserService.RegisterNewUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserExists) {
			log.Warn("user already exists", slog.String("username", req.Username))
			return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
		}
		log.Error("registration failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data:   map[string]int64{"user_id": userID},
	})
}

// Login godoc
// @Summary Log a user in
// @Description Returns a JWT access/refresh token pair.
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid login payload", slog.String("username", req.Username))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	pair, err := r.UserService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		log.Warn("login failed", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(pair))
}

// Refresh godoc
// @Summary Rotate the refresh token
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest true "refresh token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(slog.String("op", op))

	var req request.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	pair, err := r.TokenService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Warn("refresh failed", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("invalid_token", "invalid refresh token"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(pair))
}

// Logout godoc
// @Summary Log out, revoking all refresh tokens
// @Tags users
// @Produce json
// @Success 200 {object} response.Response
// @Security ApiKeyAuth
// @Router /api/v1/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(slog.String("op", op))

	userID, err := userIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	if err := r.TokenService.Logout(c.Request().Context(), userID); err != nil {
		log.Error("failed to logout", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "logged out"})
}

// GetUser godoc
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param user_id path int true "user id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/users/{user_id} [get]
func (r *Routers) GetUser(c echo.Context) error {
	const op = "http.routers.GetUser"

	log := r.log.With(slog.String("op", op))

	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid user id"))
	}

	profile, err := r.UserService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to get user", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(profile))
}

// UpdateProfilePhoto godoc
// @Summary Upload and set the profile photo
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path int true "user id"
// @Param request body dto.ImageUploadRequest true "base64 image"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/photo [post]
func (r *Routers) UpdateProfilePhoto(c echo.Context) error {
	const op = "http.routers.UpdateProfilePhoto"

	log := r.log.With(slog.String("op", op))

	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid user id"))
	}

	authID, err := userIDFromToken(c)
	if err != nil || authID != userID {
		return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("forbidden", "can only change own photo"))
	}

	var req dto.ImageUploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	url, err := r.MediaService.UploadImage(c.Request().Context(), req.Image, "profiles")
	if err != nil {
		log.Error("failed to upload photo", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "could not store image"))
	}

	if err := r.UserService.UpdateProfilePhoto(c.Request().Context(), userID, url); err != nil {
		log.Error("failed to update profile photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.ImageUploadResponse{URL: url}))
}

// CreateCombination godoc
// @Summary Create an outfit combination
// @Description Creates the combination and its item links atomically. A
// @Description single-item combination may omit the name; the item's name is
// @Description adopted. Null item entries are skipped, keeping ordinal gaps.
// @Tags combinations
// @Accept json
// @Produce json
// @Param request body dto.CreateCombinationRequest true "combination payload"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/combinations [post]
func (r *Routers) CreateCombination(c echo.Context) error {
	const op = "http.routers.CreateCombination"

	log := r.log.With(slog.String("op", op))

	userID, err := userIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	var req dto.CreateCombinationRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	created, err := r.CombinationService.CreateCombination(c.Request().Context(), userID, req)
	if err != nil {
		if errors.Is(err, combosvc.ErrInvalidRequest) {
			log.Warn("invalid combination request", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
		}
		log.Error("failed to create combination", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status:  "success",
		Message: "combination created",
		Data: map[string]interface{}{
			"combination_id": created.ID,
			"combination":    created,
		},
	})
}

// ListCombinations godoc
// @Summary Browse the public feed
// @Tags combinations
// @Produce json
// @Param page query int false "page"
// @Param per_page query int false "page size"
// @Param exclude_user_id query int false "hide this user's posts"
// @Success 200 {object} response.Response
// @Router /api/v1/combinations [get]
func (r *Routers) ListCombinations(c echo.Context) error {
	const op = "http.routers.ListCombinations"

	log := r.log.With(slog.String("op", op))

	var viewerID *int64
	if raw := c.QueryParam("exclude_user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid exclude_user_id"))
		}
		viewerID = &id
	}

	feed, err := r.CombinationService.ListFeed(c.Request().Context(), viewerID, queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	if err != nil {
		log.Error("failed to list feed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(feed))
}

// GetCombination godoc
// @Summary Get one combination with items
// @Tags combinations
// @Produce json
// @Param id path int true "combination id"
// @Param viewer_id query int false "include like state for this user"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/combinations/{id} [get]
func (r *Routers) GetCombination(c echo.Context) error {
	const op = "http.routers.GetCombination"

	log := r.log.With(slog.String("op", op))

	combinationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid combination id"))
	}

	var viewerID *int64
	if raw := c.QueryParam("viewer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			viewerID = &id
		}
	}

	combo, err := r.CombinationService.GetCombination(c.Request().Context(), combinationID, viewerID)
	if err != nil {
		if errors.Is(err, storage.ErrCombinationNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to get combination", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(combo))
}

// ListUserCombinations godoc
// @Summary List a user's combinations
// @Tags combinations
// @Produce json
// @Param user_id path int true "user id"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{user_id}/combinations [get]
func (r *Routers) ListUserCombinations(c echo.Context) error {
	const op = "http.routers.ListUserCombinations"

	log := r.log.With(slog.String("op", op))

	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid user id"))
	}

	combos, err := r.CombinationService.ListByUser(c.Request().Context(), userID, queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	if err != nil {
		log.Error("failed to list user combinations", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(combos))
}

// ToggleLike godoc
// @Summary Like or unlike a combination
// @Tags engagement
// @Produce json
// @Param id path int true "combination id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/combinations/{id}/like [post]
func (r *Routers) ToggleLike(c echo.Context) error {
	const op = "http.routers.ToggleLike"

	log := r.log.With(slog.String("op", op))

	combinationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid combination id"))
	}

	userID, err := userIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	res, err := r.EngagementService.ToggleLike(c.Request().Context(), combinationID, userID)
	if err != nil {
		if errors.Is(err, engsvc.ErrCombinationNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to toggle like", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(res))
}

// LikeStatus godoc
// @Summary Check whether the user liked a combination
// @Tags engagement
// @Produce json
// @Param id path int true "combination id"
// @Success 200 {object} response.Response
// @Security ApiKeyAuth
// @Router /api/v1/combinations/{id}/like-status [get]
func (r *Routers) LikeStatus(c echo.Context) error {
	const op = "http.routers.LikeStatus"

	log := r.log.With(slog.String("op", op))

	combinationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid combination id"))
	}

	userID, err := userIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	res, err := r.EngagementService.LikeStatus(c.Request().Context(), combinationID, userID)
	if err != nil {
		log.Error("failed to get like status", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(res))
}

// ListComments godoc
// @Summary List comments on a combination
// @Tags engagement
// @Produce json
// @Param id path int true "combination id"
// @Success 200 {object} response.Response
// @Router /api/v1/combinations/{id}/comments [get]
func (r *Routers) ListComments(c echo.Context) error {
	const op = "http.routers.ListComments"

	log := r.log.With(slog.String("op", op))

	combinationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid combination id"))
	}

	comments, err := r.EngagementService.ListComments(c.Request().Context(), combinationID, queryInt(c, "page", 1), queryInt(c, "per_page", 50))
	if err != nil {
		log.Error("failed to list comments", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(comments))
}

// AddComment godoc
// @Summary Comment on a combination
// @Tags engagement
// @Accept json
// @Produce json
// @Param id path int true "combination id"
// @Param request body dto.AddCommentRequest true "comment text, max 500 chars"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/combinations/{id}/comments [post]
func (r *Routers) AddComment(c echo.Context) error {
	const op = "http.routers.AddComment"

	log := r.log.With(slog.String("op", op))

	combinationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid combination id"))
	}

	userID, err := userIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	var req dto.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	comment, err := r.EngagementService.AddComment(c.Request().Context(), combinationID, userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, engsvc.ErrCombinationNotFound):
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, engsvc.ErrInvalidComment):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
		}
		log.Error("failed to add comment", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(comment))
}

// AddClothing godoc
// @Summary Add a clothing item to the wardrobe
// @Tags wardrobe
// @Accept json
// @Produce json
// @Param request body dto.AddClothingRequest true "clothing payload"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/wardrobe [post]
func (r *Routers) AddClothing(c echo.Context) error {
	const op = "http.routers.AddClothing"

	log := r.log.With(slog.String("op", op))

	userID, err := userIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	var req dto.AddClothingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	item, err := r.WardrobeService.AddClothing(c.Request().Context(), userID, req)
	if err != nil {
		if errors.Is(err, wardrobesvc.ErrInvalidRequest) {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
		}
		log.Error("failed to add clothing", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(item))
}

// ListWardrobe godoc
// @Summary List a user's wardrobe
// @Tags wardrobe
// @Produce json
// @Param user_id path int true "user id"
// @Param category query string false "category filter"
// @Success 200 {object} response.Response
// @Router /api/v1/wardrobe/{user_id} [get]
func (r *Routers) ListWardrobe(c echo.Context) error {
	const op = "http.routers.ListWardrobe"

	log := r.log.With(slog.String("op", op))

	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid user id"))
	}

	items, err := r.WardrobeService.ListWardrobe(c.Request().Context(), userID, c.QueryParam("category"), queryInt(c, "page", 1), queryInt(c, "per_page", 50))
	if err != nil {
		log.Error("failed to list wardrobe", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(items))
}

// RemoveClothing godoc
// @Summary Remove a clothing item
// @Description Soft delete; existing combinations keep referencing the item.
// @Tags wardrobe
// @Produce json
// @Param clothing_id path int true "clothing id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/wardrobe/{clothing_id} [delete]
func (r *Routers) RemoveClothing(c echo.Context) error {
	const op = "http.routers.RemoveClothing"

	log := r.log.With(slog.String("op", op))

	clothingID, err := pathID(c, "clothing_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid clothing id"))
	}

	userID, err := userIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	res, err := r.WardrobeService.RemoveClothing(c.Request().Context(), userID, clothingID)
	if err != nil {
		if errors.Is(err, wardrobesvc.ErrClothingNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to remove clothing", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(res))
}

// CreatePrototype godoc
// @Summary Create a combination prototype from catalog products
// @Tags prototypes
// @Accept json
// @Produce json
// @Param request body dto.CreatePrototypeRequest true "prototype payload"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/combination-prototypes [post]
func (r *Routers) CreatePrototype(c echo.Context) error {
	const op = "http.routers.CreatePrototype"

	log := r.log.With(slog.String("op", op))

	userID, err := userIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	var req dto.CreatePrototypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	created, err := r.PrototypeService.CreatePrototype(c.Request().Context(), userID, req)
	if err != nil {
		if errors.Is(err, protosvc.ErrInvalidRequest) {
			log.Warn("invalid prototype request", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
		}
		log.Error("failed to create prototype", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status:  "success",
		Message: "prototype created",
		Data: map[string]interface{}{
			"prototype_id": created.ID,
			"prototype":    created,
		},
	})
}

// ListPrototypes godoc
// @Summary List a user's prototypes
// @Tags prototypes
// @Produce json
// @Param user_id query int true "user id"
// @Success 200 {object} response.Response
// @Router /api/v1/prototypes [get]
func (r *Routers) ListPrototypes(c echo.Context) error {
	const op = "http.routers.ListPrototypes"

	log := r.log.With(slog.String("op", op))

	userID, err := strconv.ParseInt(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid user_id"))
	}

	protos, err := r.PrototypeService.ListPrototypes(c.Request().Context(), userID)
	if err != nil {
		log.Error("failed to list prototypes", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(protos))
}

// GetPrototype godoc
// @Summary Get one prototype with products
// @Tags prototypes
// @Produce json
// @Param id path int true "prototype id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/prototypes/{id} [get]
func (r *Routers) GetPrototype(c echo.Context) error {
	const op = "http.routers.GetPrototype"

	log := r.log.With(slog.String("op", op))

	prototypeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid prototype id"))
	}

	proto, err := r.PrototypeService.GetPrototype(c.Request().Context(), prototypeID)
	if err != nil {
		if errors.Is(err, storage.ErrPrototypeNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to get prototype", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(proto))
}

// CatalogStore godoc
// @Summary Browse the external store catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/catalog/store [get]
func (r *Routers) CatalogStore(c echo.Context) error {
	const op = "http.routers.CatalogStore"

	log := r.log.With(slog.String("op", op))

	page, err := r.CatalogService.StoreProducts(c.Request().Context(), queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	if err != nil {
		log.Error("store catalog unavailable", sl.Err(err))
		return c.JSON(http.StatusBadGateway, response.ErrorResponseWithDetails("upstream_error", "store catalog unavailable"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(page))
}

// CatalogPhotos godoc
// @Summary Search clothing photos
// @Tags catalog
// @Produce json
// @Param query query string false "search query"
// @Success 200 {object} response.Response
// @Router /api/v1/catalog/photos [get]
func (r *Routers) CatalogPhotos(c echo.Context) error {
	const op = "http.routers.CatalogPhotos"

	log := r.log.With(slog.String("op", op))

	query := c.QueryParam("query")
	if query == "" {
		query = "clothing"
	}

	page, err := r.CatalogService.Photos(c.Request().Context(), query, queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	if err != nil {
		log.Error("photo catalog unavailable", sl.Err(err))
		return c.JSON(http.StatusBadGateway, response.ErrorResponseWithDetails("upstream_error", "photo catalog unavailable"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(page))
}

// CatalogPlaceholder godoc
// @Summary Browse the synthetic placeholder catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/catalog/placeholder [get]
func (r *Routers) CatalogPlaceholder(c echo.Context) error {
	page := r.CatalogService.PlaceholderProducts(queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	return c.JSON(http.StatusOK, response.SuccessResponse(page))
}

// CatalogAll godoc
// @Summary Browse all catalog sources merged
// @Description Sources are queried concurrently; a failing source is dropped
// @Description from the merge instead of failing the request.
// @Tags catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/catalog/all [get]
func (r *Routers) CatalogAll(c echo.Context) error {
	page := r.CatalogService.AllProducts(c.Request().Context(), queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	return c.JSON(http.StatusOK, response.SuccessResponse(page))
}

// UploadImage godoc
// @Summary Upload a base64 image
// @Tags media
// @Accept json
// @Produce json
// @Param request body dto.ImageUploadRequest true "base64 payload"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/upload/image [post]
func (r *Routers) UploadImage(c echo.Context) error {
	const op = "http.routers.UploadImage"

	log := r.log.With(slog.String("op", op))

	if _, err := userIDFromToken(c); err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	var req dto.ImageUploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	url, err := r.MediaService.UploadImage(c.Request().Context(), req.Image, req.Folder)
	if err != nil {
		log.Warn("failed to upload image", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "could not store image"))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.ImageUploadResponse{URL: url}))
}
