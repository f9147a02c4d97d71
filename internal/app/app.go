package app

import (
	"context"
	"log/slog"

	httpapp "stylemix/internal/app/http"
	"stylemix/internal/config"
	"stylemix/internal/repository"
	catalogsvc "stylemix/internal/services/catalog_service"
	combosvc "stylemix/internal/services/combination_service"
	engsvc "stylemix/internal/services/engagement_service"
	mediasvc "stylemix/internal/services/media_service"
	protosvc "stylemix/internal/services/prototype_service"
	tokensvc "stylemix/internal/services/token_service"
	usersvc "stylemix/internal/services/user_service"
	wardrobesvc "stylemix/internal/services/wardrobe_service"
	filestorage "stylemix/internal/storage/filestorage"
	"stylemix/internal/storage/postgresql"
	redisapp "stylemix/internal/storage/redis"
	httprouters "stylemix/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
}

func New(log *slog.Logger, cfg *config.Config) *App {
	pool, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient := redisapp.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
	if err != nil {
		panic(err)
	}

	userRepo := repository.NewUserRepository(pool)
	clothingRepo := repository.NewClothingRepository(pool)
	combinationRepo := repository.NewCombinationRepository(pool)
	prototypeRepo := repository.NewPrototypeRepository(pool)
	engagementRepo := repository.NewEngagementRepository(pool)
	tokenRepo := repository.NewRedisTokenRepo(redisClient)

	tokenService := tokensvc.NewTokenService(tokenRepo, cfg.TokenSecret)
	userService := usersvc.NewUserService(log, userRepo, tokenService)
	combinationService := combosvc.NewCombinationService(log, combinationRepo, engagementRepo)
	prototypeService := protosvc.NewPrototypeService(log, prototypeRepo)
	engagementService := engsvc.NewEngagementService(log, engagementRepo)
	wardrobeService := wardrobesvc.NewWardrobeService(log, clothingRepo)
	catalogService := catalogsvc.NewCatalogService(log, cfg.Catalog)
	mediaService := mediasvc.NewMediaService(log, fileStorage, cfg.FileStorage.MaxSize)

	routers := httprouters.NewRouter(
		log,
		userService,
		tokenService,
		combinationService,
		prototypeService,
		engagementService,
		wardrobeService,
		catalogService,
		mediaService,
	)

	server := httpapp.New(log, cfg.TokenSecret, cfg.HTTP.Host, cfg.HTTP.Port, cfg.FileStorage.BaseDir, routers)
	server.BuildRouters()

	return &App{HTTPServer: server}
}
