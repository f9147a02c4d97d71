package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	appmw "stylemix/internal/middleware"
	httprouters "stylemix/internal/transport/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log        *slog.Logger
	e          *echo.Echo
	routers    *httprouters.Routers
	host       string
	port       string
	token      string
	uploadsDir string
}

func New(log *slog.Logger, token string, host, port, uploadsDir string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:        log,
		e:          e,
		routers:    routers,
		host:       host,
		port:       port,
		token:      token,
		uploadsDir: uploadsDir,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.e.Static("/uploads", s.uploadsDir)

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api/v1")
	{
		api.POST("/register", s.routers.Register)
		api.POST("/login", s.routers.Login)
		api.POST("/refresh", s.routers.Refresh)

		api.GET("/users/:user_id", s.routers.GetUser)
		api.GET("/users/:user_id/combinations", s.routers.ListUserCombinations)

		api.GET("/combinations", s.routers.ListCombinations)
		api.GET("/combinations/:id", s.routers.GetCombination)
		api.GET("/combinations/:id/comments", s.routers.ListComments)

		api.GET("/wardrobe/:user_id", s.routers.ListWardrobe)

		api.GET("/prototypes", s.routers.ListPrototypes)
		api.GET("/prototypes/:id", s.routers.GetPrototype)

		catalog := api.Group("/catalog")
		{
			catalog.GET("/store", s.routers.CatalogStore)
			catalog.GET("/photos", s.routers.CatalogPhotos)
			catalog.GET("/placeholder", s.routers.CatalogPlaceholder)
			catalog.GET("/all", s.routers.CatalogAll)
		}

		protected := api.Group("")
		protected.Use(echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(s.token),
		}))
		{
			protected.POST("/combinations", s.routers.CreateCombination)
			protected.POST("/combination-prototypes", s.routers.CreatePrototype)

			protected.POST("/combinations/:id/like", s.routers.ToggleLike)
			protected.GET("/combinations/:id/like-status", s.routers.LikeStatus)
			protected.POST("/combinations/:id/comments", s.routers.AddComment)

			protected.POST("/wardrobe", s.routers.AddClothing)
			protected.DELETE("/wardrobe/:clothing_id", s.routers.RemoveClothing)

			protected.POST("/logout", s.routers.Logout)
			protected.POST("/users/:user_id/photo", s.routers.UpdateProfilePhoto)
			protected.POST("/upload/image", s.routers.UploadImage)
		}
	}
}
