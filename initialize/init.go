package initialize

import (
	"fmt"
	"net/http"

	"realty-hub/app/controllers"
	"realty-hub/app/db"
	jwtutil "realty-hub/app/jwt"
	"realty-hub/app/middleware"
	"realty-hub/app/models"
	"realty-hub/app/repo"
	"realty-hub/app/services"
	"realty-hub/config"
	"realty-hub/global"
	"realty-hub/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Router  http.Handler
	Auth    *controllers.AuthController
	Homes   *controllers.HomeController
	AuthSvc *services.AuthService
	HomeSvc *services.HomeService
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		global.Rdb = rdb
	}

	// Repos and services
	userRepo := repo.NewUserRepository(gdb)
	homeRepo := repo.NewHomeRepository(gdb)
	msgRepo := repo.NewMessageRepository(gdb)
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpDays: cfg.JWT.ExpDays}
	authSvc := services.NewAuthService(userRepo, signer, cfg.ProductKeySecret)
	homeSvc := services.NewHomeService(homeRepo, msgRepo, rdb)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	homeCtrl := controllers.NewHomeController(homeSvc)
	mw := &middleware.Auth{Signer: signer, Users: userRepo}

	h := router.NewRouter(authCtrl, homeCtrl, mw)
	h = middleware.RequestID(middleware.Logging(h))

	return &App{Cfg: cfg, DB: gdb, Router: h, Auth: authCtrl, Homes: homeCtrl, AuthSvc: authSvc, HomeSvc: homeSvc}, nil
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&models.User{}, &models.Home{}, &models.Image{}, &models.Message{})
}
