package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sipheren/fridaygt-sub000/internal/api/handlers"
	"github.com/Sipheren/fridaygt-sub000/internal/config"
	"github.com/Sipheren/fridaygt-sub000/internal/jobs"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
	"github.com/Sipheren/fridaygt-sub000/internal/service"
	"github.com/Sipheren/fridaygt-sub000/internal/websocket"
	"github.com/Sipheren/fridaygt-sub000/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	postgresRepo := repository.NewPostgresRepository(db)
	redisRepo := repository.NewRedisRepository(redisClient)

	if err := postgresRepo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Services and the snapshot refresh pool. The pool rebuilds cached
	// leaderboard views after lap writes.
	leaderboardService := service.NewLeaderboardService(postgresRepo, redisRepo)
	refreshPool := worker.NewPool(8, 256, leaderboardService)
	refreshPool.Start()

	lapService := service.NewLapTimeService(postgresRepo, redisRepo, refreshPool)
	buildService := service.NewBuildService(postgresRepo)
	raceService := service.NewRaceService(postgresRepo)
	noteService := service.NewNoteService(postgresRepo)
	userService := service.NewUserService(postgresRepo)

	hub := websocket.NewHub(redisRepo)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)

	simulator := jobs.NewLapSimulator(lapService, postgresRepo,
		time.Duration(cfg.Simulator.TickIntervalMs)*time.Millisecond)
	if cfg.Simulator.Enabled {
		simCtx, simCancel := context.WithCancel(context.Background())
		defer simCancel()
		if err := simulator.Start(simCtx); err != nil {
			log.Printf("Failed to start simulator: %v", err)
		}
	}

	lapHandler := handlers.NewLapTimeHandler(lapService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	buildHandler := handlers.NewBuildHandler(buildService)
	catalogueHandler := handlers.NewCatalogueHandler(postgresRepo)
	raceHandler := handlers.NewRaceHandler(raceService)
	noteHandler := handlers.NewNoteHandler(noteService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(postgresRepo, redisRepo)

	app := fiber.New(fiber.Config{
		AppName:      "FridayGT",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID",
	}))

	api := app.Group("/api/v1")

	// Public routes
	api.Get("/health", healthHandler.Check)
	api.Get("/leaderboard", leaderboardHandler.Get)
	api.Get("/cars", catalogueHandler.ListCars)
	api.Get("/cars/:id", catalogueHandler.GetCar)
	api.Get("/cars/:id/trackbests", leaderboardHandler.TrackBests)
	api.Get("/tracks", catalogueHandler.ListTracks)
	api.Get("/catalogue/fields", catalogueHandler.Fields)
	api.Get("/builds/shared/:token", buildHandler.GetShared)
	api.Post("/users", userHandler.Create)

	// Authenticated routes
	auth := api.Group("", handlers.RequireUser(userService))

	auth.Get("/users/me", userHandler.Me)
	auth.Put("/users/:id", userHandler.Update)
	auth.Get("/admin/users", userHandler.List)
	auth.Put("/admin/users/:id/ban", userHandler.SetBanned)

	auth.Post("/cars", catalogueHandler.CreateCar)
	auth.Put("/cars/:id", catalogueHandler.UpdateCar)
	auth.Delete("/cars/:id", catalogueHandler.DeleteCar)
	auth.Post("/tracks", catalogueHandler.CreateTrack)
	auth.Put("/tracks/:id", catalogueHandler.UpdateTrack)
	auth.Delete("/tracks/:id", catalogueHandler.DeleteTrack)

	auth.Post("/laptimes", lapHandler.Submit)
	auth.Get("/laptimes", lapHandler.List)
	auth.Delete("/laptimes/:id", lapHandler.Delete)

	auth.Post("/builds", buildHandler.Create)
	auth.Get("/builds", buildHandler.List)
	auth.Get("/builds/:id", buildHandler.Get)
	auth.Put("/builds/:id", buildHandler.Update)
	auth.Delete("/builds/:id", buildHandler.Delete)
	auth.Post("/builds/:id/submit", buildHandler.Submit)

	auth.Post("/races", raceHandler.CreateRace)
	auth.Get("/races", raceHandler.ListRaces)
	auth.Get("/races/:id", raceHandler.GetRace)
	auth.Put("/races/:id", raceHandler.UpdateRace)
	auth.Delete("/races/:id", raceHandler.DeleteRace)

	auth.Post("/runlists", raceHandler.CreateRunList)
	auth.Get("/runlists", raceHandler.ListRunLists)
	auth.Get("/runlists/:id", raceHandler.GetRunList)
	auth.Put("/runlists/:id", raceHandler.UpdateRunList)
	auth.Delete("/runlists/:id", raceHandler.DeleteRunList)
	auth.Put("/runlists/:id/order", raceHandler.Reorder)

	auth.Post("/notes", noteHandler.Create)
	auth.Get("/notes", noteHandler.List)
	auth.Put("/notes/:id", noteHandler.Update)
	auth.Delete("/notes/:id", noteHandler.Delete)

	// WebSocket route with upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", fiberws.New(func(c *fiberws.Conn) {
		websocket.ServeWS(hub, c)
	}))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "FridayGT API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/leaderboard",
				"GET /api/v1/cars/:id/trackbests",
				"POST /api/v1/laptimes",
				"POST /api/v1/builds/:id/submit",
				"GET /api/v1/builds/shared/:token",
				"GET /api/v1/health",
				"WS /ws (WebSocket)",
			},
			"websocket_clients": hub.GetClientCount(),
		})
	})

	// Graceful shutdown: simulator first, then HTTP, then flush the
	// refresh pool, then close the stores
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")
		simulator.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}

		if err := refreshPool.Shutdown(30 * time.Second); err != nil {
			log.Printf("Refresh pool shutdown error: %v", err)
		}

		if err := postgresRepo.Close(); err != nil {
			log.Printf("Error closing PostgreSQL: %v", err)
		}
		if err := redisRepo.Close(); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}

		log.Println("Server shutdown complete")
	}()

	port := cfg.Server.Port
	log.Printf("Server starting on port %d...", port)
	if err := app.Listen(fmt.Sprintf(":%d", port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initPostgres initializes PostgreSQL connection with connection pooling
func initPostgres(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Max connections should cover the refresh pool plus request traffic
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// initRedis initializes Redis connection with connection pooling
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   "Request failed",
		"message": err.Error(),
	})
}
