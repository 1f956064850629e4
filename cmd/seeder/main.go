package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Sipheren/fridaygt-sub000/internal/catalog"
	"github.com/Sipheren/fridaygt-sub000/internal/config"
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
	"github.com/Sipheren/fridaygt-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	TotalUsers  = 50
	LapsPerUser = 40
	BatchSize   = 500
	MinLapMs    = 60000
	MaxLapMs    = 180000
)

var seedCars = []models.Car{
	{Name: "Mazda RX-7 Spirit R", Manufacturer: "Mazda", Category: "N300"},
	{Name: "Nissan GT-R NISMO", Manufacturer: "Nissan", Category: "Gr.3"},
	{Name: "Toyota GR Supra Racing Concept", Manufacturer: "Toyota", Category: "Gr.3"},
	{Name: "Honda NSX Type R", Manufacturer: "Honda", Category: "N300"},
	{Name: "Porsche 911 RSR", Manufacturer: "Porsche", Category: "Gr.3"},
	{Name: "Subaru WRX STI", Manufacturer: "Subaru", Category: "N300"},
}

var seedTracks = []models.Track{
	{Name: "Deep Forest Raceway", Location: "Original", Layout: "Full"},
	{Name: "Trial Mountain Circuit", Location: "Original", Layout: "Full"},
	{Name: "Suzuka Circuit", Location: "Japan", Layout: "Full"},
	{Name: "Nürburgring", Location: "Germany", Layout: "Nordschleife"},
	{Name: "Mount Panorama", Location: "Australia", Layout: "Full"},
}

func main() {
	log.Println("🌱 Starting seeder for FridayGT...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("✓ Connected to PostgreSQL")

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("✓ Connected to Redis")

	postgresRepo := repository.NewPostgresRepository(db)
	redisRepo := repository.NewRedisRepository(redisClient)

	if err := postgresRepo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("✓ Database migrations completed")

	ctx := context.Background()

	log.Printf("🌱 Seeding %d cars and %d tracks...", len(seedCars), len(seedTracks))
	cars, tracks, err := seedCatalogue(ctx, postgresRepo)
	if err != nil {
		log.Fatalf("Failed to seed catalogue: %v", err)
	}

	log.Printf("🌱 Generating %d users...", TotalUsers)
	users := generateUsers(TotalUsers)
	if err := postgresRepo.BulkInsertUsers(ctx, users, BatchSize); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	users, err = postgresRepo.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to reload users: %v", err)
	}

	log.Println("🔧 Creating sample builds...")
	builds, err := seedBuilds(ctx, postgresRepo, users, cars)
	if err != nil {
		log.Fatalf("Failed to seed builds: %v", err)
	}

	log.Printf("📦 Generating %d lap times...", len(users)*LapsPerUser)
	lapCount, err := seedLapTimes(ctx, postgresRepo, users, cars, tracks, builds)
	if err != nil {
		log.Fatalf("Failed to seed lap times: %v", err)
	}

	// Cached snapshots predating the bulk load are stale now
	if err := redisRepo.InvalidateSnapshots(ctx); err != nil {
		log.Fatalf("Failed to invalidate snapshots: %v", err)
	}
	if err := redisRepo.BumpVersion(ctx); err != nil {
		log.Fatalf("Failed to bump leaderboard version: %v", err)
	}

	log.Println("✅ Seeding completed successfully!")
	log.Printf("   - Users: %d", len(users))
	log.Printf("   - Cars: %d, Tracks: %d", len(cars), len(tracks))
	log.Printf("   - Builds: %d", len(builds))
	log.Printf("   - Lap times: %d", lapCount)

	// Show a sample leaderboard for the first car and track
	leaderboardService := service.NewLeaderboardService(postgresRepo, redisRepo)
	resp, err := leaderboardService.Get(ctx, cars[0].ID, tracks[0].ID, 10)
	if err != nil {
		log.Fatalf("Failed to build sample leaderboard: %v", err)
	}

	log.Printf("\n📊 Top %d — %s at %s:", len(resp.Entries), cars[0].Name, tracks[0].Name)
	for _, entry := range resp.Entries {
		log.Printf("   %d. %s - %s (%d laps)",
			entry.Position, entry.Username, entry.BestTime, entry.TotalLaps)
	}

	postgresRepo.Close()
	redisRepo.Close()

	log.Println("\n🎉 Seeder finished!")
}

// seedCatalogue inserts cars and tracks and returns them with IDs assigned
func seedCatalogue(ctx context.Context, repo *repository.PostgresRepository) ([]models.Car, []models.Track, error) {
	cars := make([]models.Car, len(seedCars))
	copy(cars, seedCars)
	if err := repo.BulkInsertCars(ctx, cars, BatchSize); err != nil {
		return nil, nil, fmt.Errorf("insert cars: %w", err)
	}

	tracks := make([]models.Track, len(seedTracks))
	copy(tracks, seedTracks)
	if err := repo.BulkInsertTracks(ctx, tracks, BatchSize); err != nil {
		return nil, nil, fmt.Errorf("insert tracks: %w", err)
	}

	cars, err := repo.ListCars(ctx)
	if err != nil {
		return nil, nil, err
	}
	tracks, err = repo.ListTracks(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cars, tracks, nil
}

// generateUsers creates demo drivers; the first one is an admin
func generateUsers(count int) []models.User {
	users := make([]models.User, count)
	for i := 0; i < count; i++ {
		users[i] = models.User{
			Username:    fmt.Sprintf("driver_%d", i+1),
			DisplayName: fmt.Sprintf("Driver %d", i+1),
			IsAdmin:     i == 0,
		}
	}
	return users
}

// seedBuilds gives every third user a public build on a random car
func seedBuilds(
	ctx context.Context,
	repo *repository.PostgresRepository,
	users []models.User,
	cars []models.Car,
) ([]models.Build, error) {
	parts := catalog.UpgradeParts
	var builds []models.Build

	for i, user := range users {
		if i%3 != 0 {
			continue
		}
		car := cars[rand.Intn(len(cars))]
		build := models.Build{
			UserID:     user.ID,
			CarID:      car.ID,
			Name:       fmt.Sprintf("%s spec %d", car.Manufacturer, i/3+1),
			ShareToken: uuid.NewString(),
			IsPublic:   true,
			Upgrades: []models.BuildUpgrade{
				{PartID: parts[0].ID, Value: "true"},
			},
		}
		if err := repo.CreateBuild(ctx, &build); err != nil {
			return nil, err
		}
		builds = append(builds, build)
	}
	return builds, nil
}

// seedLapTimes generates random laps spread over the last 30 days
func seedLapTimes(
	ctx context.Context,
	repo *repository.PostgresRepository,
	users []models.User,
	cars []models.Car,
	tracks []models.Track,
	builds []models.Build,
) (int, error) {
	buildsByUserCar := make(map[[2]uint]uint)
	for _, b := range builds {
		buildsByUserCar[[2]uint{b.UserID, b.CarID}] = b.ID
	}

	now := time.Now()
	laps := make([]models.LapTime, 0, len(users)*LapsPerUser)
	for _, user := range users {
		for i := 0; i < LapsPerUser; i++ {
			car := cars[rand.Intn(len(cars))]
			lap := models.LapTime{
				UserID:    user.ID,
				CarID:     car.ID,
				TimeMs:    MinLapMs + rand.Intn(MaxLapMs-MinLapMs+1),
				CreatedAt: now.Add(-time.Duration(rand.Intn(30*24)) * time.Hour),
			}
			if rand.Intn(4) != 0 {
				trackID := tracks[rand.Intn(len(tracks))].ID
				lap.TrackID = &trackID
			}
			if buildID, ok := buildsByUserCar[[2]uint{user.ID, car.ID}]; ok {
				lap.BuildID = &buildID
			}
			laps = append(laps, lap)
		}
	}

	startTime := time.Now()
	if err := repo.BulkInsertLapTimes(ctx, laps, BatchSize); err != nil {
		return 0, fmt.Errorf("bulk insert failed: %w", err)
	}
	duration := time.Since(startTime)
	log.Printf("   ✓ Inserted %d laps in %v (%.0f laps/sec)",
		len(laps), duration, float64(len(laps))/duration.Seconds())

	return len(laps), nil
}

// initPostgres initializes PostgreSQL connection
func initPostgres(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool for bulk operations
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// initRedis initializes Redis connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     50,
		MinIdleConns: 10,
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
