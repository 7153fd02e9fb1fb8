package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"Farsante/config"
	_ "Farsante/config/swagger"
	"Farsante/middleware"
	"Farsante/repository"
	"Farsante/routes"
	"Farsante/services/catalog"
	"Farsante/services/game"
	"Farsante/services/redis"
	"Farsante/services/socket_io"
	socketio_types "Farsante/services/socket_io/types"
	"Farsante/sync"
)

// @title Farsante API
// @version 1.0
// @description Gin-Gonic server for the "Farsante" impostor game
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
			// Continue execution even if migration fails
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Connection to Redis successful")
	defer redis.CloseRedis(redisClient)

	// Each component guards its own rand.Rand with its own lock, so they
	// must not share a source.
	repo := repository.NewPersistent(gormDB, redisClient, rand.New(rand.NewSource(time.Now().UnixNano())))
	subjects := catalog.NewStaticProvider(rand.New(rand.NewSource(time.Now().UnixNano())))

	sio := socketio_types.NewSocketServer()
	gs := game.NewService(repo, subjects, sio, rand.New(rand.NewSource(time.Now().UnixNano())))
	gs.SetArchiver(sync.NewSyncManager(sqlDB))

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, sqlDB, gs)

	(*socket_io.MySocketServer)(sio).Start(r, gs)

	// Configure port
	port := os.Getenv("PORT")
	if port == "" {
		if os.Getenv("USE_HTTPS") == "true" {
			port = "443"
		} else {
			port = "8080"
		}
	}

	if os.Getenv("USE_HTTPS") == "true" {
		// SSL certification configuration for HTTPS
		certFile := os.Getenv("SSL_CERT_FILE")
		keyFile := os.Getenv("SSL_KEY_FILE")

		if err := r.RunTLS(":"+port, certFile, keyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
