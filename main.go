package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/street-parser/app/config"
	"github.com/street-parser/app/controllers"
	"github.com/street-parser/app/services"
	"github.com/street-parser/helpers/utils"
	"github.com/street-parser/internal/grammar"
	"github.com/street-parser/internal/lexicon"
	"github.com/street-parser/internal/parser"
	"github.com/street-parser/routes"
)

func main() {
	loadConfig()

	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Street Address Parser Service")

	if err := config.Load(getEnv("PARSER_CONFIG", "config/parser.yaml")); err != nil {
		logger.Fatal("Failed to load parser config", zap.Error(err))
	}

	// Lexicon, grammar and parser. The admin service clones the lexicon
	// for alias edits so the serving copy is never mutated.
	lex := lexicon.New()
	parserOpts := parser.Options{AvoidRedundantType: config.C.Parser.AvoidRedundantType}
	addressParser := parser.New(grammar.New(lex), parserOpts, logger)
	grammarVersion := utils.GenerateUUID()

	// Cache backend. MongoDB is only connected when a backend needs it
	// or the review queue is enabled.
	backend := config.C.Cache.Backend
	var mongoDB *mongo.Database
	if backend == "mongo" || backend == "hybrid" || getEnv("REVIEW_QUEUE", "1") == "1" {
		mongoDB = initMongoDB(logger)
		defer func() {
			if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
				logger.Error("Error disconnecting MongoDB", zap.Error(err))
			}
		}()
	}

	cacheService := initCache(backend, mongoDB, logger)
	defer cacheService.Close()

	parseService := services.NewParseService(addressParser, grammarVersion, cacheService, logger)

	var reviewService *services.ReviewService
	if mongoDB != nil {
		reviewService = services.NewReviewService(mongoDB, logger)
		parseService.SetReviewService(reviewService)
	}

	adminService := services.NewAdminService(lex, parserOpts, parseService, cacheService, mongoDB, logger)

	parseController := controllers.NewParseController(parseService, logger)
	adminController := controllers.NewAdminController(adminService, reviewService, cacheService, logger)

	if getEnv("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, parseController, adminController)

	port := getEnv("APP_PORT", viper.GetString("app.port"))
	logger.Info("Street Address Parser Service starting",
		zap.String("port", port),
		zap.String("cache_backend", backend),
		zap.String("grammar_version", grammarVersion))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// initCache builds the configured CacheStore. Unknown backends fall back
// to the in-process cache.
func initCache(backend string, mongoDB *mongo.Database, logger *zap.Logger) services.CacheStore {
	ttl := config.CacheTTL()
	l1Size := getEnvInt("L1_CACHE_SIZE", config.C.Cache.L1Size)

	switch backend {
	case "redis":
		redisCache, err := services.NewRedisCacheService(getEnv("REDIS_URL", "redis://localhost:6379"), logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		redisCache.SetTTL(ttl)
		return redisCache

	case "mongo":
		mongoCache, err := services.NewMongoCacheService(mongoDB, l1Size, logger)
		if err != nil {
			logger.Fatal("Failed to initialize MongoDB cache", zap.Error(err))
		}
		if err := mongoCache.WarmUp(context.Background(), l1Size/2); err != nil {
			logger.Warn("Failed to warm up cache", zap.Error(err))
		}
		return mongoCache

	case "hybrid":
		redisCache, err := services.NewRedisCacheService(getEnv("REDIS_URL", "redis://localhost:6379"), logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		redisCache.SetTTL(ttl)
		mongoCache, err := services.NewMongoCacheService(mongoDB, l1Size, logger)
		if err != nil {
			logger.Fatal("Failed to initialize MongoDB cache", zap.Error(err))
		}
		hybrid := services.NewHybridCacheService(redisCache, mongoCache, logger)
		if err := hybrid.WarmUpFromMongoDB(context.Background(), l1Size/2); err != nil {
			logger.Warn("Failed to warm up cache", zap.Error(err))
		}
		return hybrid

	default:
		return services.NewMemoryCacheService(ttl)
	}
}

// loadConfig loads server settings from file and env vars.
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017/street_parser")
	viper.SetDefault("cache.l1_size", 10000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger builds a structured logger for the current environment.
func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}

// initMongoDB connects and pings MongoDB.
func initMongoDB(logger *zap.Logger) *mongo.Database {
	mongoURL := getEnv("MONGO_URL", viper.GetString("mongo.url"))

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	dbName := getEnv("MONGO_DATABASE", "street_parser")
	db := client.Database(dbName)
	logger.Info("Connected to MongoDB", zap.String("database", dbName))

	return db
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
