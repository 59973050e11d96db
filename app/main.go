package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/curata-io/curata/domain"
	"github.com/curata-io/curata/internal/repository/badgercache"
	mysqlRepo "github.com/curata-io/curata/internal/repository/mysql"
	redisRepo "github.com/curata-io/curata/internal/repository/redis"
	"github.com/curata-io/curata/internal/rest"
	"github.com/curata-io/curata/internal/rest/middleware"
	"github.com/curata-io/curata/internal/usecase/engagement"
	"github.com/curata-io/curata/internal/usecase/recommend"
	"github.com/curata-io/curata/internal/usecase/trending"
	"github.com/curata-io/curata/internal/workers"
)

const (
	defaultTimeout         = 30
	defaultAddress         = ":9090"
	defaultCacheDB         = 0
	defaultBloomBitSize    = 10000000
	defaultDedupTTLMin     = 10
	defaultWindowHours     = 168
	defaultHalfLifeHours   = 72
	defaultViewWeight      = 0.6
	defaultLikeWeight      = 0.4
	dbMaxRetry             = 10
	dbRetryIntervalSec     = 2
	shutdownTimeoutSeconds = 5
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
}

func envInt(key string, fallback int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		log.Printf("failed to parse %s, using default %d", key, fallback)
		return fallback
	}
	return val
}

func envFloat(key string, fallback float64) float64 {
	val, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		log.Printf("failed to parse %s, using default %v", key, fallback)
		return fallback
	}
	return val
}

func main() {
	// prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := 0; i < dbMaxRetry; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDB := envInt("CACHE_DB", defaultCacheDB)
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		if err := client.Close(); err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	if _, err = client.Ping(context.Background()).Result(); err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeout := envInt("CONTEXT_TIMEOUT", defaultTimeout)
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// prepare repositories
	contentRepo := mysqlRepo.NewContentRepository(db)
	playlistRepo := mysqlRepo.NewPlaylistRepository(db)
	likeRepo := mysqlRepo.NewLikeRecordRepository(db)

	// counter store gets its own handle so increments never join a caller
	// transaction
	counterStore := mysqlRepo.NewCounterStore(db.Session(&gorm.Session{NewDB: true}))

	var dedupCache domain.DedupCache
	if os.Getenv("DEDUP_BACKEND") == "badger" {
		badgerCache, err := badgercache.NewDedupCache(os.Getenv("BADGER_PATH"))
		if err != nil {
			log.Fatal("failed to open badger dedup cache:", err)
		}
		defer func() {
			if err := badgerCache.Close(); err != nil {
				log.Printf("got error when closing badger: %v", err)
			}
		}()
		dedupCache = badgerCache
	} else {
		dedupCache = redisRepo.NewDedupCache(client)
	}

	bloomBitSize, err := strconv.ParseUint(os.Getenv("BLOOM_FILTER_SIZE"), 10, 64)
	if err != nil {
		log.Printf("failed to parse bloom bit size, using default size")
		bloomBitSize = defaultBloomBitSize
	}
	bloomRepo := redisRepo.NewRedisBloomRepo(client, bloomBitSize)

	rankCache := redisRepo.NewRankCache(client)

	// start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rankWorker := workers.NewRankEventWorker(rankCache)
	go rankWorker.Start(ctx)

	// build service layer
	dedupTTL := time.Duration(envInt("CLICK_DEDUP_TTL_MIN", defaultDedupTTLMin)) * time.Minute
	window := time.Duration(envInt("TRENDING_WINDOW_HOURS", defaultWindowHours)) * time.Hour
	halfLife := time.Duration(envInt("TRENDING_RECENCY_HALFLIFE_HOURS", defaultHalfLifeHours)) * time.Hour
	weights := domain.RecommendWeights{
		Views: envFloat("RECOMMEND_VIEW_WEIGHT", defaultViewWeight),
		Likes: envFloat("RECOMMEND_LIKE_WEIGHT", defaultLikeWeight),
	}

	engagementSvc := engagement.NewService(contentRepo, likeRepo, counterStore, dedupCache, bloomRepo, rankWorker, dedupTTL)
	trendingSvc := trending.NewService(contentRepo, counterStore, rankCache, window, halfLife)
	recommendSvc := recommend.NewService(playlistRepo, counterStore, weights)

	engagementHandler := rest.NewEngagementHandler(engagementSvc)
	trendingHandler := rest.NewTrendingHandler(trendingSvc)
	recommendHandler := rest.NewRecommendHandler(recommendSvc)

	// prepare bloom filter
	if err := engagementSvc.InitBloomFilter(ctx); err != nil {
		log.Printf("failed to init bloom filter: %v\n", err)
		return
	}

	// register routes
	route.POST("/contents/:id/view", engagementHandler.RecordView)
	route.POST("/contents/:id/like", engagementHandler.ToggleLike)
	route.POST("/links/:id/click", engagementHandler.RegisterClick)

	route.GET("/trending/tags", trendingHandler.TrendingTags)
	route.GET("/trending/contents", trendingHandler.TrendingContent)
	route.GET("/trending/hot", trendingHandler.HotRank)

	route.GET("/playlists/:id/recommendation", recommendHandler.Recommend)

	route.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// start server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeoutSeconds*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
