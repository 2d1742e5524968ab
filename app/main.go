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
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/triplog/triplog-backend/internal/images"
	"github.com/triplog/triplog-backend/internal/repository"
	mysqlRepo "github.com/triplog/triplog-backend/internal/repository/mysql"
	"github.com/triplog/triplog-backend/internal/repository/mysql/model"
	redisCache "github.com/triplog/triplog-backend/internal/repository/redis"
	"github.com/triplog/triplog-backend/internal/workers"

	"github.com/triplog/triplog-backend/internal/rest"
	"github.com/triplog/triplog-backend/internal/rest/middleware"
	"github.com/triplog/triplog-backend/internal/usecase/comment"
	"github.com/triplog/triplog-backend/internal/usecase/post"
	"github.com/triplog/triplog-backend/internal/usecase/report"
	"github.com/triplog/triplog-backend/internal/usecase/trip"
	"github.com/triplog/triplog-backend/internal/usecase/user"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
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
	val.Add("loc", "Asia/Seoul")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
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

	err = db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostHashtag{},
		&model.Comment{},
		&model.PostLike{},
		&model.CommentLike{},
		&model.TripLike{},
		&model.Report{},
		&model.Trip{},
		&model.TripParticipant{},
		&model.ItineraryItem{},
		&model.Reservation{},
	)
	if err != nil {
		log.Fatal("failed to migrate database schema:", err)
	}

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// Prepare Repository
	userRepo := mysqlRepo.NewUserRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	likeRepo := mysqlRepo.NewLikeRepository(db)
	reportRepo := mysqlRepo.NewReportRepository(db)
	tripRepo := mysqlRepo.NewTripRepository(db)

	// Post相关的三层架构
	// 1. DB层
	postDBRepo := mysqlRepo.NewPostDBRepository(db)
	// 2. Cache层
	postCache := redisCache.NewPostCache(client)
	// 3. Repository协调层
	postRepo := repository.NewPostRepository(postDBRepo, postCache, userRepo)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	viewsSyncer := workers.NewSyncViewsWorker(postDBRepo, postCache)
	go viewsSyncer.Start(ctx)

	// Build service Layer
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = 24
	}
	imageResolver := images.NewCDNResolver(os.Getenv("CDN_BASE_URL"))

	postSvc := post.NewService(postRepo, postDBRepo, likeRepo, postCache, imageResolver)
	commentSvc := comment.NewService(commentRepo, postDBRepo, likeRepo, userRepo, postCache, imageResolver)
	tripSvc := trip.NewService(tripRepo, likeRepo, userRepo, imageResolver)
	reportSvc := report.NewService(reportRepo, postDBRepo, commentRepo)
	userSvc := user.NewService(userRepo, jwtSecret, time.Duration(jwtTTL)*time.Hour)

	postHandler := rest.NewPostHandler(postSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	tripHandler := rest.NewTripHandler(tripSvc)
	reportHandler := rest.NewReportHandler(reportSvc)
	userHandler := rest.NewUserHandler(userSvc)

	authMiddleware := middleware.AuthMiddleware(string(jwtSecret))
	optionalAuth := middleware.OptionalAuth(string(jwtSecret))

	// Register routes
	route.POST("/register", userHandler.Register)
	route.POST("/login", userHandler.Login)

	open := route.Group("/")
	open.Use(optionalAuth)
	{
		open.GET("/posts", postHandler.Fetch)
		open.GET("/posts/:id", postHandler.GetByID)
		open.GET("/posts/:id/comments", commentHandler.ListTopLevel)
		open.GET("/comments/:id/replies", commentHandler.ListReplies)

		open.GET("/trips", tripHandler.Fetch)
		open.GET("/trips/:id", tripHandler.GetByID)
		open.GET("/trips/:id/itinerary", tripHandler.Itinerary)
		open.GET("/trips/:id/reservations", tripHandler.Reservations)
	}

	authorized := route.Group("/")
	authorized.Use(authMiddleware)
	{
		authorized.POST("/posts", postHandler.Store)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/like", postHandler.Like)
		authorized.DELETE("/posts/:id/like", postHandler.Unlike)

		authorized.POST("/posts/:id/comments", commentHandler.Create)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
		authorized.POST("/comments/:id/like", commentHandler.Like)
		authorized.DELETE("/comments/:id/like", commentHandler.Unlike)

		authorized.POST("/trips", tripHandler.Store)
		authorized.PUT("/trips/:id", tripHandler.Update)
		authorized.DELETE("/trips/:id", tripHandler.Delete)
		authorized.POST("/trips/:id/like", tripHandler.Like)
		authorized.DELETE("/trips/:id/like", tripHandler.Unlike)
		authorized.POST("/trips/:id/participants", tripHandler.AddParticipant)
		authorized.DELETE("/trips/:id/participants/:userId", tripHandler.RemoveParticipant)
		authorized.POST("/trips/:id/itinerary", tripHandler.AddItineraryItem)
		authorized.POST("/trips/:id/reservations", tripHandler.AddReservation)

		authorized.POST("/reports", reportHandler.File)
		authorized.GET("/reports/ranks", reportHandler.MostReported)
		authorized.GET("/reports/count", reportHandler.TargetCount)
	}

	// Start Server
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
