// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"duophone/chat-api/aws"
	"duophone/chat-api/hub"
	"duophone/chat-api/internal/service"
	"duophone/chat-api/pkg/middleware"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Router    *gin.Engine
	Hub       *hub.Hub
	Ledger    *service.Ledger
	Converter *service.Converter
	Storage   *service.Storage
}

func NewRouter() (*API, error) {
	makeLogger()

	storage, err := service.NewStorage(viper.GetString("upload.dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload storage, %w", err)
	}

	blob, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store client, %w", err)
	}

	a := &API{
		Hub:       hub.New(),
		Ledger:    service.NewLedger(),
		Converter: service.NewConverter(blob),
		Storage:   storage,
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	a.Router.MaxMultipartMemory = 5 << 20

	a.registerRoutes()

	return a, nil
}

func (a *API) registerRoutes() {
	maxUploadSize := viper.GetInt64("upload.max_size")

	limiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 20,
		Burst:             40,
	})

	// HEAD /api/heartbeat		-> Used to check if the server is alive
	a.Router.HEAD("/api/heartbeat", a.Heartbeat)

	// GET /ws			-> Websocket upgrade for the chat relay
	a.Router.GET("/ws", a.Socket)

	// POST /upload			-> Accepts a file and records a new version
	a.Router.POST("/upload", limiter, middleware.BodySizeLimiter(maxUploadSize+1<<20), a.FileUpload)

	// GET /file-versions/:fileName	-> Version history of a stored file
	a.Router.GET("/file-versions/:fileName", a.FileVersions)

	// POST /restore-version	-> Echoes the metadata of a past version
	a.Router.POST("/restore-version", middleware.BodySizeLimiter(1<<20), a.VersionRestore)

	// POST /convert-to-drive	-> Mirrors an uploaded file to the blob store
	a.Router.POST("/convert-to-drive", limiter, middleware.BodySizeLimiter(1<<20), a.FileConvert)
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
