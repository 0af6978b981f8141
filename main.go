package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/config"
	"github.com/R0D10Nq/AIMood-DiaryBot/middleware"
	"github.com/R0D10Nq/AIMood-DiaryBot/routes"
	"github.com/R0D10Nq/AIMood-DiaryBot/services"
	"github.com/R0D10Nq/AIMood-DiaryBot/utils"
	"github.com/gin-gonic/gin"
	"github.com/tmc/langchaingo/llms"
)

func main() {
	if err := config.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer config.Logger.Sync()

	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	utils.InitJWT(conf.JWTSecret)

	if err := config.InitDB(conf); err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	if err := config.InitRedis(conf); err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}

	// A missing or broken AI provider only disables remote inference;
	// the engine degrades to heuristic analysis.
	var chatModel llms.Model
	geminiClient, err := services.NewGeminiClient(conf.GeminiAPIKey, conf.GeminiAPIEndpoint, conf.GeminiModel)
	if err != nil {
		config.Logger.Warnw("Gemini client init failed, remote inference disabled", "error", err)
	} else if geminiClient == nil {
		config.Logger.Warnw("Gemini API key not configured, remote inference disabled")
	} else {
		chatModel = geminiClient.Chat
	}
	inference := services.NewInferenceService(chatModel, conf.GeminiModel)

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r)
	entryController := routes.RegisterRoutes(r, inference)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	go func() {
		config.Logger.Infow("server starting", "port", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	// Let in-flight background analyses finish.
	config.Logger.Infow("waiting for background analyses")
	entryController.Wait()
	config.Logger.Infow("server stopped")
}
