package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cookiepedia/cookiepedia/config"
	"github.com/cookiepedia/cookiepedia/db"
	apiError "github.com/cookiepedia/cookiepedia/errors"
	"github.com/cookiepedia/cookiepedia/mailingservices"
	"github.com/cookiepedia/cookiepedia/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// Server holds every wired dependency and owns the HTTP lifecycle.
type Server struct {
	Config              *config.Config
	Mail                *mailingservices.Mailgun
	AuthRepository      db.AuthRepository
	AuthService         services.AuthService
	ChatService         services.ChatService
	RelayService        services.RelayService
	NotificationService services.NotificationService
	ChannelService      services.ChannelService
	ReelService         services.ReelService
	MediaService        services.MediaService
	SearchService       services.SearchService
	Registry            *services.ConnectionRegistry
	DB                  db.GormDB
}

var translator ut.Translator

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		enLocale := en.New()
		universal := ut.New(enLocale, enLocale)
		translator, _ = universal.GetTranslator("en")
		if err := enTranslations.RegisterDefaultTranslations(v, translator); err != nil {
			log.Printf("error registering validation translations: %v", err)
		}
	}
}

// decode binds the JSON body into v, translating validation failures into
// a single readable error.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && translator != nil {
			for _, fieldError := range validationErrors {
				return apiError.New(fieldError.Translate(translator), http.StatusBadRequest)
			}
		}
		return apiError.New(err.Error(), http.StatusBadRequest)
	}
	return nil
}

// Start brings up the router and blocks until a shutdown signal, then
// drains in-flight requests and tears down the live connections.
func (s *Server) Start() {
	port := s.Config.Port
	if port == 0 {
		port = 5000
	}

	r := s.setupRouter()
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("server running on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	s.Registry.Stop()
	s.Registry.Clear()
	if err := s.SearchService.Close(); err != nil {
		log.Printf("error closing search service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}
