package main

import (
	"context"
	"log"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/cookiepedia/cookiepedia/config"
	"github.com/cookiepedia/cookiepedia/db"
	"github.com/cookiepedia/cookiepedia/mailingservices"
	"github.com/cookiepedia/cookiepedia/server"
	"github.com/cookiepedia/cookiepedia/services"
	"google.golang.org/api/option"
)

// initFirebase builds the FCM client used for push notifications. Returns
// nil when credentials are not configured; push is then skipped.
func initFirebase(credentialsFile string) *messaging.Client {
	if credentialsFile == "" {
		log.Println("firebase credentials not configured, push notifications disabled")
		return nil
	}

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Printf("error initializing Firebase app, push notifications disabled: %v", err)
		return nil
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("error getting Messaging client, push notifications disabled: %v", err)
		return nil
	}
	log.Println("Firebase Messaging client initialized")
	return client
}

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	messagingClient := initFirebase(conf.GoogleApplicationCredentials)

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	chatRepo := db.NewChatRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)
	channelRepo := db.NewChannelRepo(gormDB)
	reelRepo := db.NewReelRepo(gormDB)

	registry := services.NewConnectionRegistry()
	registry.StartSweeper(services.SweepInterval)

	notificationService := services.NewNotificationService(notificationRepo, authRepo, registry, messagingClient)
	authService := services.NewAuthService(authRepo, channelRepo, notificationService, mailgunClient, conf)
	chatService := services.NewChatService(chatRepo, authRepo)
	relayService := services.NewRelayService(chatRepo, notificationService, registry)
	channelService := services.NewChannelService(channelRepo, authRepo)
	reelService := services.NewReelService(reelRepo, notificationService)
	mediaService := services.NewMediaService(conf)
	searchService := services.NewSearchService(context.Background(), conf)

	s := &server.Server{
		Mail:                mailgunClient,
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		ChatService:         chatService,
		RelayService:        relayService,
		NotificationService: notificationService,
		ChannelService:      channelService,
		ReelService:         reelService,
		MediaService:        mediaService,
		SearchService:       searchService,
		Registry:            registry,
		DB:                  db.GormDB{},
	}
	s.Start()
}
