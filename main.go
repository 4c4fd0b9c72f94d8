package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/config"
	"priestconnect-api/internal/db"
	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/events"
	router "priestconnect-api/internal/http"
	"priestconnect-api/internal/http/handlers"
	"priestconnect-api/internal/services"
	"priestconnect-api/internal/store"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if env.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	conn := config.ConnectDB(env.DBDSN)
	defer config.CloseDB()

	if err := db.EnsureSchema(context.Background(), conn); err != nil {
		log.Fatalf("schema: %v", err)
	}

	st := store.New(conn)

	// optional lifecycle event publishing
	var notify func(event string, b models.Booking)
	if env.AMQPURL != "" {
		pub, err := events.NewPublisher(env.AMQPURL, "priestconnect.bookings")
		if err != nil {
			log.Fatalf("amqp: %v", err)
		}
		defer pub.Close()
		notify = func(event string, b models.Booking) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := pub.PublishJSON(ctx, event, b); err != nil {
				log.Printf("event publish %s: %v", event, err)
			}
		}
	}

	bookingSvc := services.BookingService{Store: st, Notify: notify}
	profileSvc := services.ProfileService{Store: st}

	h := handlers.Handlers{
		Auth:         services.AuthService{Store: st, Secret: []byte(env.JWTSecret)},
		Profiles:     profileSvc,
		Search:       services.SearchService{Store: st},
		Availability: services.AvailabilityService{Store: st},
		Bookings:     bookingSvc,
		Docs:         services.DocsService{Bookings: bookingSvc, Profiles: profileSvc},
		Store:        st,
	}

	r := router.NewRouter(env, h)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
