package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"venue-booking/internal/analytics"
	analytics_api "venue-booking/internal/analytics/api"
	"venue-booking/internal/auth"
	"venue-booking/internal/auth/auth_api"
	auth_db "venue-booking/internal/auth/db"
	"venue-booking/internal/booking"
	"venue-booking/internal/booking/booking_api"
	booking_db "venue-booking/internal/booking/db"
	bookingredis "venue-booking/internal/booking/redis"
	"venue-booking/internal/config"
	"venue-booking/internal/contact"
	"venue-booking/internal/database/migrations"
	"venue-booking/internal/kafka"
	"venue-booking/internal/logger"
	"venue-booking/internal/mailer"
	"venue-booking/internal/models"
	"venue-booking/internal/newsletter"
	"venue-booking/internal/payment"
	"venue-booking/internal/payment/payment_api"
	"venue-booking/internal/registration"
	registration_db "venue-booking/internal/registration/db"
	"venue-booking/internal/registration/registration_api"
	"venue-booking/internal/tickets"
	ticket_db "venue-booking/internal/tickets/db"
	"venue-booking/internal/tickets/ticket_api"
)

func connectPostgres(cfg *config.Config, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Info("DATABASE", "✅ PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("✅ Redis connection successful to %s", cfg.Redis.Addr))
	return client
}

func buildVerifier(ctx context.Context, cfg *config.Config, sessions *auth.SessionCache, log *logger.Logger) auth.Verifier {
	jwtVerifier := &auth.JWTVerifier{Secret: cfg.Auth.JWTSecret, Sessions: sessions}

	if !cfg.Auth.OIDCEnabled {
		return jwtVerifier
	}

	oidcVerifier, err := auth.NewOIDCVerifier(ctx, cfg.Auth.OIDCIssuer)
	if err != nil {
		log.Warn("AUTH", fmt.Sprintf("OIDC issuer %s unreachable, falling back to local JWT only: %v", cfg.Auth.OIDCIssuer, err))
		return jwtVerifier
	}
	log.Info("AUTH", fmt.Sprintf("OIDC verification enabled via %s", cfg.Auth.OIDCIssuer))
	return &auth.FallbackVerifier{Primary: jwtVerifier, Secondary: oidcVerifier}
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Venue Booking Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("CONFIG", err.Error())
	}
	ctx := context.Background()

	bunDB := connectPostgres(cfg, log)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg, log)
	defer redisClient.Close()

	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
	if err := runner.Initialize(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migration setup failed: %v", err))
	}
	if err := runner.RunMigrations(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
	}
	log.Info("DATABASE", "Schema migrations applied")

	var producer *kafka.Producer
	var bookingEvents booking.EventPublisher
	var registrationEvents registration.EventPublisher
	if cfg.Kafka.Enabled {
		requiredTopics := []string{
			cfg.Kafka.Topics.BookingCreated,
			cfg.Kafka.Topics.RegistrationCreated,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		bookingEvents = producer
		registrationEvents = producer
		defer producer.Close()
		log.Info("KAFKA", "Kafka producer initialized successfully")
	} else {
		log.Warn("KAFKA", "Kafka disabled, events will not be published and confirmation emails are sent in-process")
	}

	mail := mailer.New(cfg.Email.ResendAPIKey, cfg.Email.From, log)

	// When events are published, notify-service owns the confirmation
	// emails; the services mail directly only with Kafka off. Exactly one
	// of the two paths is wired so customers get a single email.
	var bookingMail booking.Mailer
	var registrationMail registration.Mailer
	if !cfg.Kafka.Enabled {
		bookingMail = mail
		registrationMail = mail
	}

	var gateway booking.PaymentGateway
	var paymentHandler *payment_api.Handler
	if cfg.Stripe.Enabled {
		paymentStore := &payment.Storage{Bun: bunDB}
		stripeService, err := payment.NewStripeService(cfg.Stripe.SecretKey, paymentStore, log)
		if err != nil {
			log.Fatal("PAYMENT", fmt.Sprintf("Stripe setup failed: %v", err))
		}
		gateway = stripeService
		paymentHandler = &payment_api.Handler{StripeService: stripeService, Store: paymentStore, Logger: log}
		log.Info("PAYMENT", "Stripe payment gateway initialized")
	} else {
		log.Warn("PAYMENT", "Stripe disabled, online bookings will be stored without a payment intent")
	}

	slotHolds := bookingredis.NewRedis(redisClient, cfg.Booking.SlotHoldTTL)
	bookingService := booking.NewService(
		&booking_db.DB{Bun: bunDB},
		slotHolds,
		bookingEvents,
		bookingMail,
		gateway,
		log,
	)

	ticketService := tickets.NewTicketService(&ticket_db.DB{Bun: bunDB}, cfg.Booking.QRSecret)

	registrationService := registration.NewService(
		&registration_db.DB{Bun: bunDB},
		slotHolds,
		ticketService,
		registrationEvents,
		registrationMail,
		log,
	)

	sessions := auth.NewSessionCache(redisClient)
	authService := auth.NewService(&auth_db.DB{Bun: bunDB}, sessions, mail, log, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	verifier := buildVerifier(ctx, cfg, sessions, log)

	analyticsService := analytics.NewService(bunDB)
	newsletterService := newsletter.NewService(bunDB)
	contactService := contact.NewService(bunDB)

	bookingHandler := &booking_api.Handler{BookingService: bookingService, Logger: log}
	registrationHandler := &registration_api.Handler{RegistrationService: registrationService, Logger: log}
	ticketHandler := &ticket_api.Handler{TicketService: ticketService, Logger: log}
	authHandler := &auth_api.Handler{AuthService: authService, Logger: log}
	analyticsHandler := analytics_api.NewHandler(analyticsService, log)
	newsletterHandler := &newsletter.Handler{Service: newsletterService, Logger: log}
	contactHandler := &contact.Handler{Service: contactService, Logger: log}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	// --- Public Routes ---
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})
	r.Post("/api/availability", bookingHandler.CheckAvailability)
	r.Post("/api/newsletter", newsletterHandler.Subscribe)
	r.Post("/api/contact", contactHandler.Create)
	if paymentHandler != nil {
		// Stripe authenticates webhooks itself; the route stays outside the
		// JWT middleware.
		r.Post("/api/payment/webhook", paymentHandler.Webhook)
	}
	log.Info("ROUTER", "Public routes registered")

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(verifier))
		log.Info("AUTH", "JWT middleware applied to protected API routes")

		r.Route("/api", func(r chi.Router) {
			r.Post("/auth/signout", authHandler.Signout)
			r.Get("/auth/me", authHandler.Me)

			r.Route("/booking", func(r chi.Router) {
				r.Post("/", bookingHandler.PlaceBooking)
				r.Get("/{bookingRef}", bookingHandler.GetBooking)
				r.Get("/mine", bookingHandler.ListMyBookings)
			})
			log.Info("ROUTER", "Booking routes registered under /api/booking")

			r.Route("/registration", func(r chi.Router) {
				r.Post("/", registrationHandler.Register)
				r.Get("/event/{eventName}/headcount", registrationHandler.EventHeadcount)
				r.Get("/{registrationRef}", registrationHandler.GetRegistration)
				r.Get("/{registrationRef}/ticket", ticketHandler.ViewTicketByRegistration)
			})
			log.Info("ROUTER", "Registration routes registered under /api/registration")

			r.Route("/ticket", func(r chi.Router) {
				r.Get("/{ticketId}", ticketHandler.ViewTicket)
				r.Get("/{ticketId}/pdf", ticketHandler.DownloadTicketPDF)
			})
			log.Info("ROUTER", "Ticket routes registered under /api/ticket")

			// --- Admin Routes ---
			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireRole(models.RoleAdmin))

				r.Get("/bookings", bookingHandler.ListBookings)
				r.Get("/registrations", registrationHandler.ListRegistrations)
				r.Post("/ticket/{ticketId}/checkin", ticketHandler.CheckinTicket)
				r.Get("/newsletter", newsletterHandler.List)
				r.Get("/contact", contactHandler.List)
				if paymentHandler != nil {
					r.Get("/payment/{bookingRef}", paymentHandler.GetPaymentByBooking)
				}
				analyticsHandler.RegisterRoutes(r)
			})
			log.Info("ROUTER", "Admin routes registered under /api/admin with role enforcement")
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Venue Booking Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Venue Booking Service shutdown complete")
	}
}
