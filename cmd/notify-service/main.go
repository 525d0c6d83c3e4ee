package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"venue-booking/internal/config"
	"venue-booking/internal/kafka"
	"venue-booking/internal/logger"
	"venue-booking/internal/mailer"
	"venue-booking/internal/models"
	"venue-booking/internal/tickets/pdf"
)

// notify-service tails the booking and registration topics and sends the
// confirmation emails out of band, so a slow mail provider never holds up
// the booking API.
func main() {
	log := logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}

	cfg := config.Load()
	if !cfg.Kafka.Enabled {
		log.Fatal("CONFIG", "Kafka is disabled, nothing to consume")
	}

	mail := mailer.New(cfg.Email.ResendAPIKey, cfg.Email.From, log)

	bookingConsumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.BookingCreated, cfg.Kafka.GroupID)
	registrationConsumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.RegistrationCreated, cfg.Kafka.GroupID)
	defer bookingConsumer.Close()
	defer registrationConsumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		log.Info("KAFKA", fmt.Sprintf("Consuming %s", cfg.Kafka.Topics.BookingCreated))
		kafka.Start(ctx, bookingConsumer, func(booking models.Booking) {
			log.LogBooking("NOTIFY", booking.BookingRef, "booking event received")
			if err := mail.SendBookingConfirmation(booking); err != nil {
				log.Error("EMAIL", fmt.Sprintf("booking %s: %v", booking.BookingRef, err))
			}
		})
	}()

	go func() {
		defer wg.Done()
		log.Info("KAFKA", fmt.Sprintf("Consuming %s", cfg.Kafka.Topics.RegistrationCreated))
		kafka.Start(ctx, registrationConsumer, func(reg models.Registration) {
			log.Info("NOTIFY", fmt.Sprintf("registration event received: %s", reg.RegistrationRef))
			attachment := ""
			if doc, err := pdf.GenerateTicketPDF(buildTicketStub(reg), nil); err != nil {
				log.Warn("EMAIL", fmt.Sprintf("registration %s: pdf generation failed, sending without attachment: %v", reg.RegistrationRef, err))
			} else {
				attachment = base64.StdEncoding.EncodeToString(doc)
			}
			if err := mail.SendRegistrationConfirmation(reg, attachment); err != nil {
				log.Error("EMAIL", fmt.Sprintf("registration %s: %v", reg.RegistrationRef, err))
			}
		})
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Notify service started, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received")
	cancel()
	wg.Wait()
	log.Info("APP", "✅ Notify service shutdown complete")
}

// buildTicketStub shapes a registration into the ticket fields the PDF
// renderer needs. The QR image is omitted here, the API copy of the
// ticket carries it.
func buildTicketStub(reg models.Registration) models.Ticket {
	return models.Ticket{
		RegistrationRef: reg.RegistrationRef,
		EventName:       reg.EventName,
		HolderName:      reg.Name,
		Participants:    reg.Participants,
		Date:            reg.Date,
		SeatNumbers:     reg.SeatNumbers,
		IssuedAt:        reg.CreatedAt,
	}
}
