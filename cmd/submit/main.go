// Command submit plays the contact form: it builds a lead record from flags,
// filters the phone input, stamps the submission timestamp, and POSTs the
// record to the intake endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/adlweddings/wedding-lead-platform/internal/webform"
	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	defaultEndpoint := os.Getenv("FORM_ENDPOINT")
	if defaultEndpoint == "" {
		defaultEndpoint = "http://localhost:8080/leads"
	}

	var (
		endpoint   = flag.String("endpoint", defaultEndpoint, "lead intake endpoint URL")
		name       = flag.String("name", "", "client name")
		phone      = flag.String("phone", "", "WhatsApp phone number (non-digits are stripped, 10 digits kept)")
		eventDate  = flag.String("event-date", "", "event date (YYYY-MM-DD)")
		guestCount = flag.String("guests", "", "guest count bucket, e.g. 300-500")
		budget     = flag.String("budget", "", "budget bucket, e.g. ₹10L+")
		venue      = flag.String("venue", "", "venue location")
		demo       = flag.Bool("demo", false, "send the canned test inquiry instead of flag values")
	)
	flag.Parse()

	values := webform.Values{
		Name:       *name,
		Phone:      *phone,
		EventDate:  *eventDate,
		GuestCount: *guestCount,
		Budget:     *budget,
		Venue:      *venue,
	}
	if *demo {
		values = webform.Values{
			Name:       "Test Client",
			Phone:      "9876543210",
			EventDate:  "2024-12-25",
			GuestCount: "300-500",
			Budget:     "₹10L+",
			Venue:      "Dimapur",
		}
	}

	logger := logging.New(os.Getenv("LOG_LEVEL"))
	client := webform.NewClient(*endpoint, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rec := values.Build(time.Now())
	resp, err := client.Submit(ctx, rec)
	if err != nil {
		fmt.Println("✗ Something went wrong. Please try again or contact us directly via WhatsApp.")
		log.Fatalf("submit: %v", err)
	}

	if resp.Duplicate {
		fmt.Println("This inquiry was already received. We'll be in touch soon!")
		return
	}
	fmt.Println("Thank you! Your inquiry has been received. We'll contact you within 24 hours.")
}
