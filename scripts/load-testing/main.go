package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	config := &LoadTestConfig{
		BaseURL:             "http://localhost:8080",
		ConcurrentUsers:     100,
		TestDurationSeconds: 60,
		RampUpSeconds:       10,
		ProductCount:        200,
		PromoCode:           "SAVE10",
	}

	flag.StringVar(&config.BaseURL, "url", config.BaseURL, "storefront service base URL")
	flag.StringVar(&config.PromoCode, "promo", config.PromoCode, "promo code to apply, empty to skip")
	flag.BoolVar(&config.PlaceOrders, "place-orders", false, "also submit orders (needs a logged-in session and a reachable API)")
	flag.Parse()

	switch flag.Arg(0) {
	case "light":
		config.ConcurrentUsers = 50
		config.TestDurationSeconds = 30
	case "heavy":
		config.ConcurrentUsers = 500
		config.TestDurationSeconds = 300
	case "stress":
		config.ConcurrentUsers = 1000
		config.TestDurationSeconds = 600
	}

	fmt.Printf("Configuration:\n")
	fmt.Printf("- Base URL: %s\n", config.BaseURL)
	fmt.Printf("- Concurrent Users: %d\n", config.ConcurrentUsers)
	fmt.Printf("- Test Duration: %d seconds\n", config.TestDurationSeconds)
	fmt.Printf("- Ramp Up: %d seconds\n", config.RampUpSeconds)
	fmt.Printf("- Place Orders: %t\n", config.PlaceOrders)
	fmt.Printf("\nStarting test...\n\n")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := NewLoadTester(config).Run(ctx)

	metrics.PrintReport()

	filename := fmt.Sprintf("load_test_results_%s.json", time.Now().Format("20060102_150405"))
	if err := metrics.SaveToFile(filename); err != nil {
		log.Printf("Failed to save results to file: %v", err)
	} else {
		fmt.Printf("Results saved to: %s\n", filename)
	}
}
