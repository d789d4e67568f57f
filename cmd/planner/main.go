// Package main implements the planner CLI: builds an itinerary from a
// candidates file (or Gemini) and prints it to the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/itinerary-microservice/internal/app"
	"github.com/itinerary-microservice/internal/config"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/infrastructure/static"
	"github.com/itinerary-microservice/internal/pkg/logger"
	"github.com/itinerary-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

var (
	candidatesFile = flag.String("candidates", "", "JSON file with candidate destinations (default: ask Gemini, needs GEMINI_API_KEY)")
	start          = flag.String("start", "", "Start location: address or \"lat,lng\"")
	home           = flag.String("home", "", "Return address (defaults to -start)")
	hours          = flag.Float64("hours", 4, "Available time in hours")
	prefs          = flag.String("prefs", "", "Comma-separated preferred categories")
	noVerify       = flag.Bool("no-verify", false, "Skip opening hours checks even if GOOGLE_MAPS_API_KEY is set")
	timeout        = flag.Duration("timeout", 60*time.Second, "Overall timeout")
	verbose        = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	if strings.TrimSpace(*start) == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -start <location> [flags]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := "error"
	if *verbose {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var oracle repository.RecommendationRepository
	if *candidatesFile != "" {
		oracle, err = static.LoadOracle(*candidatesFile)
	} else {
		oracle, err = app.NewOracle(ctx, cfg, nil, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize oracle", zap.Error(err))
	}

	if *noVerify {
		cfg.GoogleMaps.APIKey = ""
	}
	directory, err := app.NewDirectory(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize places directory", zap.Error(err))
	}

	uc, err := app.NewTripUseCase(cfg, oracle, directory, log)
	if err != nil {
		log.Fatal("Failed to initialize planner", zap.Error(err))
	}

	result, err := uc.PlanTrip(ctx, dto.PlanTripRequest{
		StartLocation: *start,
		HomeAddress:   *home,
		AvailableTime: *hours,
		Preferences:   splitPrefs(*prefs),
	})
	if err != nil {
		cancel()
		printError(os.Stderr, err)
		os.Exit(1)
	}

	printItinerary(os.Stdout, result)
}

func splitPrefs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
