//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	planStream = "stream:trip:plan"
	doneStream = "stream:trip:done"
)

type TripPlanEvent struct {
	TripID        uuid.UUID `json:"trip_id"`
	StartLocation string    `json:"start_location"`
	HomeAddress   string    `json:"home_address,omitempty"`
	AvailableTime float64   `json:"available_time"`
	Preferences   []string  `json:"preferences,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	start := flag.String("start", "Plaça de Catalunya, Barcelona", "Start location")
	home := flag.String("home", "", "Return address")
	hours := flag.Float64("hours", 4, "Available time in hours")
	prefs := flag.String("prefs", "historical,food", "Comma-separated preferences")
	wait := flag.Duration("wait", 60*time.Second, "How long to wait for the result")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := TripPlanEvent{
		TripID:        uuid.New(),
		StartLocation: *start,
		HomeAddress:   *home,
		AvailableTime: *hours,
	}
	if *prefs != "" {
		event.Preferences = strings.Split(*prefs, ",")
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Запоминаем хвост done стрима до публикации, чтобы не читать старые ответы
	lastID := "0"
	if msgs, err := client.XRevRangeN(ctx, doneStream, "+", "-", 1).Result(); err == nil && len(msgs) > 0 {
		lastID = msgs[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: planStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: %s\n", planStream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Trip ID: %s\n", event.TripID)
	fmt.Printf("   Start: %s, %.1f hours, preferences %v\n", event.StartLocation, event.AvailableTime, event.Preferences)

	fmt.Printf("\n⏳ Waiting for response in %s...\n", doneStream)

	deadline := time.Now().Add(*wait)
	for time.Now().Before(deadline) {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{doneStream, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("read failed: %v", err)
				time.Sleep(time.Second)
			}
			continue
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var response map[string]interface{}
				if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
					continue
				}

				if id, ok := response["trip_id"].(string); ok && id == event.TripID.String() {
					fmt.Printf("\n✅ Response received!\n")
					prettyJSON, _ := json.MarshalIndent(response, "", "  ")
					fmt.Printf("%s\n", prettyJSON)
					return
				}
			}
		}
	}

	fmt.Println("❌ Timeout waiting for response")
}
