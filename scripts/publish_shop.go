//go:build ignore

// Publishes one shop upsert event and waits for the indexing worker's result.
//
//	go run scripts/publish_shop.go -redis localhost:6379 -name "Kape Tayo" -lat 14.5547 -lng 121.0244
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/coffee-finder/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	name := flag.String("name", "Kape Tayo", "shop name")
	lat := flag.Float64("lat", 14.5547, "latitude")
	lng := flag.Float64("lng", 121.0244, "longitude")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.ShopUpsertEvent{
		EventID: uuid.New(),
		Shop: domain.RawShopRecord{
			"id":             uuid.NewString(),
			"name":           *name,
			"address":        "5th Avenue, Bonifacio Global City",
			"city":           "Taguig",
			"latitude":       *lat,
			"longitude":      *lng,
			"amenities":      []string{"WiFi", "Power Outlets", "Aircon"},
			"paymentMethods": []string{"Cash", "GCash"},
			"openingHours": []map[string]any{
				{"day": "monday", "open": "7:00 AM", "close": "9:00 PM"},
				{"day": "sunday", "isClosed": true},
			},
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// начинаем читать результаты с текущего конца стрима
	start := "$"
	if last, err := client.XRevRangeN(ctx, domain.StreamShopIndexed, "+", "-", 1).Result(); err == nil && len(last) > 0 {
		start = last[0].ID
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamShopUpsert,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published %s to %s (event %s)\n", id, domain.StreamShopUpsert, event.EventID)
	fmt.Printf("Waiting for result in %s...\n", domain.StreamShopIndexed)

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamShopIndexed, start},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil && err != redis.Nil {
			log.Fatalf("Failed to read results: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				start = msg.ID
				raw, _ := msg.Values["data"].(string)

				var result domain.ShopIndexedEvent
				if err := json.Unmarshal([]byte(raw), &result); err != nil || result.EventID != event.EventID {
					continue
				}
				pretty, _ := json.MarshalIndent(result, "", "  ")
				fmt.Printf("%s\n", pretty)
				return
			}
		}
	}

	log.Fatal("Timed out waiting for the indexing worker")
}
