//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/osm2svg/internal/domain"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	name := flag.String("name", "chartreuse", "Drawing name")
	minLat := flag.Float64("min_lat", 45.30, "South edge")
	minLon := flag.Float64("min_lon", 5.70, "West edge")
	maxLat := flag.Float64("max_lat", 45.40, "North edge")
	maxLon := flag.Float64("max_lon", 5.85, "East edge")
	step := flag.Float64("step", domain.DefaultStep, "Contour interval in meters")
	bigLines := flag.Int("big_lines_step", 100, "Major line interval")
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

	req := domain.NewRenderRequest(*name, domain.BoundingBox{
		MinLat: *minLat,
		MinLon: *minLon,
		MaxLat: *maxLat,
		MaxLon: *maxLon,
	})
	req.Step = *step
	req.BigLinesStep = *bigLines
	req.SortByHeight = true

	event := domain.RenderJobEvent{
		JobID:   uuid.New(),
		Request: req,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamRenderRequest,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Job published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamRenderRequest)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Job ID: %s\n", event.JobID)
	fmt.Printf("   Box: %.4f,%.4f .. %.4f,%.4f\n", req.MinLat, req.MinLon, req.MaxLat, req.MaxLon)

	fmt.Printf("\nWaiting for result in %s...\n", domain.StreamRenderDone)

	// Srtm2Osm может работать минутами
	timeout := time.After(10 * time.Minute)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for result")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{domain.StreamRenderDone, "0"},
				Count:   100,
				Block:   -1,
			}).Result()
			if err != nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var done domain.RenderDoneEvent
					if err := json.Unmarshal([]byte(dataStr), &done); err != nil {
						continue
					}

					if done.JobID == event.JobID {
						pretty, _ := json.MarshalIndent(done, "", "  ")
						fmt.Printf("\nResult received:\n%s\n", pretty)
						return
					}
				}
			}
		}
	}
}
