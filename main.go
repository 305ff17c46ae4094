package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lipu/api"
	"lipu/common"
	"lipu/config"
	"lipu/library"
	"lipu/rssfeeds"
	"lipu/shared/kafka"
	"lipu/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer closeStore()

	opts := library.Options{
		Fetcher:    rssfeeds.NewFetcher(cfg.FetchTimeout),
		Store:      store,
		Downloader: library.NewDownloader(cfg.DownloadDir, nil),
	}

	// Kafka is optional: without brokers, subscriptions come only from the API and feeds file
	var producer *kafka.Producer
	if cfg.Kafka.Enabled() {
		producer, err = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
		if err != nil {
			log.Printf("⚠️  Failed to create Kafka producer: %v (refresh events disabled)", err)
		} else {
			opts.Notifier = producer
		}
	}

	lib := library.New(opts)
	if err := lib.Open(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}

	for i, feed := range cfg.Feeds {
		added, err := lib.AddFeed(ctx, feed.URL)
		if err != nil {
			log.Printf("  [%d/%d] ❌ Feed %s rejected: %v", i+1, len(cfg.Feeds), feed.URL, err)
			continue
		}
		log.Printf("  [%d/%d] ✅ Subscribed: %s", i+1, len(cfg.Feeds), added)
	}

	var consumer *kafka.Consumer
	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	if cfg.Kafka.Enabled() {
		consumer, err = kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.SubscriptionTopic,
			GroupID: cfg.Kafka.GroupID,
			Handler: kafka.NewSubscriptionHandler(lib),
		})
		if err != nil {
			log.Printf("⚠️  Failed to create Kafka consumer: %v", err)
		} else if err := consumer.Start(consumerCtx); err != nil {
			log.Printf("⚠️  Failed to start Kafka consumer: %v", err)
		}
	}

	server := api.NewServer(lib, cfg.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	if err := server.StartCron(cfg.RefreshCron); err != nil {
		log.Fatalf("❌ Failed to start cron: %v", err)
	}

	fmt.Printf("📚 lipu\n")
	fmt.Printf("   API:            http://0.0.0.0:%s\n", cfg.Port)
	fmt.Printf("   Cron Schedule:  %s\n", cfg.RefreshCron)
	fmt.Printf("   Store:          %s\n", cfg.StoreBackend)
	fmt.Printf("   Feeds:          %d\n", len(lib.Feeds()))
	if cfg.Kafka.Enabled() {
		fmt.Printf("   Kafka:          %v (in: %s, out: %s)\n", cfg.Kafka.Brokers, cfg.Kafka.SubscriptionTopic, cfg.Kafka.EventsTopic)
	}
	fmt.Println("\nPress Ctrl+C to shutdown")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}

	stopConsumer()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			fmt.Printf("Kafka consumer close error: %v\n", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			fmt.Printf("Kafka producer close error: %v\n", err)
		}
	}

	fmt.Println("Server stopped")
}

// openStore builds the snapshot store named by STORE_BACKEND.
func openStore(ctx context.Context, cfg config.Config) (storage.SnapshotStore, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.StoreRedis:
		store, err := storage.NewRedisStore(storage.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
		if err != nil {
			return nil, noop, err
		}
		log.Printf("✅ Redis store at %s (key %s)", cfg.Redis.Addr, cfg.Redis.Key)
		return store, func() { _ = store.Close() }, nil

	case config.StoreS3:
		objects, err := common.NewS3(ctx, common.S3Config{
			Bucket:       cfg.S3.Bucket,
			Region:       cfg.S3.Region,
			Profile:      cfg.S3.Profile,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, noop, err
		}
		log.Printf("✅ S3 store at s3://%s/%s (keeping %d archives)", cfg.S3.Bucket, cfg.S3.Prefix, cfg.S3.ArchiveKeep)
		return storage.NewS3Store(objects, cfg.S3.Prefix, cfg.S3.ArchiveKeep), noop, nil

	default:
		log.Println("⚠️  Using in-memory store; progress is lost on restart")
		return storage.NewMemoryStore(), noop, nil
	}
}
