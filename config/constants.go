package config

import "time"

// Server Constants
const (
	// DefaultPort is the HTTP port the API listens on
	DefaultPort = "8080"

	// DefaultRefreshCron refreshes every subscription twice an hour
	DefaultRefreshCron = "*/30 * * * *"

	// DefaultFetchTimeout bounds a single feed download
	DefaultFetchTimeout = 30 * time.Second
)

// Storage Constants
const (
	// StoreMemory keeps the snapshot in process only
	StoreMemory = "memory"

	// StoreRedis keeps the snapshot under a single Redis key
	StoreRedis = "redis"

	// StoreS3 writes the snapshot plus a rolling archive to a bucket
	StoreS3 = "s3"

	DefaultStoreBackend = StoreMemory
	DefaultRedisAddr    = "localhost:6379"
	DefaultSnapshotKey  = "lipu:snapshot"
	DefaultS3Prefix     = "lipu/"
	DefaultArchiveKeep  = 10
)

// Kafka Constants
const (
	DefaultSubscriptionTopic = "lipu.subscriptions"
	DefaultEventsTopic       = "lipu.refreshes"
	DefaultGroupID           = "lipu"
)

// Directory Constants
const (
	// DefaultDownloadDir is where downloaded audio and video files land
	DefaultDownloadDir = "downloads"
)
