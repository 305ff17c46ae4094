package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lipu/rssfeeds"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs to start
type Config struct {
	Port         string
	RefreshCron  string
	FetchTimeout time.Duration
	DownloadDir  string

	StoreBackend string
	Redis        RedisConfig
	S3           S3Config

	Kafka KafkaConfig

	FeedsFile string
	Feeds     []rssfeeds.FeedConfig
}

// RedisConfig selects the Redis snapshot key and connection
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// S3Config selects the bucket used by the s3 store backend
type S3Config struct {
	Bucket       string
	Region       string
	Profile      string
	Prefix       string
	UsePathStyle bool
	ArchiveKeep  int
}

// KafkaConfig is optional; an empty broker list disables Kafka entirely
type KafkaConfig struct {
	Brokers           []string
	SubscriptionTopic string
	EventsTopic       string
	GroupID           string
}

// Enabled reports whether any brokers are configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// feedsFile is the on-disk layout of FEEDS_FILE
type feedsFile struct {
	Feeds []rssfeeds.FeedConfig `yaml:"feeds"`
}

// Load reads .env (if present), then the environment, then FEEDS_FILE.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:         envOr("PORT", DefaultPort),
		RefreshCron:  envOr("REFRESH_CRON", DefaultRefreshCron),
		FetchTimeout: DefaultFetchTimeout,
		DownloadDir:  envOr("DOWNLOAD_DIR", DefaultDownloadDir),
		StoreBackend: strings.ToLower(envOr("STORE_BACKEND", DefaultStoreBackend)),
		Redis: RedisConfig{
			Addr:     envOr("REDIS_ADDR", DefaultRedisAddr),
			Password: os.Getenv("REDIS_PASS"),
			Key:      envOr("SNAPSHOT_KEY", DefaultSnapshotKey),
		},
		S3: S3Config{
			Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
			Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
			Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
			Prefix:       envOr("S3_PREFIX", DefaultS3Prefix),
			UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
			ArchiveKeep:  DefaultArchiveKeep,
		},
		Kafka: KafkaConfig{
			Brokers:           splitList(os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
			SubscriptionTopic: envOr("KAFKA_SUBSCRIPTION_TOPIC", DefaultSubscriptionTopic),
			EventsTopic:       envOr("KAFKA_EVENTS_TOPIC", DefaultEventsTopic),
			GroupID:           envOr("KAFKA_GROUP_ID", DefaultGroupID),
		},
		FeedsFile: strings.TrimSpace(os.Getenv("FEEDS_FILE")),
	}

	if p := cfg.S3.Prefix; p != "" {
		cfg.S3.Prefix = strings.Trim(p, "/") + "/"
	}

	var err error
	if cfg.Redis.DB, err = envInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.S3.ArchiveKeep, err = envInt("S3_ARCHIVE_KEEP", DefaultArchiveKeep); err != nil {
		return Config{}, err
	}
	seconds, err := envInt("FETCH_TIMEOUT_SECONDS", int(DefaultFetchTimeout/time.Second))
	if err != nil {
		return Config{}, err
	}
	if seconds > 0 {
		cfg.FetchTimeout = time.Duration(seconds) * time.Second
	}

	switch cfg.StoreBackend {
	case StoreMemory, StoreRedis:
	case StoreS3:
		if cfg.S3.Bucket == "" {
			return Config{}, fmt.Errorf("STORE_BACKEND=s3 requires S3_BUCKET")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.FeedsFile != "" {
		feeds, err := LoadFeeds(cfg.FeedsFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Feeds = feeds
	}

	return cfg, nil
}

// LoadFeeds reads a YAML subscription list. An entry with only a name is
// looked up in the preset table.
func LoadFeeds(path string) ([]rssfeeds.FeedConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var file feedsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file %s: %w", path, err)
	}

	feeds := make([]rssfeeds.FeedConfig, 0, len(file.Feeds))
	for i, f := range file.Feeds {
		f.Name = strings.TrimSpace(f.Name)
		f.URL = strings.TrimSpace(f.URL)
		if f.URL == "" {
			f.URL = rssfeeds.ResolveFeedURL(f.Name)
		}
		if err := rssfeeds.ValidateFeedURL(f.URL); err != nil {
			return nil, fmt.Errorf("feeds file entry %d: %w", i+1, err)
		}
		feeds = append(feeds, f)
	}
	return feeds, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
