package config

import (
	"time"

	"quicknotes/utils"
)

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "quicknotes"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

// MediaConfig configures the S3-compatible store holding note attachments.
// BaseURL is the public delivery root; when empty it is derived from the
// endpoint and bucket.
type MediaConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	BaseURL   string
	Folder    string
}

func LoadMediaConfig() MediaConfig {
	return MediaConfig{
		Endpoint:  utils.GetEnvAsString("MEDIA_ENDPOINT", "localhost:9000"),
		AccessKey: utils.GetEnvAsString("MEDIA_ACCESS_KEY", ""),
		SecretKey: utils.GetEnvAsString("MEDIA_SECRET_KEY", ""),
		Bucket:    utils.GetEnvAsString("MEDIA_BUCKET", "quicknotes"),
		UseSSL:    utils.GetEnvAsBool("MEDIA_USE_SSL", false),
		BaseURL:   utils.GetEnvAsString("MEDIA_BASE_URL", ""),
		Folder:    utils.GetEnvAsString("MEDIA_FOLDER", "quicknotes_media"),
	}
}

// SpeechConfig configures the external text-to-speech converter process.
type SpeechConfig struct {
	Python    string
	Script    string
	OutputDir string
}

func LoadSpeechConfig() SpeechConfig {
	return SpeechConfig{
		Python:    utils.GetEnvAsString("TTS_PYTHON", "python3"),
		Script:    utils.GetEnvAsString("TTS_SCRIPT", "tts_script.py"),
		OutputDir: utils.GetEnvAsString("TTS_OUTPUT_DIR", ""),
	}
}

type RedisConfig struct {
	URL string
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL: utils.GetEnvAsString("REDIS_URL", ""),
	}
}
