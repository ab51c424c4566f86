package config

import "os"

type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	NATSURL   string
	HTTPPort  string
	RulesPath string // optional YAML rule-table override
}

func Load() *Config {
	return &Config{
		MongoURI:  getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnvOrDefault("MONGO_DB", "playercare"),
		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		NATSURL:   getEnvOrDefault("NATS_URL", "nats://localhost:4222"),
		HTTPPort:  getEnvOrDefault("HTTP_PORT", "8080"),
		RulesPath: os.Getenv("RULES_PATH"),
	}
}
