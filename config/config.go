package config

import (
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allowOrigins"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

// AdminConfig drives the session engine. Secret may be plaintext or a
// bcrypt hash.
type AdminConfig struct {
	Secret     string        `mapstructure:"secret"`
	UserID     string        `mapstructure:"userID"`
	SessionTTL time.Duration `mapstructure:"sessionTTL"`
	LoginDelay time.Duration `mapstructure:"loginDelay"`
}

// GeoConfig is the service area rectangle. Coordinates outside it are
// rejected everywhere.
type GeoConfig struct {
	LatMin float64 `mapstructure:"latMin"`
	LatMax float64 `mapstructure:"latMax"`
	LngMin float64 `mapstructure:"lngMin"`
	LngMax float64 `mapstructure:"lngMax"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
}

type SeedConfig struct {
	File string `mapstructure:"file"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Geo    GeoConfig    `mapstructure:"geo"`
	Redis  RedisConfig  `mapstructure:"redis"`
	S3     S3Config     `mapstructure:"s3"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

// LoadConfig reads config.yaml from path and overlays environment
// variables. A missing file is fine, env alone is enough.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("admin.secret", "ADMIN_SECRET")
	viper.BindEnv("admin.userID", "ADMIN_USER_ID")
	viper.BindEnv("admin.sessionTTL", "ADMIN_SESSION_TTL")
	viper.BindEnv("admin.loginDelay", "ADMIN_LOGIN_DELAY")
	viper.BindEnv("geo.latMin", "GEO_LAT_MIN")
	viper.BindEnv("geo.latMax", "GEO_LAT_MAX")
	viper.BindEnv("geo.lngMin", "GEO_LNG_MIN")
	viper.BindEnv("geo.lngMax", "GEO_LNG_MAX")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("redis.ttl", "REDIS_TTL")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("seed.file", "SEED_FILE")

	setDefaults()

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.dbName", "facility_registry")
	viper.SetDefault("admin.userID", "admin")
	viper.SetDefault("admin.sessionTTL", "4h")
	viper.SetDefault("admin.loginDelay", "1s")
	// Puerto Rico service area.
	viper.SetDefault("geo.latMin", 17.5)
	viper.SetDefault("geo.latMax", 18.6)
	viper.SetDefault("geo.lngMin", -67.5)
	viper.SetDefault("geo.lngMax", -65.0)
	viper.SetDefault("redis.ttl", "5m")
}
