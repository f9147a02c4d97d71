package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	TokenSecret string            `yaml:"token_secret" env:"TOKEN_SECRET" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConfig       `yaml:"redis"`
	Catalog     CatalogConfig     `yaml:"catalog"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"8080"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"http://localhost:8080/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"10485760"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env-default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CatalogConfig struct {
	StoreBaseURL string        `yaml:"store_base_url" env-default:"https://fakestoreapi.com"`
	PhotoBaseURL string        `yaml:"photo_base_url" env-default:"https://api.unsplash.com"`
	PhotoAPIKey  string        `yaml:"photo_api_key" env:"PHOTO_API_KEY"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
