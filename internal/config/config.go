package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type DirectoryConfig struct {
	Env            string `yaml:"env"`
	HTTPServer     `yaml:"http_server"`
	DirectoryDB    `yaml:"directory_db"`
	LogConfig      `yaml:"log_config"`
	KafkaService   `yaml:"kafka-service"`
	GeocodeService `yaml:"geocode-service"`
	Retention      `yaml:"retention"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type DirectoryDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"directory-events"`
}

type GeocodeService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Retention struct {
	// Days a soft-deleted business is kept before the sweep removes it.
	Days int `yaml:"days" env-default:"90"`
	// Sweep interval in minutes.
	SweepIntervalMin int `yaml:"sweep_interval_min" env-default:"1440"`
}

func MustLoad() *DirectoryConfig {

	// Processing env config variable and file
	configPath := os.Getenv("DIRECTORY_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("DIRECTORY_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg DirectoryConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
