package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Astemirdum/library-loan-service/pkg/kafka"
	"github.com/Astemirdum/library-loan-service/pkg/logger"
	"github.com/Astemirdum/library-loan-service/pkg/postgres"
	"github.com/Astemirdum/library-loan-service/pkg/sqlite"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LOAN_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"LOAN_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"5s"`
	WriteTimeout time.Duration
}

type IdentityHTTPServer struct {
	Host string `envconfig:"IDENTITY_HTTP_HOST"`
	Port string `envconfig:"IDENTITY_HTTP_PORT"`
}

type InventoryHTTPServer struct {
	Host string `envconfig:"INVENTORY_HTTP_HOST"`
	Port string `envconfig:"INVENTORY_HTTP_PORT"`
}

type Storage string

const (
	StoragePostgres Storage = "postgres"
	StorageSQLite   Storage = "sqlite"
)

type Loan struct {
	DefaultDurationDays int           `envconfig:"LOAN_DEFAULT_DURATION_DAYS" default:"14"`
	MaxOpen             int           `envconfig:"LOAN_MAX_OPEN" default:"3"`
	SweepInterval       time.Duration `envconfig:"SWEEP_INTERVAL" default:"60s"`
}

type Config struct {
	Server              HTTPServer `yaml:"server"`
	Storage             Storage    `envconfig:"STORAGE" default:"postgres"`
	Database            postgres.DB
	SQLite              sqlite.Config
	Kafka               kafka.Config
	IdentityHTTPServer  IdentityHTTPServer
	InventoryHTTPServer InventoryHTTPServer
	RemoteTimeout       time.Duration `envconfig:"REMOTE_TIMEOUT" default:"3s"`
	Loan                Loan
	Log                 logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	cfg.Database.Password = "***"
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
