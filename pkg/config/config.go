package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// New reads the configuration from the environment.
func New() (Config, error) {
	basePath, err := requireEnv("BASE_PATH")
	if err != nil {
		return Config{}, err
	}

	pg, err := newPostgresql()
	if err != nil {
		return Config{}, err
	}

	auth, err := newAuthentication()
	if err != nil {
		return Config{}, err
	}

	adminService, err := newAdminService()
	if err != nil {
		return Config{}, err
	}

	rb, err := newRabbitMQ()
	if err != nil {
		return Config{}, err
	}

	port, err := envAsInt("PORT", 8080)
	if err != nil {
		return Config{}, err
	}

	logPretty, err := envAsBool("LOG_PRETTY", false)
	if err != nil {
		return Config{}, err
	}

	return Config{
		BasePath:       basePath,
		Port:           port,
		Postgresql:     pg,
		Authentication: auth,
		AdminService:   adminService,
		RabbitMQ:       rb,
		ClustersFile:   os.Getenv("CLUSTERS_FILE"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogPretty:      logPretty,
	}, nil
}

type Config struct {
	BasePath       string
	Port           int
	Postgresql     Postgresql
	Authentication Authentication
	AdminService   AdminService
	// RabbitMQ is nil if change events are not published to RabbitMQ.
	RabbitMQ *RabbitMQ
	// ClustersFile is an optional YAML file of clusters created on start-up.
	ClustersFile string
	LogLevel     string
	LogPretty    bool
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

func newPostgresql() (Postgresql, error) {
	host, err := requireEnv("DATABASE_HOST")
	if err != nil {
		return Postgresql{}, err
	}
	port, err := requireEnvAsInt("DATABASE_PORT")
	if err != nil {
		return Postgresql{}, err
	}
	username, err := requireEnv("DATABASE_USERNAME")
	if err != nil {
		return Postgresql{}, err
	}
	password, err := requireEnv("DATABASE_PASSWORD")
	if err != nil {
		return Postgresql{}, err
	}
	name, err := requireEnv("DATABASE_NAME")
	if err != nil {
		return Postgresql{}, err
	}

	return Postgresql{
		Host:         host,
		Port:         port,
		Username:     username,
		Password:     password,
		DatabaseName: name,
	}, nil
}

// Authentication holds the console credentials. Only the bcrypt hash of the password is
// configured.
type Authentication struct {
	Username     string
	PasswordHash []byte
}

func newAuthentication() (Authentication, error) {
	username, err := requireEnv("CONSOLE_USERNAME")
	if err != nil {
		return Authentication{}, err
	}
	hash, err := requireEnv("CONSOLE_PASSWORD_HASH")
	if err != nil {
		return Authentication{}, err
	}

	return Authentication{
		Username:     username,
		PasswordHash: []byte(hash),
	}, nil
}

type AdminService struct {
	Path     string
	Username string
	Password string
	Timeout  time.Duration
}

func newAdminService() (AdminService, error) {
	timeout, err := envAsDuration("ADMIN_SERVICE_TIMEOUT", 30*time.Second)
	if err != nil {
		return AdminService{}, err
	}

	return AdminService{
		Path:     os.Getenv("ADMIN_SERVICE_PATH"),
		Username: os.Getenv("ADMIN_SERVICE_USERNAME"),
		Password: os.Getenv("ADMIN_SERVICE_PASSWORD"),
		Timeout:  timeout,
	}, nil
}

type RabbitMQ struct {
	Host     string
	Port     int
	Username string
	Password string
	Exchange string
}

// newRabbitMQ returns nil if RABBITMQ_HOST isn't set. Once it is, the remaining connection
// settings are required.
func newRabbitMQ() (*RabbitMQ, error) {
	host, ok := os.LookupEnv("RABBITMQ_HOST")
	if !ok {
		return nil, nil
	}
	port, err := requireEnvAsInt("RABBITMQ_PORT")
	if err != nil {
		return nil, err
	}
	username, err := requireEnv("RABBITMQ_USERNAME")
	if err != nil {
		return nil, err
	}
	password, err := requireEnv("RABBITMQ_PASSWORD")
	if err != nil {
		return nil, err
	}
	exchange := os.Getenv("RABBITMQ_EXCHANGE")
	if exchange == "" {
		exchange = "channel-admin"
	}

	return &RabbitMQ{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Exchange: exchange,
	}, nil
}

func (r RabbitMQ) GetUrl() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.Username, r.Password, r.Host, r.Port)
}

func requireEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return "", fmt.Errorf("can't find environment variable: %s", key)
	}
	return value, nil
}

func requireEnvAsInt(key string) (int, error) {
	valueStr, err := requireEnv(key)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("can't parse value of %s as integer: %v", key, err)
	}
	return value, nil
}

func envAsInt(key string, fallback int) (int, error) {
	if _, ok := os.LookupEnv(key); !ok {
		return fallback, nil
	}
	return requireEnvAsInt(key)
}

func envAsBool(key string, fallback bool) (bool, error) {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("can't parse value of %s as boolean: %v", key, err)
	}
	return value, nil
}

func envAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("can't parse value of %s as duration: %v", key, err)
	}
	return value, nil
}
