package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"restaurant-pos/internal/common/errs"
)

// Menu sources understood by menu.Load.
const (
	MenuSourceCSV      = "csv"
	MenuSourcePostgres = "postgres"
	MenuSourceSQLite   = "sqlite"
)

type POS struct {
	Port          int `yaml:"port"`
	Tables        int `yaml:"tables"`
	MaxConcurrent int `yaml:"max_concurrent"`
}

type Menu struct {
	Source string `yaml:"source"` // csv | postgres | sqlite
	Path   string `yaml:"path"`   // csv file or sqlite database file
}

type DB struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Pass     string `yaml:"password"`
	Name     string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"`
}

type MQ struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Pass     string `yaml:"password"`
	VHost    string `yaml:"vhost"`
	Exchange string `yaml:"exchange"`
	Queue    string `yaml:"queue"`
	Prefetch int    `yaml:"prefetch"`
}

type App struct {
	POS      POS  `yaml:"pos"`
	Menu     Menu `yaml:"menu"`
	Database DB   `yaml:"database"`
	Rabbit   MQ   `yaml:"rabbitmq"`
}

// Default returns the configuration used when no file is present.
func Default() App {
	return App{
		POS:  POS{Port: 3000, Tables: 13, MaxConcurrent: 50},
		Menu: Menu{Source: MenuSourceCSV, Path: "Speisekarte.csv"},
		Database: DB{
			Port:     5432,
			SSLMode:  "disable",
			MaxConns: 10,
		},
		Rabbit: MQ{
			Port:     5672,
			VHost:    "/",
			Exchange: "pos_events",
			Queue:    "pos.receipts",
			Prefetch: 1,
		},
	}
}

func Load(path string) (App, error) {
	f, err := os.Open(path)
	if err != nil {
		return App{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(r io.Reader) (App, error) {
	a := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil && err != io.EOF {
		return App{}, fmt.Errorf("%w: %v", errs.ErrConfigInvalid, err)
	}
	a.Menu.Source = strings.ToLower(strings.TrimSpace(a.Menu.Source))
	if err := a.Validate(); err != nil {
		return App{}, err
	}
	return a, nil
}

func (a App) Validate() error {
	if a.POS.Port <= 0 || a.POS.Port > 65535 {
		return fmt.Errorf("%w: pos.port %d out of range", errs.ErrConfigInvalid, a.POS.Port)
	}
	if a.POS.Tables < 1 {
		return fmt.Errorf("%w: pos.tables must be positive", errs.ErrConfigInvalid)
	}
	switch a.Menu.Source {
	case MenuSourceCSV, MenuSourceSQLite:
		if a.Menu.Path == "" {
			return fmt.Errorf("%w: menu.path is required for %s menus", errs.ErrConfigInvalid, a.Menu.Source)
		}
	case MenuSourcePostgres:
		if a.Database.Host == "" || a.Database.User == "" || a.Database.Name == "" {
			return fmt.Errorf("%w: database config incomplete", errs.ErrConfigInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown menu.source %q", errs.ErrConfigInvalid, a.Menu.Source)
	}
	if a.Rabbit.Enabled && (a.Rabbit.Host == "" || a.Rabbit.User == "") {
		return fmt.Errorf("%w: rabbitmq config incomplete", errs.ErrConfigInvalid)
	}
	return nil
}

// URL returns a PostgreSQL connection URL.
func (d DB) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.User, d.Pass, d.Host, d.Port, d.Name, d.SSLMode)
}

func (m MQ) URL() string {
	vhost := strings.TrimPrefix(m.VHost, "/")
	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s", m.User, m.Pass, m.Host, m.Port, vhost)
}

// FindConfig returns the first config file that exists.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
