// Command seed replaces the locality coverage table from the operator-edited
// YAML file and drops the cached copy so running instances pick up the change
// on their next read.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"profast-parcel-service/internal/config"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/logx"
	"profast-parcel-service/internal/repository"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	table, err := loadLocalities(cfg.Policy.LocalitiesPath)
	if err != nil {
		return err
	}

	pool, err := repository.NewPool(ctx, cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := repository.NewLocalityRepo(pool)
	if err := repo.ReplaceAll(ctx, table); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer rdb.Close()

	cache := repository.NewCachedLocalityStore(repo, rdb, cfg.Redis.TTL, logx.Nop())
	if err := cache.Invalidate(ctx); err != nil {
		log.Printf("warning: cache invalidate failed: %v", err)
	}

	log.Printf("seeded %d localities from %s", len(table), cfg.Policy.LocalitiesPath)
	return nil
}

type localityFile struct {
	Localities []struct {
		Region   string `yaml:"region"`
		District string `yaml:"district"`
	} `yaml:"localities"`
}

func loadLocalities(path string) (domain.LocalityTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f localityFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Localities) == 0 {
		return nil, fmt.Errorf("%s lists no localities", path)
	}

	table := make(domain.LocalityTable, 0, len(f.Localities))
	for _, l := range f.Localities {
		table = append(table, domain.Locality{Region: l.Region, District: l.District})
	}
	return table, nil
}
