package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"dsa_sheet/internal/domain/model"
	"dsa_sheet/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const (
	topicsCacheKey   = "catalog:topics"
	problemsCacheKey = "catalog:problems"
)

// CatalogService serves the shared topic/problem catalog. The catalog is
// immutable after seeding, so reads go through a TTL-bound Redis cache; a nil
// client disables caching.
type CatalogService struct {
	topicRepo   repository.TopicRepository
	problemRepo repository.ProblemRepository
	rdb         *redis.Client
	cacheTTL    time.Duration
}

func NewCatalogService(topicRepo repository.TopicRepository, problemRepo repository.ProblemRepository, rdb *redis.Client, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		topicRepo:   topicRepo,
		problemRepo: problemRepo,
		rdb:         rdb,
		cacheTTL:    cacheTTL,
	}
}

func (s *CatalogService) ListTopics(ctx context.Context) ([]model.Topic, error) {
	var topics []model.Topic
	if s.cacheGet(ctx, topicsCacheKey, &topics) {
		return topics, nil
	}

	topics, err := s.topicRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, topicsCacheKey, topics)
	return topics, nil
}

func (s *CatalogService) ListProblems(ctx context.Context) ([]model.Problem, error) {
	var problems []model.Problem
	if s.cacheGet(ctx, problemsCacheKey, &problems) {
		return problems, nil
	}

	problems, err := s.problemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, problemsCacheKey, problems)
	return problems, nil
}

// Cache failures only cost the round trip to Postgres, so they are logged and
// swallowed rather than surfaced to the caller.
func (s *CatalogService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.rdb == nil {
		return false
	}
	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[catalog cache] get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		log.Printf("[catalog cache] decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("[catalog cache] encode %s: %v", key, err)
		return
	}
	if err := s.rdb.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		log.Printf("[catalog cache] set %s: %v", key, err)
	}
}
