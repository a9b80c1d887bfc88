package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/config"
	"github.com/m-bikko/freedom-hackathon/internal/models"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

func InitRedis(cfg *config.Config) {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Error conectando a Redis: %v", err)
	}

	log.Println("✅ Redis OK.")
}

// =======================================================
//  Helpers JSON para usar desde los servicios
// =======================================================

// GetJSON lee una key de Redis, si existe deserializa el JSON en `dest`.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		// no existe la clave
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa `value` a JSON y lo guarda en Redis con TTL en segundos.
func SetJSON(ctx context.Context, key string, value any, ttlSeconds int) error {
	if client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	return client.Set(ctx, key, b, ttl).Err()
}

// =======================================================
//  Estado de jobs (reemplaza al dict global processing_status)
// =======================================================

const jobStatusTTL = 24 * 60 * 60 // 24h, igual que la retención de archivos

func jobStatusKey(jobID string) string {
	return "job:" + jobID + ":status"
}

// SetJobStatus guarda el estado de una corrida; lo escribe el worker y lo
// leen en paralelo el polling HTTP y el WebSocket.
func SetJobStatus(ctx context.Context, jobID string, st *models.JobStatus) error {
	return SetJSON(ctx, jobStatusKey(jobID), st, jobStatusTTL)
}

// GetJobStatus devuelve (status, encontrado, error).
func GetJobStatus(ctx context.Context, jobID string) (*models.JobStatus, bool, error) {
	var st models.JobStatus
	ok, err := GetJSON(ctx, jobStatusKey(jobID), &st)
	if err != nil || !ok {
		return nil, false, err
	}
	return &st, true, nil
}
