package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"cliniva/config"
	"cliniva/services/scheduling"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeExpireHold = "reservation:expire_hold"

type expireHoldPayload struct {
	ReservationID string `json:"reservationId"`
}

// HoldExpiryScheduler enqueues a delayed sweep task for each hold. The ledger
// already ignores expired holds on read; the task just tidies the record.
type HoldExpiryScheduler struct {
	Client *asynq.Client
}

func NewHoldExpiryScheduler() *HoldExpiryScheduler {
	return &HoldExpiryScheduler{
		Client: asynq.NewClient(queueRedisOpts()),
	}
}

func (s *HoldExpiryScheduler) ScheduleExpiry(reservationID string, delay time.Duration) error {
	payload, err := json.Marshal(expireHoldPayload{ReservationID: reservationID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeExpireHold, payload)
	_, err = s.Client.Enqueue(task, asynq.ProcessIn(delay), asynq.MaxRetry(3))
	return err
}

// InitExpiryWorker runs the async worker in background.
func InitExpiryWorker(engine scheduling.Engine) {
	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpireHold, handleExpireHoldTask(engine))

	go monitorRedisConnection()

	go func() {
		log.Println("[ExpiryWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExpireHoldTask(engine scheduling.Engine) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p expireHoldPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] Invalid payload: %v", err)
			return err
		}
		if err := engine.ExpireHold(ctx, p.ReservationID); err != nil {
			log.Printf("[ExpiryHandler] Failed to expire hold %s: %v", p.ReservationID, err)
			return err
		}
		return nil
	}
}

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ExpiryWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
