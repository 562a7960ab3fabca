package outbox

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultBatchSize    = 100

	statusPublished = "published"
	statusFailed    = "failed"
)

// Config параметры публикации
type Config struct {
	PollInterval time.Duration
	BatchSize    int
}

// Publisher переносит события из outbox_events в Kafka.
// Топик совпадает с типом события, ключ сообщения - id записи,
// поэтому события одной записи попадают в одну партицию по порядку.
// Доставка at-least-once: при ошибке записи батч остается неопубликованным.
type Publisher struct {
	writer       Writer
	repo         Repository
	txManager    TransactionManager
	metrics      Metrics
	pollInterval time.Duration
	batchSize    int
	timeProvider TimeProvider
	logger       Logger
}

// NewKafkaWriter создает writer для списка брокеров через запятую
func NewKafkaWriter(brokers string, writeTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(SplitBrokers(brokers)...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}
}

// SplitBrokers разбирает строку "host1:9092,host2:9092"
func SplitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func NewPublisher(writer Writer, repo Repository, txManager TransactionManager, metrics Metrics, cfg Config, logger Logger) *Publisher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	return &Publisher{
		writer:       writer,
		repo:         repo,
		txManager:    txManager,
		metrics:      metrics,
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run публикует события до отмены контекста
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("Outbox publisher started: poll=%s, batch=%d", p.pollInterval, p.batchSize)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Outbox publisher stopped")
			return nil
		case <-ticker.C:
			if _, err := p.PublishBatch(ctx); err != nil {
				p.logger.Error("Outbox publish failed: %v", err)
			}
		}
	}
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// PublishBatch публикует один батч и возвращает количество отправленных событий
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	published := 0

	err := p.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем батч неопубликованных событий
		events, err := p.repo.FetchUnpublished(txCtx, p.batchSize)
		if err != nil {
			return fmt.Errorf("fetch unpublished: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		// 2. Отправляем в Kafka
		msgs := make([]kafka.Message, len(events))
		ids := make([]int64, len(events))
		for i, ev := range events {
			msgs[i] = kafka.Message{
				Topic: ev.EventType,
				Key:   []byte(strconv.FormatInt(ev.AggregateID, 10)),
				Value: ev.Payload,
				Headers: []kafka.Header{
					{Key: "event_id", Value: []byte(ev.EventID)},
					{Key: "event_type", Value: []byte(ev.EventType)},
				},
				Time: ev.CreatedAt,
			}
			ids[i] = ev.ID
		}

		if err := p.writer.WriteMessages(txCtx, msgs...); err != nil {
			for _, ev := range events {
				p.metrics.IncOutboxPublished(ev.EventType, statusFailed)
			}
			return fmt.Errorf("write messages: %w", err)
		}

		// 3. Отмечаем опубликованными
		if err := p.repo.MarkPublished(txCtx, ids, p.timeProvider.Now()); err != nil {
			return fmt.Errorf("mark published: %w", err)
		}

		for _, ev := range events {
			p.metrics.IncOutboxPublished(ev.EventType, statusPublished)
		}
		published = len(events)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if published > 0 {
		p.logger.Info("Outbox: published %d events", published)
	}
	return published, nil
}
