package bootstrap

import (
	"context"

	"hotel-checkout/internal/infra/mailer"
	"hotel-checkout/internal/pkg/config"

	"github.com/IBM/sarama"
	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewKafkaProducer,
	),
)

func NewKafkaProducer(lc fx.Lifecycle, cfg config.Config) (sarama.SyncProducer, error) {
	producer, err := mailer.NewSyncProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}
