package kafka

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const (
	LoanTopic = "loans"
)

type Config struct {
	Addrs  []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	Enable bool     `yaml:"enable" envconfig:"KAFKA_ENABLE"`
}

type EventType string

const (
	EventLoanCreated  EventType = "LOAN_CREATED"
	EventLoanReturned EventType = "LOAN_RETURNED"
	EventLoanOverdue  EventType = "LOAN_OVERDUE"
)

type EventLoan struct {
	Timestamp time.Time `json:"timestamp"`
	EventType EventType `json:"event_type"`
	LoanID    string    `json:"loan_id"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	Status    string    `json:"status"`
}

func NewAsyncProducer(cfg Config) (sarama.AsyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForLocal
	defaultCfg.Producer.Return.Errors = true
	defaultCfg.Producer.Retry.Max = 3
	defaultCfg.Producer.Flush.Frequency = 100 * time.Millisecond

	return sarama.NewAsyncProducer(cfg.Addrs, defaultCfg)
}

// CreateTopics creates missing topics with one partition and replication factor 1.
func CreateTopics(cfg Config, topics ...string) error {
	admin, err := sarama.NewClusterAdmin(cfg.Addrs, sarama.NewConfig())
	if err != nil {
		return errors.Wrap(err, "sarama.NewClusterAdmin")
	}
	defer admin.Close()

	existing, err := admin.ListTopics()
	if err != nil {
		return errors.Wrap(err, "admin.ListTopics")
	}
	for _, topic := range topics {
		if _, ok := existing[topic]; ok {
			continue
		}
		if err := admin.CreateTopic(topic, &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		}, false); err != nil {
			return errors.Wrapf(err, "create topic %s", topic)
		}
	}
	return nil
}
