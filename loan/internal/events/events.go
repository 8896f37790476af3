package events

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/pkg/kafka"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type loanLog struct {
	producer sarama.AsyncProducer
	topic    string
	log      *zap.Logger
	now      func() time.Time
}

// NewLoanLog publishes loan events on producer. Delivery errors are logged
// until the producer is closed.
func NewLoanLog(producer sarama.AsyncProducer, topic string, log *zap.Logger) *loanLog {
	l := &loanLog{
		producer: producer,
		topic:    topic,
		log:      log.Named("events"),
		now:      time.Now,
	}
	go l.drainErrors()
	return l
}

func (l *loanLog) drainErrors() {
	for err := range l.producer.Errors() {
		l.log.Error("publish loan event", zap.Error(err.Err), zap.String("topic", err.Msg.Topic))
	}
}

func (l *loanLog) Publish(ctx context.Context, et kafka.EventType, loan model.Loan) {
	data, err := json.Marshal(kafka.EventLoan{
		Timestamp: l.now().UTC(),
		EventType: et,
		LoanID:    loan.ID,
		UserID:    loan.UserID,
		BookID:    loan.BookID,
		Status:    string(loan.Status),
	})
	if err != nil {
		l.log.Error("marshal loan event", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: l.topic,
		Key:   sarama.StringEncoder(loan.ID),
		Value: sarama.ByteEncoder(data),
	}
	select {
	case l.producer.Input() <- msg:
	case <-ctx.Done():
		l.log.Warn("loan event dropped", zap.String("type", string(et)), zap.String("loanId", loan.ID))
	}
}

type nop struct{}

// Nop discards every event.
func Nop() nop {
	return nop{}
}

func (nop) Publish(context.Context, kafka.EventType, model.Loan) {}
