package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/events"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/pkg/kafka"
)

func TestLoanLog_Publish(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Errors = true
	producer := mocks.NewAsyncProducer(t, cfg)

	loan := model.Loan{
		ID:         "0b8f6f5e-7f64-4a3b-9d0b-0c6f2d5d7b11",
		UserID:     1,
		BookID:     2,
		BorrowedAt: time.Now(),
		Status:     model.StatusActive,
	}
	producer.ExpectInputWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev kafka.EventLoan
		if err := jsoniter.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.EventType != kafka.EventLoanCreated || ev.LoanID != loan.ID || ev.UserID != 1 || ev.BookID != 2 {
			return errors.Errorf("unexpected event %+v", ev)
		}
		if ev.Status != string(model.StatusActive) {
			return errors.Errorf("unexpected status %q", ev.Status)
		}
		return nil
	})
	producer.ExpectInputAndFail(errors.New("broker down"))

	pub := events.NewLoanLog(producer, kafka.LoanTopic, zap.NewExample().Named("test"))
	pub.Publish(context.Background(), kafka.EventLoanCreated, loan)
	pub.Publish(context.Background(), kafka.EventLoanReturned, loan)

	require.NoError(t, producer.Close())
}

func TestNop(t *testing.T) {
	require.NotPanics(t, func() {
		events.Nop().Publish(context.Background(), kafka.EventLoanOverdue, model.Loan{})
	})
}
