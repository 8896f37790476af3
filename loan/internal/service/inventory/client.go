package inventory

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/config"
	"github.com/Astemirdum/library-loan-service/loan/internal/errs"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/pkg/circuit_breaker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the inventory owner. Reserve and release are atomic on its side
// and are never retried here.
type Client struct {
	log     *zap.Logger
	client  *http.Client
	baseURL string
	cb      circuit_breaker.CircuitBreaker
}

func NewClient(log *zap.Logger, cfg config.InventoryHTTPServer, timeout time.Duration) *Client {
	cbCfg := circuit_breaker.DefaultConfig
	cbCfg.IsFailure = func(err error) bool {
		return errors.Is(err, errs.ErrRemoteUnavailable)
	}
	return &Client{
		log:     log.Named("inventory"),
		client:  &http.Client{Timeout: timeout},
		baseURL: fmt.Sprintf("http://%s/api/v1", net.JoinHostPort(cfg.Host, cfg.Port)),
		cb:      circuit_breaker.New(cbCfg),
	}
}

// lookupBackoff allows two more attempts after a transient failure.
func lookupBackoff() retry.Backoff {
	return retry.WithMaxRetries(2, retry.WithJitterPercent(30, retry.NewExponential(10*time.Millisecond)))
}

// retryable marks transient failures for retry.Do.
func retryable(err error) error {
	if errors.Is(err, errs.ErrRemoteUnavailable) {
		return retry.RetryableError(err)
	}
	return err
}

func (c *Client) Lookup(ctx context.Context, bookID int64) (model.BookSummary, error) {
	var book model.BookSummary
	err := retry.Do(ctx, lookupBackoff(), func(ctx context.Context) error {
		return retryable(c.call(func() error {
			b, _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/books/%d", c.baseURL, bookID), bookID)
			if err != nil {
				return err
			}
			book = b
			return nil
		}))
	})
	return book, err
}

func (c *Client) ReserveCopy(ctx context.Context, bookID int64) (model.CopyResult, error) {
	return c.copyOp(ctx, bookID, "reserve")
}

func (c *Client) ReleaseCopy(ctx context.Context, bookID int64) (model.CopyResult, error) {
	return c.copyOp(ctx, bookID, "release")
}

func (c *Client) copyOp(ctx context.Context, bookID int64, op string) (model.CopyResult, error) {
	var res model.CopyResult
	err := c.call(func() error {
		book, code, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/books/%d/%s", c.baseURL, bookID, op), bookID)
		if err != nil {
			return err
		}
		res = model.CopyResult{
			OK:             code == http.StatusOK,
			AvailableAfter: book.Available,
		}
		if res.OK {
			res.Book = &book
		}
		return nil
	})
	if err != nil {
		return model.CopyResult{}, err
	}
	if !res.OK {
		c.log.Info("copy operation refused", zap.String("op", op), zap.Int64("bookId", bookID))
	}
	return res, nil
}

func (c *Client) call(fn func() error) error {
	err := c.cb.Call(fn)
	if errors.Is(err, circuit_breaker.ErrOpenCB) {
		return errors.Wrap(errs.ErrRemoteUnavailable, "inventory: circuit breaker is open")
	}
	return err
}

// do returns the decoded book snapshot and the status code. A 409 is a refusal, not an error.
func (c *Client) do(ctx context.Context, method, url string, bookID int64) (model.BookSummary, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return model.BookSummary{}, 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return model.BookSummary{}, 0, errors.Wrapf(errs.ErrRemoteUnavailable, "%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusConflict:
		var book model.BookSummary
		_ = json.NewDecoder(resp.Body).Decode(&book) //nolint:errcheck
		return book, resp.StatusCode, nil
	case http.StatusNotFound:
		return model.BookSummary{}, resp.StatusCode, errs.NotFound(errs.EntityBook, bookID)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck
		c.log.Warn("unexpected status", zap.String("url", url), zap.Int("code", resp.StatusCode), zap.ByteString("body", body))
		return model.BookSummary{}, resp.StatusCode, errors.Wrapf(errs.ErrRemoteUnavailable, "%s %s: status %d", method, url, resp.StatusCode)
	}

	var book model.BookSummary
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return model.BookSummary{}, resp.StatusCode, errors.Wrapf(errs.ErrRemoteUnavailable, "decode book %d: %v", bookID, err)
	}
	return book, resp.StatusCode, nil
}
