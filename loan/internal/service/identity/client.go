package identity

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

// Client reads users from the identity owner.
type Client struct {
	log     *zap.Logger
	client  *http.Client
	baseURL string
	cb      circuit_breaker.CircuitBreaker
}

func NewClient(log *zap.Logger, cfg config.IdentityHTTPServer, timeout time.Duration) *Client {
	cbCfg := circuit_breaker.DefaultConfig
	cbCfg.IsFailure = func(err error) bool {
		return errors.Is(err, errs.ErrRemoteUnavailable)
	}
	return &Client{
		log:     log.Named("identity"),
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

func (c *Client) Exists(ctx context.Context, userID int64) (bool, error) {
	_, err := c.Lookup(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Client) Lookup(ctx context.Context, userID int64) (model.UserSummary, error) {
	var user model.UserSummary
	err := retry.Do(ctx, lookupBackoff(), func(ctx context.Context) error {
		return retryable(c.cb.Call(func() error {
			u, err := c.getUser(ctx, userID)
			if err != nil {
				return err
			}
			user = u
			return nil
		}))
	})
	if errors.Is(err, circuit_breaker.ErrOpenCB) {
		return model.UserSummary{}, errors.Wrap(errs.ErrRemoteUnavailable, "identity: circuit breaker is open")
	}
	return user, err
}

func (c *Client) getUser(ctx context.Context, userID int64) (model.UserSummary, error) {
	url := fmt.Sprintf("%s/users/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return model.UserSummary{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return model.UserSummary{}, errors.Wrapf(errs.ErrRemoteUnavailable, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return model.UserSummary{}, errs.NotFound(errs.EntityUser, userID)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck
		c.log.Warn("unexpected status", zap.String("url", url), zap.Int("code", resp.StatusCode), zap.ByteString("body", body))
		return model.UserSummary{}, errors.Wrapf(errs.ErrRemoteUnavailable, "GET %s: status %d", url, resp.StatusCode)
	}

	var user model.UserSummary
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return model.UserSummary{}, errors.Wrapf(errs.ErrRemoteUnavailable, "decode user %d: %v", userID, err)
	}
	return user, nil
}
