package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"go.uber.org/zap"
)

const (
	DefaultBanksURL = "https://api.vietqr.io/v2/banks"
	BanksCacheKey   = "vietqr:banks"
	BanksCacheTTL   = 24 * time.Hour
)

var ErrBankDirectory = errors.New("bank directory unavailable")

type banksResponse struct {
	Code string        `json:"code"`
	Desc string        `json:"desc"`
	Data []domain.Bank `json:"data"`
}

// BankDirectory proxies the VietQR bank list and keeps a copy in Redis.
type BankDirectory struct {
	client *http.Client
	url    string
	cache  *redis.Client
	logger *zap.Logger
}

func NewBankDirectory(client *http.Client, url string, cache *redis.Client, logger *zap.Logger) *BankDirectory {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if url == "" {
		url = DefaultBanksURL
	}
	return &BankDirectory{client: client, url: url, cache: cache, logger: logger}
}

func (d *BankDirectory) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	if d.cache != nil {
		raw, err := d.cache.Get(ctx, BanksCacheKey).Bytes()
		if err == nil {
			var banks []domain.Bank
			if err := json.Unmarshal(raw, &banks); err == nil {
				return banks, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			d.logger.Warn("bank cache read failed", zap.Error(err))
		}
	}

	banks, err := d.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if raw, err := json.Marshal(banks); err == nil {
			if err := d.cache.Set(ctx, BanksCacheKey, raw, BanksCacheTTL).Err(); err != nil {
				d.logger.Warn("bank cache write failed", zap.Error(err))
			}
		}
	}

	return banks, nil
}

func (d *BankDirectory) fetch(ctx context.Context) ([]domain.Bank, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build bank list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBankDirectory, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream returned %d", ErrBankDirectory, resp.StatusCode)
	}

	var body banksResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrBankDirectory, err)
	}

	if body.Code != "00" {
		return nil, fmt.Errorf("%w: upstream code %q %s", ErrBankDirectory, body.Code, body.Desc)
	}

	return body.Data, nil
}
