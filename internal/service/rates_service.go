package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/apperrors"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/hmrc"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/repository"
)

// providerTokenKey is the system_settings key holding the encrypted
// exchange-rate provider API token.
const providerTokenKey = "rates_provider_token"

// RatesService manages stored exchange rates and the scheduled refresh from
// the external provider. The provider API token is kept fernet-encrypted in
// the settings table; only this service holds the key.
type RatesService struct {
	rateRepo    *repository.ExchangeRateRepository
	settingRepo *repository.SettingRepository
	baseURL     string
	fernetKey   string
	log         *slog.Logger
}

// NewRatesService creates a new RatesService with the provided dependencies.
func NewRatesService(
	rateRepo *repository.ExchangeRateRepository,
	settingRepo *repository.SettingRepository,
	baseURL string,
	fernetKey string,
	log *slog.Logger,
) *RatesService {
	return &RatesService{
		rateRepo:    rateRepo,
		settingRepo: settingRepo,
		baseURL:     baseURL,
		fernetKey:   fernetKey,
		log:         log,
	}
}

// GetRate returns the stored rate for a currency on a date. Falls back to the
// most recent earlier rate when the exact date has no entry (weekends and
// holidays have no published rates).
func (s *RatesService) GetRate(currency string, date time.Time) (model.ExchangeRate, error) {
	rate, err := s.rateRepo.GetRate(currency, date)
	if err != nil {
		return model.ExchangeRate{}, err
	}
	if rate.ID != "" {
		return rate, nil
	}

	latest, err := s.rateRepo.GetLatestRate(currency)
	if err != nil {
		return model.ExchangeRate{}, err
	}
	if latest.ID == "" || latest.Date.After(date) {
		return model.ExchangeRate{}, apperrors.ErrExchangeRateNotFound
	}
	return latest, nil
}

// SetRate stores a manually supplied rate for a currency/date pair.
func (s *RatesService) SetRate(rate model.ExchangeRate) error {
	return s.rateRepo.UpsertRate(rate)
}

// SetProviderToken encrypts and stores the provider API token.
func (s *RatesService) SetProviderToken(token string) error {
	key, err := fernet.DecodeKey(s.fernetKey)
	if err != nil {
		return fmt.Errorf("invalid fernet key: %w", err)
	}
	encrypted, err := fernet.EncryptAndSign([]byte(token), key)
	if err != nil {
		return fmt.Errorf("failed to encrypt provider token: %w", err)
	}
	return s.settingRepo.SetSetting(providerTokenKey, string(encrypted))
}

// providerToken retrieves and decrypts the stored provider API token.
// Returns an empty string when no token has been configured; the provider
// accepts unauthenticated requests at a reduced quota.
func (s *RatesService) providerToken() (string, error) {
	encrypted, err := s.settingRepo.GetSetting(providerTokenKey)
	if err != nil {
		return "", err
	}
	if encrypted == "" {
		return "", nil
	}

	key, err := fernet.DecodeKey(s.fernetKey)
	if err != nil {
		return "", fmt.Errorf("invalid fernet key: %w", err)
	}
	// TTL 0: stored tokens do not expire.
	token := fernet.VerifyAndDecrypt([]byte(encrypted), 0, []*fernet.Key{key})
	if token == nil {
		return "", fmt.Errorf("failed to decrypt provider token")
	}
	return string(token), nil
}

// RefreshRates fetches the latest published rates for every currency present
// in the transaction history and stores them. Called by the scheduler and on
// demand through the API.
//
// Returns the number of rates stored.
func (s *RatesService) RefreshRates(ctx context.Context) (int, error) {
	currencies, err := s.rateRepo.ListCurrencies()
	if err != nil {
		return 0, err
	}
	if len(currencies) == 0 {
		s.log.Info("no foreign currencies in transaction history, skipping rates refresh")
		return 0, nil
	}

	token, err := s.providerToken()
	if err != nil {
		return 0, err
	}

	client := hmrc.NewRatesClient(s.baseURL, token)
	table, err := client.QueryLatest(currencies)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshRates, err)
	}

	stored := 0
	for _, currency := range currencies {
		if err := ctx.Err(); err != nil {
			return stored, err
		}
		rate, ok := table.RateForCurrency(currency)
		if !ok {
			s.log.Warn("provider returned no rate", "currency", currency)
			continue
		}
		err := s.rateRepo.UpsertRate(model.ExchangeRate{
			Currency: currency,
			Date:     table.Date,
			Rate:     rate,
		})
		if err != nil {
			return stored, err
		}
		stored++
	}

	s.log.Info("refreshed exchange rates", "currencies", stored, "date", table.Date.Format("2006-01-02"))
	return stored, nil
}
