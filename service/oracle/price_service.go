package oracle

import (
	"context"
	"fmt"
	"time"

	"reservoir/core"
	"reservoir/pkg/reservoir"
	"reservoir/pkg/resthttp"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PriceService price service
type PriceService struct {
	db               *db.DB
	config           *core.Config
	priceStore       core.PriceStore
	transactionStore core.TransactionStore
}

// New new oracle price service
func New(
	db *db.DB,
	config *core.Config,
	priceStore core.PriceStore,
	transactionStore core.TransactionStore,
) core.PriceOracleService {
	return &PriceService{
		db:               db,
		config:           config,
		priceStore:       priceStore,
		transactionStore: transactionStore,
	}
}

// GetPrice current valid price of an asset
func (s *PriceService) GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	price, err := s.priceStore.Find(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	if price.ID == 0 {
		return decimal.Zero, core.ErrPriceNotFound
	}

	if price.Price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, core.ErrInvalidPrice
	}

	if maxAge := s.config.PriceOracle.MaxAge; maxAge > 0 {
		if time.Now().Unix()-price.UpdatedAt.Unix() > maxAge {
			return decimal.Zero, core.ErrStalePrice
		}
	}

	return price.Price, nil
}

// GetUSDValue usd value of an asset amount at the current price
func (s *PriceService) GetUSDValue(ctx context.Context, assetID string, amount decimal.Decimal) (decimal.Decimal, error) {
	price, err := s.GetPrice(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(price).Truncate(8), nil
}

// PullPriceTicker pull price ticker from the remote feed
func (s *PriceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.config.PriceOracle.EndPoint, assetID, t.UTC().Unix())
	logger.FromContext(ctx).Infoln("pull price:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	if ticker.Provider == "" {
		ticker.Provider = s.config.PriceOracle.Provider
	}

	return &ticker, nil
}

// ProvidePrice record a price point, the single write path of the oracle
func (s *PriceService) ProvidePrice(ctx context.Context, req *core.ProvidePriceReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithField("event", "provide_price")
	ctx = logger.WithContext(ctx, log)

	transaction, err := s.transactionStore.FindByTraceID(ctx, req.TraceID)
	if err != nil {
		log.WithError(err).Errorln("transactions.FindByTraceID")
		return nil, err
	}

	if transaction.ID > 0 {
		return transaction, nil
	}

	if err := reservoir.Require(req.Price.IsPositive(), "oracle/invalid-price"); err != nil {
		log.WithError(err).Infoln("reject: invalid price")
		return nil, core.ErrInvalidPrice
	}

	price, err := s.priceStore.Find(ctx, req.AssetID)
	if err != nil {
		log.WithError(err).Errorln("prices.Find")
		return nil, err
	}

	if price.ID > 0 && price.Price.IsPositive() {
		if err := reservoir.Require(s.withinDeviation(price.Price, req.Price), "oracle/deviation"); err != nil {
			log.WithError(err).Infoln("reject: price deviates too far")
			return nil, core.ErrPriceDeviation
		}
	}

	provider := req.Provider
	if provider == "" {
		provider = s.config.PriceOracle.Provider
	}

	next := &core.Price{
		AssetID:    req.AssetID,
		Symbol:     req.Symbol,
		Price:      req.Price.Truncate(8),
		Confidence: req.Confidence.Truncate(8),
		LastPrice:  price.Price,
		Providers:  pq.StringArray{provider},
		UpdatedAt:  time.Now(),
	}

	if next.Symbol == "" {
		next.Symbol = price.Symbol
	}

	// another provider confirming the standing price joins its provider
	// list, a new price starts the list over
	if price.ID > 0 && price.Price.Equal(next.Price) {
		next.Providers = price.Providers
		if !govalidator.IsIn(provider, next.Providers...) {
			next.Providers = append(next.Providers, provider)
		}
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyAssetID, req.AssetID)
	extra.Put(core.TransactionKeyAmount, next.Price)

	transaction = core.BuildTransaction(provider, req.TraceID, core.ActionTypeProvidePrice, req.AssetID, next.Price, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.priceStore.Save(ctx, tx, next); err != nil {
			log.WithError(err).Errorln("prices.Save")
			return err
		}

		if err := s.transactionStore.Create(ctx, tx, transaction); err != nil {
			log.WithError(err).Errorln("transactions.Create")
			return err
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return transaction, nil
}

func (s *PriceService) withinDeviation(last, next decimal.Decimal) bool {
	maxDeviation := s.config.PriceOracle.MaxDeviation
	if maxDeviation.LessThanOrEqual(decimal.Zero) {
		return true
	}

	move := next.Sub(last).Abs().Div(last)
	return move.LessThanOrEqual(maxDeviation)
}
