package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fuelpos/internal/cache"
	"fuelpos/internal/dto"
	"fuelpos/internal/model"
	"fuelpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote is a server-side priced pump entry.
type Quote struct {
	Pump      model.Pump
	Bucket    model.PriceBucket
	Volume    decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

type PricingService interface {
	// ComputePrice prices volume liters on pumpID with the current bucket price.
	ComputePrice(ctx context.Context, pumpID uint, volume string) (*Quote, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error)
	CurrentPrices(ctx context.Context) (*dto.CurrentPricesResponse, error)
	History(ctx context.Context, bucket string, page, limit int) (*dto.PriceHistoryResponse, error)
	// SetPrices appends one row per bucket, all with the same effective date.
	SetPrices(ctx context.Context, createdBy *uuid.UUID, prices map[string]decimal.Decimal) (*dto.CurrentPricesResponse, error)
	ListPumps(ctx context.Context) ([]dto.PumpResponse, error)
}

type pricingService struct {
	prices    repository.PriceRepository
	fuels     repository.FuelRepository
	cache     *cache.PriceCache
	threshold decimal.Decimal
	now       func() time.Time
}

// NewPricingService builds the pricing service. bulkThreshold is in liters;
// volumes at or above it use the bulk bucket. A nil cache disables caching.
func NewPricingService(
	prices repository.PriceRepository,
	fuels repository.FuelRepository,
	priceCache *cache.PriceCache,
	bulkThreshold int,
) PricingService {
	if bulkThreshold <= 0 {
		bulkThreshold = 100
	}
	return &pricingService{
		prices:    prices,
		fuels:     fuels,
		cache:     priceCache,
		threshold: decimal.NewFromInt(int64(bulkThreshold)),
		now:       time.Now,
	}
}

// ParseVolume parses an operator-typed liter amount. Blank, non-numeric,
// zero and negative inputs are rejected, as are amounts the volume column
// cannot hold exactly.
func ParseVolume(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidVolume)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidVolume, s)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be greater than zero", ErrInvalidVolume)
	}
	if !v.Equal(v.Round(model.VolumeScale)) {
		return decimal.Zero, fmt.Errorf("%w: at most %d decimal places", ErrInvalidVolume, model.VolumeScale)
	}
	if v.GreaterThan(model.MaxVolumeLiters) {
		return decimal.Zero, fmt.Errorf("%w: more than %s liters", ErrInvalidVolume, model.MaxVolumeLiters)
	}
	return v.Round(model.VolumeScale), nil
}

// BucketFor picks the rate class for volume liters of fuel.
func (s *pricingService) BucketFor(fuel string, volume decimal.Decimal) model.PriceBucket {
	if volume.LessThan(s.threshold) {
		return model.NormalBucket(fuel)
	}
	return model.BulkBucket(fuel)
}

func (s *pricingService) ComputePrice(ctx context.Context, pumpID uint, volume string) (*Quote, error) {
	v, err := ParseVolume(volume)
	if err != nil {
		return nil, err
	}
	pump, err := s.fuels.FindPump(ctx, pumpID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPump, pumpID)
	}
	if err != nil {
		return nil, err
	}

	bucket := s.BucketFor(pump.FuelType.Name, v)
	current, err := s.currentPrice(ctx, bucket)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Pump:      *pump,
		Bucket:    bucket,
		Volume:    v,
		UnitPrice: current.Price,
		Total:     v.Mul(current.Price).Round(2),
	}, nil
}

func (s *pricingService) Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	q, err := s.ComputePrice(ctx, req.PumpID, req.Volume)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{
		PumpID:    q.Pump.ID,
		Fuel:      q.Pump.FuelType.Name,
		Bucket:    string(q.Bucket),
		Volume:    q.Volume,
		UnitPrice: q.UnitPrice,
		Price:     q.Total.StringFixed(2),
	}, nil
}

func (s *pricingService) currentPrice(ctx context.Context, bucket model.PriceBucket) (*model.Price, error) {
	if p := s.cache.Get(ctx, bucket); p != nil {
		return p, nil
	}
	p, err := s.prices.Current(ctx, bucket)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w for %s", ErrPriceNotSet, bucket)
	}
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, p)
	return p, nil
}

func (s *pricingService) CurrentPrices(ctx context.Context) (*dto.CurrentPricesResponse, error) {
	rows, err := s.prices.CurrentAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceItem, len(rows))
	for i := range rows {
		items[i] = priceToItem(&rows[i])
	}
	return &dto.CurrentPricesResponse{Data: items}, nil
}

func (s *pricingService) History(ctx context.Context, bucket string, page, limit int) (*dto.PriceHistoryResponse, error) {
	if bucket != "" {
		if _, err := s.resolveBuckets(ctx, []string{bucket}); err != nil {
			return nil, err
		}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	rows, total, err := s.prices.History(ctx, model.PriceBucket(bucket), page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceItem, len(rows))
	for i := range rows {
		items[i] = priceToItem(&rows[i])
	}
	return &dto.PriceHistoryResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *pricingService) SetPrices(ctx context.Context, createdBy *uuid.UUID, prices map[string]decimal.Decimal) (*dto.CurrentPricesResponse, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no prices given", ErrInvalidPrice)
	}
	names := make([]string, 0, len(prices))
	for name := range prices {
		names = append(names, name)
	}
	sort.Strings(names)

	fuelIDs, err := s.resolveBuckets(ctx, names)
	if err != nil {
		return nil, err
	}

	effective := s.now().UTC()
	rows := make([]model.Price, 0, len(names))
	for _, name := range names {
		p := prices[name]
		if !p.IsPositive() {
			return nil, fmt.Errorf("%w: %s must be greater than zero", ErrInvalidPrice, name)
		}
		if p.GreaterThan(model.MaxUnitPrice) {
			return nil, fmt.Errorf("%w: %s exceeds %s", ErrInvalidPrice, name, model.MaxUnitPrice)
		}
		bucket := model.PriceBucket(name)
		rows = append(rows, model.Price{
			FuelTypeID:    fuelIDs[bucket],
			Name:          bucket,
			Price:         p.Round(2),
			EffectiveDate: effective,
			CreatedBy:     createdBy,
		})
	}

	if err := runTx(ctx, s.prices.DB(), func(tx *gorm.DB) error {
		return s.prices.AppendTx(ctx, tx, rows)
	}); err != nil {
		return nil, err
	}
	// AppendTx filled in ids and seqs; the new rows outrank any in-flight read.
	s.cache.Publish(ctx, rows...)

	log.Info().Strs("buckets", names).Time("effective_date", effective).Msg("prices updated")
	return s.CurrentPrices(ctx)
}

// resolveBuckets maps each bucket name to its fuel type id, rejecting names
// that are not "<Fuel>" or "<Fuel>100" for a known fuel.
func (s *pricingService) resolveBuckets(ctx context.Context, names []string) (map[model.PriceBucket]uint, error) {
	fuels, err := s.fuels.ListFuelTypes(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uint, len(fuels))
	for _, f := range fuels {
		byName[f.Name] = f.ID
	}
	out := make(map[model.PriceBucket]uint, len(names))
	for _, name := range names {
		b := model.PriceBucket(name)
		id, ok := byName[b.Fuel()]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBucket, name)
		}
		out[b] = id
	}
	return out, nil
}

func (s *pricingService) ListPumps(ctx context.Context) ([]dto.PumpResponse, error) {
	pumps, err := s.fuels.ListPumps(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PumpResponse, len(pumps))
	for i, p := range pumps {
		resp[i] = dto.PumpResponse{ID: p.ID, Label: p.Label, Fuel: p.FuelType.Name}
	}
	return resp, nil
}

func priceToItem(p *model.Price) dto.PriceItem {
	return dto.PriceItem{
		ID:            p.ID.String(),
		Name:          string(p.Name),
		Fuel:          p.Name.Fuel(),
		Bulk:          p.Name.IsBulk(),
		Price:         p.Price,
		EffectiveDate: p.EffectiveDate.UTC().Format(time.RFC3339),
	}
}
