package shipping

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
)

type Rate struct {
	Zone          Zone        `json:"zone"`
	Modality      Modality    `json:"modality"`
	Cost          money.Money `json:"cost"           swaggertype:"string" example:"10.00"`
	EstimatedDays string      `json:"estimated_days" example:"1 - 2 días"`
}

// RateTable is the read side the order engine depends on. A missing pair is
// reported as apperr.ErrRateNotFound, never replaced by a default.
type RateTable interface {
	GetRate(ctx context.Context, zone Zone, modality Modality) (Rate, error)
	List(ctx context.Context) ([]Rate, error)
}

// RateAdmin is the out-of-band write side used by the admin endpoint.
type RateAdmin interface {
	RateTable
	Upsert(ctx context.Context, r Rate) error
}

type rateKey struct {
	zone     Zone
	modality Modality
}

// StaticRates is an in-memory RateAdmin.
type StaticRates struct {
	mu    sync.RWMutex
	rates map[rateKey]Rate
}

var _ RateAdmin = (*StaticRates)(nil)

func NewStaticRates(rates ...Rate) *StaticRates {
	s := &StaticRates{rates: make(map[rateKey]Rate, len(rates))}
	for _, r := range rates {
		s.rates[rateKey{r.Zone, r.Modality}] = r
	}
	return s
}

func (s *StaticRates) GetRate(_ context.Context, zone Zone, modality Modality) (Rate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rates[rateKey{zone, modality}]
	if !ok {
		return Rate{}, fmt.Errorf("shipping.StaticRates.GetRate: %s/%s: %w", zone, modality, apperr.ErrRateNotFound)
	}
	return r, nil
}

func (s *StaticRates) List(_ context.Context) ([]Rate, error) {
	s.mu.RLock()
	out := make([]Rate, 0, len(s.rates))
	for _, r := range s.rates {
		out = append(out, r)
	}
	s.mu.RUnlock()

	SortRates(out)
	return out, nil
}

func (s *StaticRates) Upsert(_ context.Context, r Rate) error {
	s.mu.Lock()
	s.rates[rateKey{r.Zone, r.Modality}] = r
	s.mu.Unlock()
	return nil
}

// SortRates orders rates by tariff zone, then modality.
func SortRates(rates []Rate) {
	zoneIdx := make(map[Zone]int, len(Zones))
	for i, z := range Zones {
		zoneIdx[z] = i
	}
	sort.SliceStable(rates, func(i, j int) bool {
		if rates[i].Zone != rates[j].Zone {
			return zoneIdx[rates[i].Zone] < zoneIdx[rates[j].Zone]
		}
		return rates[i].Modality > rates[j].Modality
	})
}

// DefaultRates mirrors the seed migration.
func DefaultRates() []Rate {
	return []Rate{
		{ZoneLimaLocal, ModalityDomicilio, money.MustParse("10.00"), "1 - 2 días"},
		{ZoneLimaLocal, ModalityAgencia, money.MustParse("8.00"), "1 - 2 días"},
		{ZoneLimaProvincias, ModalityDomicilio, money.MustParse("15.00"), "2 - 3 días"},
		{ZoneLimaProvincias, ModalityAgencia, money.MustParse("12.00"), "2 - 3 días"},
		{ZoneCostaNacional, ModalityDomicilio, money.MustParse("20.00"), "3 - 5 días"},
		{ZoneCostaNacional, ModalityAgencia, money.MustParse("15.00"), "3 - 5 días"},
		{ZoneSierraSelva, ModalityDomicilio, money.MustParse("25.00"), "4 - 7 días"},
		{ZoneSierraSelva, ModalityAgencia, money.MustParse("18.00"), "4 - 7 días"},
		{ZoneZonasRemotas, ModalityDomicilio, money.MustParse("35.00"), "7 - 10 días"},
		{ZoneZonasRemotas, ModalityAgencia, money.MustParse("25.00"), "7 - 10 días"},
	}
}
