package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/sizeformat"
)

// RecommendInput is one calculation request as the delivery layer hands it
// over: the engine request plus the caller-side context the engine itself
// must not know about.
type RecommendInput struct {
	// ClientID keys the last-recommendation cache. Empty disables caching
	// for this call.
	ClientID string
	// Retailer names a stored size chart to fall back on when the request
	// carries no table rows.
	Retailer string
	Request  domain.RecommendationRequest
}

// RecommendationService routes calculation requests to the right engine and
// owns everything the pure engines must not: chart lookup, the
// last-recommendation cache and logging.
type RecommendationService struct {
	tops    *TopsEngine
	bottoms *BottomsEngine
	shoes   *ShoesEngine
	charts  domain.ChartRepository
	cache   domain.CacheRepository
	logger  zerolog.Logger
	ttl     time.Duration
}

// NewRecommendationService wires the three engines together. Charts and
// cache may be nil; the service then skips chart fallback and caching.
func NewRecommendationService(charts domain.ChartRepository, cache domain.CacheRepository, logger zerolog.Logger, ttl time.Duration) *RecommendationService {
	return &RecommendationService{
		tops:    NewTopsEngine(),
		bottoms: NewBottomsEngine(),
		shoes:   NewShoesEngine(),
		charts:  charts,
		cache:   cache,
		logger:  logger,
		ttl:     ttl,
	}
}

// Recommend computes a size recommendation. The category tag picks the
// engine; an unknown tag is inferred from the shape of the supplied data
// when possible. The finished result is re-expressed in the store's offered
// vocabulary and cached as the client's most recent recommendation.
func (s *RecommendationService) Recommend(ctx context.Context, in RecommendInput) (*domain.SizeRecommendation, error) {
	req := in.Request
	category := req.Category
	if category == domain.CategoryUnknown || category == "" {
		category = inferCategory(req)
	}
	s.loadStoredChart(ctx, in.Retailer, category, &req)

	var (
		rec *domain.SizeRecommendation
		err error
	)
	switch category {
	case domain.CategoryTop:
		rec, err = s.tops.Recommend(req)
	case domain.CategoryBottom:
		rec, err = s.bottoms.Recommend(req)
	case domain.CategoryShoes:
		rec, err = s.shoes.Recommend(req)
	default:
		return nil, domain.ErrUnknownCategory
	}
	if err != nil {
		return nil, err
	}

	finishRecommendation(rec, req)

	s.logger.Debug().
		Str("category", string(rec.Category)).
		Str("size", rec.Size).
		Float64("confidence", rec.Confidence).
		Bool("dual", rec.IsDual).
		Msg("recommendation computed")

	if s.cache != nil && in.ClientID != "" {
		if cacheErr := s.cache.Set(ctx, in.ClientID, rec, s.ttl); cacheErr != nil {
			s.logger.Warn().Err(cacheErr).Str("client", in.ClientID).Msg("failed to cache recommendation")
		}
	}
	return rec, nil
}

// LastRecommendation returns the client's most recent recommendation, if it
// is still cached.
func (s *RecommendationService) LastRecommendation(ctx context.Context, clientID string) (*domain.SizeRecommendation, error) {
	if s.cache == nil || clientID == "" {
		return nil, domain.ErrCacheMiss
	}
	return s.cache.Get(ctx, clientID)
}

// loadStoredChart fills in table rows from the retailer's stored chart when
// the page itself exposed none. A missing chart is not an error; the tiers
// that need no table still apply.
func (s *RecommendationService) loadStoredChart(ctx context.Context, retailer string, category domain.Category, req *domain.RecommendationRequest) {
	if s.charts == nil || retailer == "" || len(req.TableRows) > 0 {
		return
	}
	if category == domain.CategoryUnknown || category == "" {
		return
	}
	rows, offered, err := s.charts.GetChart(ctx, retailer, category)
	if err != nil {
		s.logger.Debug().Err(err).Str("retailer", retailer).Msg("no stored chart")
		return
	}
	req.TableRows = rows
	if len(req.OfferedSizes) == 0 {
		req.OfferedSizes = offered
	}
}

// inferCategory guesses the category from the shape of the data when the
// scraper could not tag the garment.
func inferCategory(req domain.RecommendationRequest) domain.Category {
	for _, row := range req.TableRows {
		if row.FootLengthCM > 0 {
			return domain.CategoryShoes
		}
	}
	if hasChestColumn(req.TableRows) {
		return domain.CategoryTop
	}
	if hasWaistColumn(req.TableRows) {
		return domain.CategoryBottom
	}
	for _, label := range req.OfferedSizes {
		if sizeformat.IsWxLLabel(label) {
			return domain.CategoryBottom
		}
	}
	return domain.CategoryUnknown
}

// finishRecommendation snaps the final labels onto the store's offered
// spelling where possible and re-checks the dual invariant afterwards.
func finishRecommendation(rec *domain.SizeRecommendation, req domain.RecommendationRequest) {
	offered := req.OfferedSizes
	if len(offered) > 0 {
		if match, ok := sizeformat.MatchOffered(rec.Size, offered); ok {
			rec.Size = match
		}
		if rec.IsDual {
			if match, ok := sizeformat.MatchOffered(rec.SecondarySize, offered); ok {
				rec.SecondarySize = match
			}
		}
	}

	if !rec.IsDual {
		return
	}
	replacement, keep := sizeformat.ResolveDuplicate(rec.Size, rec.SecondarySize, offered)
	if !keep {
		rec.CancelDual()
		return
	}
	rec.SecondarySize = replacement
}
