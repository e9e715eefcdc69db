package tracker

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limit is the token bucket setting of one company.
type Limit struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

type companyLimiter struct {
	limiter *rate.Limiter
	custom  bool
}

// RateLimiterStore keeps one token bucket per company. Companies without an
// override share the default setting but never a bucket.
type RateLimiterStore struct {
	mu       sync.Mutex
	fallback Limit
	limiters map[string]*companyLimiter
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		fallback: Limit{Rate: float64(defaultRate), Burst: defaultBurst},
		limiters: map[string]*companyLimiter{},
	}
}

func (s *RateLimiterStore) entry(company string) *companyLimiter {
	e, ok := s.limiters[company]
	if !ok {
		e = &companyLimiter{limiter: rate.NewLimiter(rate.Limit(s.fallback.Rate), s.fallback.Burst)}
		s.limiters[company] = e
	}
	return e
}

func (s *RateLimiterStore) GetLimiter(company string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry(company).limiter
}

// SetLimiter overrides the setting of company with a fresh, full bucket.
func (s *RateLimiterStore) SetLimiter(company string, companyRate rate.Limit, companyBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[company] = &companyLimiter{
		limiter: rate.NewLimiter(companyRate, companyBurst),
		custom:  true,
	}
}

// Reset drops the override of company so it falls back to the default.
// It reports whether an override existed.
func (s *RateLimiterStore) Reset(company string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.limiters[company]
	if !ok || !e.custom {
		return false
	}
	delete(s.limiters, company)
	return true
}

// Limits returns the current setting of company and whether it is an override.
func (s *RateLimiterStore) Limits(company string) (Limit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(company)
	return Limit{Rate: float64(e.limiter.Limit()), Burst: e.limiter.Burst()}, e.custom
}

func (s *RateLimiterStore) Default() Limit {
	return s.fallback
}

// Allow reports whether a request of company may proceed. A nil store allows everything.
func (s *RateLimiterStore) Allow(company string) bool {
	if s == nil {
		return true
	}
	return s.GetLimiter(company).Allow()
}
