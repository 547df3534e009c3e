package queries

import (
	"context"
	"time"

	"carwash-booking/internal/domain/availability"
	"carwash-booking/internal/infra/cache"
	"carwash-booking/internal/pkg/calendar"

	"github.com/google/uuid"
)

const TagAvailability = "availability"

// AvailabilityCache is the subset of cache.Cache the decorator uses.
type AvailabilityCache interface {
	Fetch(ctx context.Context, key string, policy cache.Policy, load cache.Loader) ([]byte, error)
	InvalidateTags(ctx context.Context, tags ...string)
}

func AvailabilityKey(serviceID uuid.UUID, date calendar.Date) string {
	return "availability:" + serviceID.String() + ":" + date.String()
}

func ServiceTag(serviceID uuid.UUID) string { return "service:" + serviceID.String() }

func DateTag(date calendar.Date) string { return "date:" + date.String() }

// CachedAvailabilityQueries serves CheckAvailability cache-aside and
// implements shared.AvailabilityInvalidator for the write path.
type CachedAvailabilityQueries struct {
	inner            AvailabilityQueries
	cache            AvailabilityCache
	ttl              time.Duration
	refreshThreshold time.Duration
}

func NewCachedAvailabilityQueries(inner AvailabilityQueries, c AvailabilityCache, ttl, refreshThreshold time.Duration) *CachedAvailabilityQueries {
	return &CachedAvailabilityQueries{
		inner:            inner,
		cache:            c,
		ttl:              ttl,
		refreshThreshold: refreshThreshold,
	}
}

func (q *CachedAvailabilityQueries) CheckAvailability(ctx context.Context, serviceID uuid.UUID, date calendar.Date) ([]availability.TimeSlot, error) {
	if date.IsZero() {
		return q.inner.CheckAvailability(ctx, serviceID, date)
	}
	policy := cache.Policy{
		TTL:              q.ttl,
		RefreshThreshold: q.refreshThreshold,
		Tags:             []string{ServiceTag(serviceID), DateTag(date), TagAvailability},
	}
	return cache.GetOrLoad(ctx, q.cache, AvailabilityKey(serviceID, date), policy,
		func(ctx context.Context) ([]availability.TimeSlot, error) {
			return q.inner.CheckAvailability(ctx, serviceID, date)
		})
}

func (q *CachedAvailabilityQueries) ListServices(ctx context.Context) ([]ServiceView, error) {
	return q.inner.ListServices(ctx)
}

// InvalidateAvailability over-invalidates on purpose: every entry of the
// service, every entry of each date, and the availability family.
func (q *CachedAvailabilityQueries) InvalidateAvailability(ctx context.Context, serviceID uuid.UUID, dates ...calendar.Date) {
	tags := make([]string, 0, len(dates)+2)
	tags = append(tags, ServiceTag(serviceID))
	for _, d := range dates {
		tags = append(tags, DateTag(d))
	}
	tags = append(tags, TagAvailability)
	q.cache.InvalidateTags(ctx, tags...)
}
