package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/tradedir-backend/internal/subscriptions"
	pkgerrors "github.com/angelmondragon/tradedir-backend/pkg/errors"
	"github.com/angelmondragon/tradedir-backend/pkg/metrics"
	"github.com/angelmondragon/tradedir-backend/pkg/pagination"
	"github.com/angelmondragon/tradedir-backend/pkg/tiers"
)

// MaxExclusionIDs bounds the NOT IN list of the remainder segment. Above it
// the exclusion is dropped and the remainder covers every vendor, so listings
// of tiered vendors are counted and returned a second time.
const MaxExclusionIDs = 1000

// RemainderSegment names the vendors without an active subscription.
const RemainderSegment = "remainder"

type segment struct {
	name  string
	scope Scope
}

// SegmentStat reports what the fold did with one segment.
type SegmentStat struct {
	Name    string
	Count   int64
	Fetched int
}

// PageResult is the raw, unannotated output of one pagination run.
type PageResult struct {
	Rows            []Listing
	Total           int64
	Segments        []SegmentStat
	ExclusionCapped bool
}

// foldState is the accumulator carried across segments in priority order.
type foldState struct {
	skip      int
	remaining int
	rows      []Listing
	total     int64
	stats     []SegmentStat
}

// Paginator stitches one page across the tier segments and the remainder.
type Paginator struct {
	source         ListingSource
	parallelCounts bool
	metrics        *metrics.DirectoryMetrics
}

// NewPaginator builds a paginator over source. With parallelCounts every
// segment is counted concurrently before the fetch fold runs.
func NewPaginator(source ListingSource, parallelCounts bool, m *metrics.DirectoryMetrics) *Paginator {
	return &Paginator{source: source, parallelCounts: parallelCounts, metrics: m}
}

// buildSegments lists the non-empty tier buckets in priority order followed
// by the remainder segment.
func buildSegments(filters Filters, assignments *subscriptions.Assignments) ([]segment, bool) {
	byTier := assignments.ByTier()
	segments := make([]segment, 0, tiers.Count+1)
	for _, t := range tiers.Ordered() {
		ids := byTier[t]
		if len(ids) == 0 {
			continue
		}
		segments = append(segments, segment{
			name:  t.Key(),
			scope: Scope{Filters: filters, Vendors: VendorScope{Include: ids}},
		})
	}

	exclude := assignments.VendorIDs()
	capped := len(exclude) > MaxExclusionIDs
	if capped {
		exclude = nil
	}
	segments = append(segments, segment{
		name:  RemainderSegment,
		scope: Scope{Filters: filters, Vendors: VendorScope{Exclude: exclude}},
	})
	return segments, capped
}

// Paginate returns the requested page and the match total across all
// segments. Any count or fetch failure aborts the whole page.
func (p *Paginator) Paginate(ctx context.Context, filters Filters, params pagination.Params, assignments *subscriptions.Assignments) (*PageResult, error) {
	params = params.Normalize()
	segments, capped := buildSegments(filters, assignments)

	counts, err := p.prefetchCounts(ctx, segments)
	if err != nil {
		return nil, err
	}

	state := foldState{
		skip:      params.Offset(),
		remaining: params.Limit,
		rows:      make([]Listing, 0, params.Limit),
	}
	for i, seg := range segments {
		var n int64
		if counts != nil {
			n = counts[i]
		} else if n, err = p.count(ctx, seg); err != nil {
			return nil, err
		}
		if state, err = p.step(ctx, state, seg, n); err != nil {
			return nil, err
		}
	}

	return &PageResult{
		Rows:            state.rows,
		Total:           state.total,
		Segments:        state.stats,
		ExclusionCapped: capped,
	}, nil
}

// step folds one segment into the accumulator. Every segment contributes to
// the total; rows are fetched only while the page still has room.
func (p *Paginator) step(ctx context.Context, st foldState, seg segment, count int64) (foldState, error) {
	st.total += count
	stat := SegmentStat{Name: seg.name, Count: count}

	switch {
	case count == 0, st.remaining <= 0:
		st.stats = append(st.stats, stat)
		return st, nil
	case int64(st.skip) >= count:
		st.skip -= int(count)
		st.stats = append(st.stats, stat)
		return st, nil
	}

	rows, err := p.fetch(ctx, seg, st.skip, st.remaining)
	if err != nil {
		return st, err
	}
	stat.Fetched = len(rows)
	st.rows = append(st.rows, rows...)
	st.remaining -= len(rows)
	st.skip = 0
	st.stats = append(st.stats, stat)
	return st, nil
}

func (p *Paginator) count(ctx context.Context, seg segment) (int64, error) {
	p.metrics.IncQuery(seg.name, metrics.OpCount)
	n, err := p.source.Count(ctx, seg.scope)
	if err != nil {
		return 0, pkgerrors.Query(err, fmt.Sprintf("failed to count %s listings", seg.name))
	}
	return n, nil
}

func (p *Paginator) fetch(ctx context.Context, seg segment, offset, limit int) ([]Listing, error) {
	p.metrics.IncQuery(seg.name, metrics.OpFetch)
	rows, err := p.source.Fetch(ctx, seg.scope, offset, limit)
	if err != nil {
		return nil, pkgerrors.Query(err, fmt.Sprintf("failed to fetch %s listings", seg.name))
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// prefetchCounts counts every segment concurrently. It returns nil when the
// paginator counts inline during the fold.
func (p *Paginator) prefetchCounts(ctx context.Context, segments []segment) ([]int64, error) {
	if !p.parallelCounts {
		return nil, nil
	}
	counts := make([]int64, len(segments))
	g, gctx := errgroup.WithContext(ctx)
	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			n, err := p.count(gctx, seg)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// vendorIDsOf returns the distinct vendors present in rows, in order.
func vendorIDsOf(rows []Listing) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	out := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.VendorID]; ok {
			continue
		}
		seen[row.VendorID] = struct{}{}
		out = append(out, row.VendorID)
	}
	return out
}
