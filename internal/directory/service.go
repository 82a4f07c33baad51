package directory

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/angelmondragon/tradedir-backend/internal/subscriptions"
	"github.com/angelmondragon/tradedir-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/tradedir-backend/pkg/errors"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
	"github.com/angelmondragon/tradedir-backend/pkg/metrics"
	"github.com/angelmondragon/tradedir-backend/pkg/pagination"
	"github.com/angelmondragon/tradedir-backend/pkg/tiers"
)

// MaxQueryLength is the longest free-text query, in characters.
const MaxQueryLength = 100

// Service exposes the public directory search.
type Service interface {
	Search(ctx context.Context, input SearchInput) (*ResultPage, error)
	Tiers() []tiers.Descriptor
}

// SearchInput is a normalized directory request. StateID and CityID are kept
// raw: a value that is present but not a UUID matches nothing.
type SearchInput struct {
	Query     string            `json:"q" validate:"max=100"`
	MicroSlug string            `json:"microSlug" validate:"max=200"`
	StateID   string            `json:"stateId"`
	CityID    string            `json:"cityId"`
	Sort      enums.ProductSort `json:"sort" validate:"oneof=newest price_asc price_desc"`
	Page      int               `json:"page" validate:"min=1,max=5000"`
	Limit     int               `json:"limit" validate:"min=1,max=50"`
}

// SubscriptionResolver resolves the vendor tier assignments at an instant.
type SubscriptionResolver interface {
	Resolve(ctx context.Context, now time.Time) (*subscriptions.Assignments, error)
}

// CategoryResolver maps a micro-category slug to its id.
type CategoryResolver interface {
	ResolveMicroSlug(ctx context.Context, slug string) (*uuid.UUID, error)
}

// ServiceParams wires the directory service.
type ServiceParams struct {
	Listings       ListingSource
	Subscriptions  SubscriptionResolver
	Categories     CategoryResolver
	Logger         *logger.Logger
	Metrics        *metrics.DirectoryMetrics
	Clock          func() time.Time
	ParallelCounts bool
}

type service struct {
	paginator  *Paginator
	subs       SubscriptionResolver
	categories CategoryResolver
	logg       *logger.Logger
	metrics    *metrics.DirectoryMetrics
	now        func() time.Time
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// NewService builds the directory service.
func NewService(params ServiceParams) (Service, error) {
	if params.Listings == nil {
		return nil, errors.New("listing source required")
	}
	if params.Subscriptions == nil {
		return nil, errors.New("subscription resolver required")
	}
	if params.Categories == nil {
		return nil, errors.New("category resolver required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		paginator:  NewPaginator(params.Listings, params.ParallelCounts, params.Metrics),
		subs:       params.Subscriptions,
		categories: params.Categories,
		logg:       logg,
		metrics:    params.Metrics,
		now:        clock,
	}, nil
}

// Search returns one page of the tier-ranked directory.
func (s *service) Search(ctx context.Context, input SearchInput) (page *ResultPage, err error) {
	start := time.Now()
	defer func() {
		returned := 0
		if page != nil {
			returned = len(page.Listings)
		}
		s.metrics.ObserveSearch(time.Since(start), returned, err)
	}()

	input = input.normalize()
	if err := validate.Struct(input); err != nil {
		return nil, formatValidationErrors(err)
	}

	empty := &ResultPage{Listings: []Listing{}, Page: input.Page, Limit: input.Limit}
	filters := Filters{
		Query: strings.TrimSpace(input.Query),
		Sort:  input.Sort,
	}

	var ok bool
	if filters.StateID, ok = parseOptionalID(input.StateID); !ok {
		return empty, nil
	}
	if filters.CityID, ok = parseOptionalID(input.CityID); !ok {
		return empty, nil
	}

	if slug := strings.TrimSpace(input.MicroSlug); slug != "" {
		categoryID, err := s.categories.ResolveMicroSlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if categoryID == nil {
			s.logg.Debug(s.logg.WithField(ctx, "micro_slug", slug), "directory.unknown_category")
			return empty, nil
		}
		filters.CategoryID = categoryID
	}

	assignments, err := s.subs.Resolve(ctx, s.now())
	if err != nil {
		return nil, err
	}

	params := pagination.Params{Page: input.Page, Limit: input.Limit}
	result, err := s.paginator.Paginate(ctx, filters, params, assignments)
	if err != nil {
		return nil, err
	}

	s.logSummary(ctx, params, assignments, result)

	return &ResultPage{
		Listings: annotate(result.Rows, assignments),
		Count:    result.Total,
		Page:     input.Page,
		Limit:    input.Limit,
	}, nil
}

// normalize clamps paging into range and maps unknown sort modes to newest.
// Only the free-text bounds are left for validation to reject.
func (in SearchInput) normalize() SearchInput {
	params := pagination.Params{Page: in.Page, Limit: in.Limit}.Normalize()
	in.Page = params.Page
	in.Limit = params.Limit
	in.Sort = enums.NormalizeProductSort(string(in.Sort))
	return in
}

// Tiers returns the tier table in priority order.
func (s *service) Tiers() []tiers.Descriptor {
	return tiers.Table()
}

func (s *service) logSummary(ctx context.Context, params pagination.Params, assignments *subscriptions.Assignments, result *PageResult) {
	visited := make([]string, 0, len(result.Segments))
	for _, stat := range result.Segments {
		visited = append(visited, fmt.Sprintf("%s:%d/%d", stat.Name, stat.Fetched, stat.Count))
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"page":             params.Page,
		"limit":            params.Limit,
		"assigned_vendors": assignments.Len(),
		"segments":         visited,
		"total":            result.Total,
		"returned":         len(result.Rows),
		"page_vendors":     len(vendorIDsOf(result.Rows)),
	})
	if result.ExclusionCapped {
		s.logg.Warn(ctx, "directory.remainder_exclusion_capped")
	}
	s.logg.Debug(ctx, "directory.search")
}

// parseOptionalID parses raw as a UUID. Empty input yields nil and true; a
// malformed value yields false.
func parseOptionalID(raw string) (*uuid.UUID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid search parameters").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid search parameters")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}
