package controllers

import (
	"net/http"

	"github.com/angelmondragon/tradedir-backend/api/responses"
	"github.com/angelmondragon/tradedir-backend/api/validators"
	"github.com/angelmondragon/tradedir-backend/internal/directory"
	"github.com/angelmondragon/tradedir-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/tradedir-backend/pkg/errors"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
	"github.com/angelmondragon/tradedir-backend/pkg/pagination"
)

const maxSlugLength = 200

// DirectoryProducts serves the tier-ranked public product search. Bad paging
// values are clamped, never rejected.
func DirectoryProducts(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "directory service unavailable"))
			return
		}

		input := directory.SearchInput{
			Query:     validators.QueryString(r, "q", directory.MaxQueryLength),
			MicroSlug: validators.QueryString(r, "microSlug", maxSlugLength),
			StateID:   validators.QueryString(r, "stateId", 0),
			CityID:    validators.QueryString(r, "cityId", 0),
			Sort:      enums.NormalizeProductSort(r.URL.Query().Get("sort")),
			Page:      validators.ClampQueryInt(r, "page", pagination.DefaultPage, 1, pagination.MaxPage),
			Limit:     validators.ClampQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit),
		}

		page, err := svc.Search(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, page.Listings, page.Count)
	}
}

// DirectoryTiers lists the ranking tiers, highest priority first.
func DirectoryTiers(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "directory service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Tiers())
	}
}
