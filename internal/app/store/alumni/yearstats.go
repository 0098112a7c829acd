package alumnistore

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// recalcConcurrency bounds parallel year writes during RecalculateAll.
const recalcConcurrency = 4

// ErrYearExists is returned when creating stats for a year that already has them.
var ErrYearExists = apperr.Invalid("stats for this year already exist; update them instead")

// YearStatsStore holds per-year graduate counts, keyed by year.
type YearStatsStore struct {
	*crud.Repository[models.AlumniYearStats]
	alumni *FeaturedStore
}

func NewYearStats(ds docstore.Store, alumni *FeaturedStore) *YearStatsStore {
	return &YearStatsStore{
		Repository: crud.New(ds, crud.Schema[models.AlumniYearStats]{
			Collection: YearStatsCollection,
			Sort:       []docstore.Sort{docstore.Desc("year")},
			Immutable:  []string{"year"},
			Prepare: func(y *models.AlumniYearStats) error {
				y.Year = strings.TrimSpace(y.Year)
				y.Count = strings.TrimSpace(y.Count)
				return nil
			},
		}),
		alumni: alumni,
	}
}

// Create records a manually entered count. The year is the record's key; a
// year that already has stats fails with ErrYearExists.
func (s *YearStatsStore) Create(ctx context.Context, y models.AlumniYearStats, email string) (models.AlumniYearStats, error) {
	y.AutoCalculated = false
	y.Year = strings.TrimSpace(y.Year)
	if err := crud.Validate(&y); err != nil {
		return models.AlumniYearStats{}, err
	}
	if _, err := s.GetByID(ctx, y.Year); err == nil {
		return models.AlumniYearStats{}, ErrYearExists
	} else if !apperr.Is(err, apperr.NotFound) {
		return models.AlumniYearStats{}, err
	}
	return s.Upsert(ctx, y.Year, y, email)
}

// Update edits a year's record. Changing the count by hand clears
// autoCalculated unless the patch sets it.
func (s *YearStatsStore) Update(ctx context.Context, year string, patch crud.Patch, email string) (models.AlumniYearStats, error) {
	if _, ok := patch["count"]; ok {
		if _, set := patch["autoCalculated"]; !set {
			patch["autoCalculated"] = json.RawMessage("false")
		}
	}
	return s.Repository.Update(ctx, year, patch, email)
}

// CalculateYearStats counts the alumni profiles graduating in year.
func (s *YearStatsStore) CalculateYearStats(ctx context.Context, year string) (int, error) {
	items, err := s.alumni.ByGraduationYear(ctx, year)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// RecalculateAll rewrites the count of every graduation year present among
// alumni profiles, replacing manual counts for those years. Years with no
// profiles are left alone.
func (s *YearStatsStore) RecalculateAll(ctx context.Context, email string) ([]models.AlumniYearStats, error) {
	all, err := s.alumni.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, a := range all {
		if a.GraduationYear != "" {
			counts[a.GraduationYear]++
		}
	}
	years := make([]string, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	out := make([]models.AlumniYearStats, len(years))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recalcConcurrency)
	for i, year := range years {
		g.Go(func() error {
			saved, err := s.Upsert(gctx, year, models.AlumniYearStats{
				Year:           year,
				Count:          strconv.Itoa(counts[year]),
				AutoCalculated: true,
			}, email)
			if err != nil {
				return err
			}
			out[i] = saved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
