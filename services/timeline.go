package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/repositorycache"
	"github.com/goliatone/go-progeny-cache/store"
)

const timeLineItemView = "item"

// OnThisDayPeriod is how far back an OnThisDay request looks.
type OnThisDayPeriod int

const (
	OnThisDayPeriodWeek OnThisDayPeriod = iota + 1
	OnThisDayPeriodMonth
	OnThisDayPeriodQuarter
	OnThisDayPeriodYear
)

// Start returns the first instant of the window ending at end.
func (p OnThisDayPeriod) Start(end time.Time) (time.Time, error) {
	switch p {
	case OnThisDayPeriodWeek:
		return end.AddDate(0, 0, -7), nil
	case OnThisDayPeriodMonth:
		return end.AddDate(0, -1, 0), nil
	case OnThisDayPeriodQuarter:
		return end.AddDate(0, -3, 0), nil
	case OnThisDayPeriodYear:
		return end.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown on this day period %d", p)
	}
}

// OnThisDayRequest selects a page of timeline items for one progeny.
type OnThisDayRequest struct {
	ProgenyId       int
	ThisDayDate     time.Time
	OnThisDayPeriod OnThisDayPeriod
	// AccessLevel is the highest item access level returned.
	AccessLevel int
	// TagFilter is a comma separated list; an item matches when it has any of them.
	TagFilter string
	// TimeLineTypeFilter limits item types; empty means every type.
	TimeLineTypeFilter []int
	Skip               int
	// NumberOfItems of zero returns every remaining item.
	NumberOfItems int
}

type OnThisDayResponse struct {
	TimeLineItems  []*models.TimeLineItem
	RemainingItems int
	Request        OnThisDayRequest
}

// TimeLineService serves timeline items listed by progeny and looked up by
// the record they point at.
type TimeLineService struct {
	items *repositorycache.Service[models.TimeLineItem]
}

func NewTimeLineService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *TimeLineService {
	return &TimeLineService{
		items: repositorycache.New[models.TimeLineItem](store.New[models.TimeLineItem](db), cacheService, repositorycache.Definition[models.TimeLineItem]{
			Tag:      "timeline",
			ID:       func(t *models.TimeLineItem) int { return t.TimeLineId },
			IDColumn: "time_line_id",
			Views: []repositorycache.ListView[models.TimeLineItem]{
				byProgeny(func(t *models.TimeLineItem) int { return t.ProgenyId }),
				{
					Name:   timeLineItemView,
					Values: func(t *models.TimeLineItem) []any { return []any{t.Ref()} },
					Where: func(v any) store.SelectCriteria {
						ref := v.(models.ItemRef)
						return store.All(store.Where("item_id", ref.ItemId), store.Where("item_type", ref.ItemType))
					},
				},
			},
		}, repositorycache.WithLogger(logger)),
	}
}

func (s *TimeLineService) GetTimeLineItem(ctx context.Context, id int) (*models.TimeLineItem, error) {
	return s.items.Get(ctx, id)
}

// GetTimeLineItemByItemId returns the timeline entry of a record, or nil.
func (s *TimeLineService) GetTimeLineItemByItemId(ctx context.Context, itemID string, itemType int) (*models.TimeLineItem, error) {
	items, err := s.items.GetListBy(ctx, timeLineItemView, models.ItemRef{ItemId: itemID, ItemType: itemType})
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

func (s *TimeLineService) GetTimeLineList(ctx context.Context, progenyID int) ([]*models.TimeLineItem, error) {
	return s.items.GetList(ctx, progenyID)
}

func (s *TimeLineService) AddTimeLineItem(ctx context.Context, item *models.TimeLineItem) (*models.TimeLineItem, error) {
	if item.CreatedTime.IsZero() {
		item.CreatedTime = time.Now().UTC()
	}
	return s.items.Add(ctx, item)
}

func (s *TimeLineService) UpdateTimeLineItem(ctx context.Context, item *models.TimeLineItem) (*models.TimeLineItem, error) {
	return s.items.Update(ctx, item)
}

func (s *TimeLineService) DeleteTimeLineItem(ctx context.Context, item *models.TimeLineItem) error {
	return s.items.Delete(ctx, item)
}

// GetOnThisDayData filters the progeny's cached timeline to the request
// window [ThisDayDate - period, ThisDayDate], newest first, and returns one page.
func (s *TimeLineService) GetOnThisDayData(ctx context.Context, req OnThisDayRequest) (*OnThisDayResponse, error) {
	start, err := req.OnThisDayPeriod.Start(req.ThisDayDate)
	if err != nil {
		return nil, err
	}

	all, err := s.items.GetList(ctx, req.ProgenyId)
	if err != nil {
		return nil, err
	}

	tags := splitTags(req.TagFilter)
	matched := make([]*models.TimeLineItem, 0, len(all))
	for _, item := range all {
		if item.ProgenyTime.Before(start) || item.ProgenyTime.After(req.ThisDayDate) {
			continue
		}
		if item.AccessLevel > req.AccessLevel {
			continue
		}
		if len(req.TimeLineTypeFilter) > 0 && !slices.Contains(req.TimeLineTypeFilter, item.ItemType) {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(item.Tags, tags) {
			continue
		}
		matched = append(matched, item)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ProgenyTime.After(matched[j].ProgenyTime)
	})

	skip := min(max(req.Skip, 0), len(matched))
	page := matched[skip:]
	if req.NumberOfItems > 0 && len(page) > req.NumberOfItems {
		page = page[:req.NumberOfItems]
	}

	return &OnThisDayResponse{
		TimeLineItems:  page,
		RemainingItems: max(len(matched)-skip-len(page), 0),
		Request:        req,
	}, nil
}

func splitTags(filter string) []string {
	var tags []string
	for _, t := range strings.Split(filter, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, strings.ToLower(t))
		}
	}
	return tags
}

func hasAnyTag(itemTags string, wanted []string) bool {
	for _, t := range splitTags(itemTags) {
		if slices.Contains(wanted, t) {
			return true
		}
	}
	return false
}
