package collections

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Stored document schemas. Version 0 of each is the bare JSON array or
// object that earlier clients wrote without an envelope.
var (
	ItinerarySchema = store.Schema{
		Key:        constants.KeyItinerary,
		Migrations: []store.Migration{assignItemIDs},
	}
	FlightsSchema             = store.NewSchema(constants.KeyFlights)
	ExpensesSchema            = store.NewSchema(constants.KeyExpenses)
	CheckedSchema             = store.NewSchema(constants.KeyChecklist)
	ChecklistCategoriesSchema = store.NewSchema(constants.KeyChecklistCategories)
	CouponsSchema             = store.NewSchema(constants.KeyCoupons)
	ShoppingItemsSchema       = store.NewSchema(constants.KeyShoppingItems)
	ShoppingTypesSchema       = store.NewSchema(constants.KeyShoppingTypes)
	SyncURLSchema             = store.NewSchema(constants.KeySyncURL)
)

// Schemas lists every collection schema, keyed by storage key.
func Schemas() map[string]store.Schema {
	all := []store.Schema{
		ItinerarySchema, FlightsSchema, ExpensesSchema, CheckedSchema,
		ChecklistCategoriesSchema, CouponsSchema, ShoppingItemsSchema,
		ShoppingTypesSchema, SyncURLSchema,
	}
	out := make(map[string]store.Schema, len(all))
	for _, s := range all {
		out[s.Key] = s
	}
	return out
}

// assignItemIDs upgrades a v0 itinerary: items without an id get
// "<dayId>-<index>-<unixMs>" and every day is put in schedule order.
func assignItemIDs(_ context.Context, data json.RawMessage) (json.RawMessage, error) {
	var days []trip.DayItinerary
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, err
	}

	ms := time.Now().UnixMilli()
	for d := range days {
		for i := range days[d].Items {
			if days[d].Items[i].ID == "" {
				days[d].Items[i].ID = fmt.Sprintf("%d-%d-%d", days[d].ID, i, ms)
			}
		}
		days[d].Items = trip.SortSchedule(days[d].Items)
	}
	return json.Marshal(days)
}
