// Package syncer moves the shared trip collections between devices.
//
// A Payload carries the itinerary, the expenses, the checklist checked-state
// and the coupons. It travels either as a base64 token the user copies by
// hand, or through a remote HTTP endpoint that stores the latest payload.
// Applying a payload overwrites each collection it carries; there is no
// merge, the last applied payload wins.
package syncer

import (
	"time"

	"github.com/agentstation/tripmap/pkg/trip"
)

// Payload is the unit of sync. A nil field means the collection is absent
// and will not be touched by Apply; an empty slice or map is present.
type Payload struct {
	Itinerary []trip.DayItinerary `json:"itinerary"`
	Expenses  []trip.Expense      `json:"expenses"`
	Checklist trip.CheckedState   `json:"checklist"`
	Coupons   []trip.Coupon       `json:"coupons"`
	Timestamp int64               `json:"timestamp"`
}

// Time returns the payload timestamp, or the zero time when unset.
func (p *Payload) Time() time.Time {
	if p.Timestamp == 0 {
		return time.Time{}
	}
	return time.UnixMilli(p.Timestamp)
}

// Preview summarizes a payload for a confirmation prompt.
type Preview struct {
	Timestamp time.Time `json:"timestamp"`
	Days      int       `json:"days"`
	Items     int       `json:"items"`
	Expenses  int       `json:"expenses"`
	Checked   int       `json:"checked"`
	Coupons   int       `json:"coupons"`

	// Collections lists the collections the payload would overwrite.
	Collections []string `json:"collections"`
}

// Preview describes what applying p would change.
func (p *Payload) Preview() Preview {
	pv := Preview{
		Timestamp:   p.Time(),
		Days:        len(p.Itinerary),
		Expenses:    len(p.Expenses),
		Coupons:     len(p.Coupons),
		Collections: []string{},
	}
	for _, d := range p.Itinerary {
		pv.Items += len(d.Items)
	}
	for _, on := range p.Checklist {
		if on {
			pv.Checked++
		}
	}
	if p.Itinerary != nil {
		pv.Collections = append(pv.Collections, "itinerary")
	}
	if p.Expenses != nil {
		pv.Collections = append(pv.Collections, "expenses")
	}
	if p.Checklist != nil {
		pv.Collections = append(pv.Collections, "checklist")
	}
	if p.Coupons != nil {
		pv.Collections = append(pv.Collections, "coupons")
	}
	return pv
}
