package syncer_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/syncer"
	"github.com/agentstation/tripmap/pkg/trip"
)

func samplePayload() *syncer.Payload {
	return &syncer.Payload{
		Itinerary: []trip.DayItinerary{{
			ID:       1,
			Date:     "2026/02/27",
			Title:    "抵達京都：古都之夜",
			Location: trip.Kyoto,
			Weather:  trip.WeatherData{TempRange: "4°C - 11°C", Tips: []string{"注意保暖"}},
			Items: []trip.ScheduleItem{{
				ID:    "1-1",
				Time:  "15:00",
				Title: "Check-in 🏨",
				Photo: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg==",
				TransportAfter: &trip.TransportInfo{
					Mode: trip.TransportWalk, Detail: "飯店 -> 鴨川", Duration: "5 分鐘",
				},
			}},
		}},
		Expenses:  []trip.Expense{{ID: "exp-1", Date: "2026-02-27", Category: trip.CategoryFood, AmountJPY: 1000, AmountTWD: 210, Description: "拉麵"}},
		Checklist: trip.CheckedState{"護照": true, "耳機": false},
		Coupons:   []trip.Coupon{},
		Timestamp: 1772150400000,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	p := samplePayload()

	token, err := syncer.Encode(p)
	require.NoError(t, err)

	got, err := syncer.Decode(token)
	require.NoError(t, err)
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("Decode(Encode(p)) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTolerantInput(t *testing.T) {
	p := samplePayload()
	token, err := syncer.Encode(p)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)

	variants := map[string]string{
		"surrounding whitespace": "\n  " + token + "\t\n",
		"wrapped lines":          token[:20] + "\n" + token[20:],
		"unpadded":               strings.TrimRight(token, "="),
		"url safe":               base64.URLEncoding.EncodeToString(raw),
		"url safe unpadded":      base64.RawURLEncoding.EncodeToString(raw),
	}
	for name, v := range variants {
		t.Run(name, func(t *testing.T) {
			got, err := syncer.Decode(v)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(p, got))
		})
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"empty":      "   ",
		"not base64": "這不是代碼!!",
		"not json":   base64.StdEncoding.EncodeToString([]byte("hello")),
		"array":      base64.StdEncoding.EncodeToString([]byte(`[1,2]`)),
		"null":       base64.StdEncoding.EncodeToString([]byte(`null`)),
		"wrong type": base64.StdEncoding.EncodeToString([]byte(`{"itinerary":"x"}`)),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := syncer.Decode(token)
			var parseErr *errors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestDecodeAbsentCollectionsStayNil(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte(`{"expenses":[],"timestamp":5}`))

	p, err := syncer.Decode(token)
	require.NoError(t, err)
	assert.Nil(t, p.Itinerary)
	assert.Nil(t, p.Checklist)
	assert.Nil(t, p.Coupons)
	assert.NotNil(t, p.Expenses)
	assert.Equal(t, []string{"expenses"}, p.Preview().Collections)
}

func TestPreview(t *testing.T) {
	pv := samplePayload().Preview()

	assert.Equal(t, 1, pv.Days)
	assert.Equal(t, 1, pv.Items)
	assert.Equal(t, 1, pv.Expenses)
	assert.Equal(t, 1, pv.Checked)
	assert.Equal(t, 0, pv.Coupons)
	assert.Equal(t, int64(1772150400000), pv.Timestamp.UnixMilli())
	assert.Equal(t, []string{"itinerary", "expenses", "checklist", "coupons"}, pv.Collections)
}
