// Package trip defines the records a trip is made of: the day-by-day
// itinerary, flights, expenses, packing checklist, coupons and shopping list,
// plus the static reference data (hotels, airport trains) and the seed
// collections a fresh install starts from.
//
// JSON field names are part of the stored and synced format and must not change.
package trip

// TransportMode is how travelers get to the next schedule item.
type TransportMode string

// Transport modes.
const (
	TransportFlight TransportMode = "Flight"
	TransportTrain  TransportMode = "Train"
	TransportSubway TransportMode = "Subway"
	TransportWalk   TransportMode = "Walk"
	TransportBus    TransportMode = "Bus"
	TransportTaxi   TransportMode = "Taxi"
	TransportRapit  TransportMode = "Rapit"
	TransportHaruka TransportMode = "Haruka"
)

// TransportModes lists every valid mode.
var TransportModes = []TransportMode{
	TransportFlight, TransportTrain, TransportSubway, TransportWalk,
	TransportBus, TransportTaxi, TransportRapit, TransportHaruka,
}

// Valid reports whether m is a known mode.
func (m TransportMode) Valid() bool {
	for _, known := range TransportModes {
		if m == known {
			return true
		}
	}
	return false
}

// TransportInfo describes the leg after a schedule item.
type TransportInfo struct {
	Mode     TransportMode `json:"mode"`
	Detail   string        `json:"detail"`
	Duration string        `json:"duration"`
	Note     string        `json:"note,omitempty"`
}

// ScheduleItem is one stop in a day. Time is "HH:MM" or empty; Photo is a data URL.
type ScheduleItem struct {
	ID             string         `json:"id"`
	Time           string         `json:"time,omitempty"`
	Title          string         `json:"title"`
	Duration       string         `json:"duration,omitempty"`
	Location       string         `json:"location,omitempty"`
	Description    string         `json:"description,omitempty"`
	Note           string         `json:"note,omitempty"`
	Photo          string         `json:"photo,omitempty"`
	TransportAfter *TransportInfo `json:"transportAfter,omitempty"`
	IsOptional     bool           `json:"isOptional,omitempty"`
}

// City is one of the two bases of the trip.
type City string

// Cities.
const (
	Kyoto City = "Kyoto"
	Osaka City = "Osaka"
)

// Valid reports whether c is a known city.
func (c City) Valid() bool {
	return c == Kyoto || c == Osaka
}

// WeatherData is the static per-day forecast and packing advice.
type WeatherData struct {
	TempRange string   `json:"tempRange"`
	Condition string   `json:"condition"`
	Clothing  string   `json:"clothing"`
	Tips      []string `json:"tips"`
}

// DayItinerary is one day of the trip. Date is a literal "YYYY/MM/DD" string.
type DayItinerary struct {
	ID       int            `json:"id"`
	Date     string         `json:"date"`
	Title    string         `json:"title"`
	Location City           `json:"location"`
	Hotel    string         `json:"hotel,omitempty"`
	Weather  WeatherData    `json:"weather"`
	Items    []ScheduleItem `json:"items"`
}

// FlightType tells the outbound leg from the return leg.
type FlightType string

// Flight types.
const (
	Outbound FlightType = "Outbound"
	Inbound  FlightType = "Inbound"
)

// Flight is one flight leg. Times are "YYYY/MM/DD HH:mm" strings.
type Flight struct {
	ID            string     `json:"id"`
	Type          FlightType `json:"type"`
	Airline       string     `json:"airline"`
	FlightNo      string     `json:"flightNo"`
	From          string     `json:"from"`
	To            string     `json:"to"`
	DepartureTime string     `json:"departureTime"`
	ArrivalTime   string     `json:"arrivalTime"`
	Terminal      string     `json:"terminal"`
	Seat          string     `json:"seat,omitempty"`
}

// Expense categories.
const (
	CategoryFood          = "餐飲"
	CategoryTransport     = "交通"
	CategoryShopping      = "購物"
	CategoryTickets       = "景點門票"
	CategoryAccommodation = "住宿"
	CategoryOther         = "其他"
)

// ExpenseCategories is the fixed, ordered set of expense categories.
var ExpenseCategories = []string{
	CategoryFood, CategoryTransport, CategoryShopping,
	CategoryTickets, CategoryAccommodation, CategoryOther,
}

// IsExpenseCategory reports whether c is one of ExpenseCategories.
func IsExpenseCategory(c string) bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a spending record. AmountTWD is fixed when the expense is
// created and is never recomputed from a later exchange rate.
type Expense struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	AmountJPY   float64 `json:"amountJpy"`
	AmountTWD   float64 `json:"amountTwd"`
	Description string  `json:"description"`
}

// ChecklistCategory groups packing items. Items are names, and the name is
// the key into CheckedState.
type ChecklistCategory struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// CheckedState maps a checklist item name to whether it is packed.
type CheckedState map[string]bool

// Clone returns an independent copy.
func (s CheckedState) Clone() CheckedState {
	out := make(CheckedState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Coupon is a discount or tax-free voucher. ExpiryDate is informational only.
type Coupon struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
}

// ShoppingItem is something to buy. Type always names a live shopping type.
type ShoppingItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Type     string `json:"type"`
	Photo    string `json:"photo,omitempty"`
	Note     string `json:"note,omitempty"`
	IsBought bool   `json:"isBought"`
}

// GPS is a coordinate pair as displayed on the booking.
type GPS struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Accommodation is a booked hotel.
type Accommodation struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	NameJP    string   `json:"nameJp"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	CheckIn   string   `json:"checkIn"`
	CheckOut  string   `json:"checkOut"`
	RoomType  string   `json:"roomType"`
	Price     string   `json:"price"`
	Amenities []string `json:"amenities"`
	Notes     []string `json:"notes"`
	Intro     string   `json:"intro"`
	GPS       GPS      `json:"gps"`
}

// TrainSchedule is a suggested airport train departure.
type TrainSchedule struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Dep      string `json:"dep"`
	Arr      string `json:"arr"`
	Duration string `json:"duration"`
	Note     string `json:"note,omitempty"`
}

// Coordinates is a latitude/longitude pair used for weather lookups.
type Coordinates struct {
	Lat float64
	Lng float64
}

// CityCoordinates holds the weather lookup point for each city.
var CityCoordinates = map[City]Coordinates{
	Kyoto: {Lat: 35.0116, Lng: 135.7681},
	Osaka: {Lat: 34.6937, Lng: 135.5023},
}
