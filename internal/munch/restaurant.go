package munch

// MetersPerMile converts the directory API's raw meter distances into the
// miles the filter dimensions are expressed in.
const MetersPerMile = 0.000621371192

// LatLng is a numeric coordinate pair as returned by the directory API.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Restaurant is a nearby business summary reshaped for the results list.
// Records are immutable once fetched; a re-fetch replaces the working list
// wholesale.
type Restaurant struct {
	ID             string   `json:"id"`
	Alias          string   `json:"alias"`
	Name           string   `json:"name"`
	DisplayAddress string   `json:"displayAddress"`
	DisplayPhone   string   `json:"displayPhone"`
	Phone          string   `json:"phone"`
	Coordinates    LatLng   `json:"coordinates"`
	Distance       float64  `json:"distance"` // meters
	Price          string   `json:"price,omitempty"`
	Rating         float64  `json:"rating"`
	IsClosed       bool     `json:"isClosed"`
	ImageURL       string   `json:"imageURL"`
	URL            string   `json:"url,omitempty"`
	Transactions   []string `json:"transactions"`
}

// DistanceMiles returns the record distance converted from meters.
func (r Restaurant) DistanceMiles() float64 {
	return r.Distance * MetersPerMile
}

// Category is a cuisine tag attached to a business.
type Category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

// OpenHours is one formatted opening window for a single weekday.
type OpenHours struct {
	Day         string `json:"day"`
	Hours       string `json:"hours"` // "11:00 AM - 9:00 PM"
	IsOvernight bool   `json:"isOvernight"`
}

// BusinessDetail is the extended record fetched lazily for a single
// restaurant. It is joined with the already-held summary on the client,
// never fetched for the whole list.
type BusinessDetail struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	URL        string      `json:"url"`
	Photos     []string    `json:"photos"`
	Categories []Category  `json:"categories"`
	IsOpenNow  bool        `json:"isOpenNow"`
	Hours      []OpenHours `json:"hours"`
}
