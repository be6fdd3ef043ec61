// Package transport defines the internal Moveware records served to route
// handlers and the request bodies accepted from the customer-facing app.
// Every field defaults to an empty string, zero or empty slice so consumers
// never branch on missing values.
package transport

// Source values annotating where a read-path response came from.
const (
	SourceLive = "live"
	SourceMock = "mock"
)

// Branding is the tenant display snapshot embedded in every job record.
type Branding struct {
	CompanyName string       `json:"companyName"`
	LogoURL     string       `json:"logoUrl"`
	BannerURL   string       `json:"bannerUrl"`
	ColorScheme string       `json:"colorScheme"`
	Font        string       `json:"font"`
	Contact     ContactBlock `json:"contact"`
	WeightUnit  string       `json:"weightUnit"`
}

// ContactBlock is the footer contact information of a tenant.
type ContactBlock struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Address is one structured job address.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// Job is the canonical job/quotation record.
type Job struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	MoveType    string   `json:"moveType"`
	MoveManager string   `json:"moveManager"`
	Brand       string   `json:"brand"`
	Branch      string   `json:"branch"`
	Uplift      Address  `json:"uplift"`
	Delivery    Address  `json:"delivery"`
	VolumeM3    float64  `json:"volumeM3"`
	WeightKg    float64  `json:"weightKg"`
	Branding    Branding `json:"branding"`
}

// CostingCharge is one priced line item within a pricing option.
type CostingCharge struct {
	ID           string  `json:"id"`
	Heading      string  `json:"heading"`
	Notes        string  `json:"notes"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Currency     string  `json:"currency"`
	Sort         string  `json:"sort"`
	Included     bool    `json:"included"`
	IsBaseCharge bool    `json:"isBaseCharge"`
}

// CostingRawData carries the inclusion/exclusion bullet strings of an option.
type CostingRawData struct {
	Inclusions []string `json:"inclusions"`
	Exclusions []string `json:"exclusions"`
}

// Costing is one selectable pricing option for a move.
type Costing struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Quantity       float64         `json:"quantity"`
	NetPrice       float64         `json:"netPrice"`
	TotalPrice     float64         `json:"totalPrice"`
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currencySymbol"`
	TaxInclusive   bool            `json:"taxInclusive"`
	Charges        []CostingCharge `json:"charges"`
	RawData        CostingRawData  `json:"rawData"`
}

// InventoryItem is one inventory usage line, with cube and weight already
// quantity-multiplied.
type InventoryItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Room        string  `json:"room"`
	Quantity    float64 `json:"quantity"`
	CubeM3      float64 `json:"cubeM3"`
	TypeCode    string  `json:"typeCode"`
	WeightKg    float64 `json:"weightKg"`
}

// Measurements is the aggregate gross measure block for a whole quotation.
type Measurements struct {
	VolumeM3 float64 `json:"volumeM3"`
	WeightKg float64 `json:"weightKg"`
	WeightLb float64 `json:"weightLb"`
}

// Review is a single customer review record returned by the upstream.
type Review struct {
	ID       string  `json:"id"`
	Rating   float64 `json:"rating"`
	Comments string  `json:"comments"`
	Author   string  `json:"author"`
	Date     string  `json:"date"`
}

// Question is one review question configured upstream.
type Question struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// JobResponse wraps a job read with its data source annotation.
type JobResponse struct {
	Source string `json:"source"`
	Job    Job    `json:"job"`
}

// OptionsResponse wraps a pricing-options read.
type OptionsResponse struct {
	Source  string    `json:"source"`
	Options []Costing `json:"options"`
}

// InventoryResponse wraps an inventory read. Truncated flags a suspected
// pagination cut-off reported by upstream metadata.
type InventoryResponse struct {
	Source    string          `json:"source"`
	Items     []InventoryItem `json:"items"`
	Truncated bool            `json:"truncated"`
}

// MeasurementsResponse wraps an aggregate measurements read.
type MeasurementsResponse struct {
	Source       string       `json:"source"`
	Measurements Measurements `json:"measurements"`
}

// ReviewsResponse wraps a reviews read.
type ReviewsResponse struct {
	Source  string   `json:"source"`
	Reviews []Review `json:"reviews"`
}

// QuestionsResponse wraps a review-questions read.
type QuestionsResponse struct {
	Source    string     `json:"source"`
	Questions []Question `json:"questions"`
}

// SummaryResponse aggregates the read paths for one job in a single response.
type SummaryResponse struct {
	Source    string            `json:"source"`
	Job       Job               `json:"job"`
	Options   []Costing         `json:"options"`
	Inventory InventoryResponse `json:"inventory"`
}

// AcceptanceResponse reports the outcome of a quote acceptance.
type AcceptanceResponse struct {
	Source     string `json:"source"`
	Accepted   bool   `json:"accepted"`
	QuoteID    string `json:"quoteId"`
	ActivityID string `json:"activityId,omitempty"`
}

// ── Requests ──────────────────────────────────────────────────────────────────

// SubmitReviewRequest is the customer review submission body.
type SubmitReviewRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comments string `json:"comments" validate:"max=4000"`
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=40"`
}

// AcceptQuoteRequest is the body for accepting a quotation option.
type AcceptQuoteRequest struct {
	OptionID string `json:"optionId" validate:"required"`
	MoveDate string `json:"moveDate" validate:"omitempty,datetime=2006-01-02"`
}
