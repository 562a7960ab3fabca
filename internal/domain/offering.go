package domain

// OfferingKind distinguishes single services from combos in a cart
type OfferingKind string

const (
	OfferingService OfferingKind = "service"
	OfferingCombo   OfferingKind = "combo"
)

func (k OfferingKind) IsValid() bool {
	return k == OfferingService || k == OfferingCombo
}

// ServiceOffering is a single bookable service from the catalog
type ServiceOffering struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
	IsActive        bool
	IsDeleted       bool
}

// IsBookable reports whether the service may be added to a cart
func (s *ServiceOffering) IsBookable() bool {
	return s.IsActive && !s.IsDeleted && s.DurationMinutes > 0 && s.Price >= 0
}

// ComboOffering is a named bundle of services sold for its own price.
// Its duration is not stored: it is the sum of the constituents' current durations.
type ComboOffering struct {
	ID         int64
	Name       string
	Price      float64
	ServiceIDs []int64
	IsActive   bool
	IsDeleted  bool
}

func (c *ComboOffering) IsBookable() bool {
	return c.IsActive && !c.IsDeleted && len(c.ServiceIDs) > 0 && c.Price >= 0
}

// CartItem is a transient reference to something the customer wants to book
type CartItem struct {
	OfferingID int64        `json:"offeringId"`
	Kind       OfferingKind `json:"kind"`
}

// CartLine is one priced service produced by aggregating a cart.
// A combo item expands into one line per constituent service.
type CartLine struct {
	Kind            OfferingKind
	OfferingID      int64 // id of the cart item (service or combo)
	ServiceID       int64 // performed service
	ComboID         *int64
	Name            string
	DurationMinutes int
	ListPrice       float64 // catalog price of the service
	Price           float64 // charged price
}

// RejectedItem is a cart item skipped during aggregation
type RejectedItem struct {
	Item   CartItem
	Reason string
}

// Rejection reasons
const (
	RejectNotFound               = "not_found"
	RejectInactive               = "inactive"
	RejectUnknownKind            = "unknown_kind"
	RejectConstituentUnavailable = "constituent_unavailable"
)

// CartSummary is the aggregated view of a cart
type CartSummary struct {
	Lines                []CartLine
	TotalPrice           float64
	TotalDurationMinutes int
	Rejected             []RejectedItem
}

// HasRejected reports whether any input item was skipped
func (s *CartSummary) HasRejected() bool {
	return len(s.Rejected) > 0
}
