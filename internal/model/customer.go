package model

// Customer represents a loyalty program member.
type Customer struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	DOB      string `json:"dob" yaml:"dob"` // YYYY-MM-DD
	Tier     Tier   `json:"tier" yaml:"tier"`
	LastSeen string `json:"last_seen" yaml:"last_seen"`
	Points   int    `json:"points" yaml:"points"`
}

// CustomerRequest is the DTO for POST /api/loyalty/customers and PUT /api/loyalty/customers/:id.
// An empty Tier means the entry tier on create and the current tier on update.
type CustomerRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"max=32"`
	DOB   string `json:"dob" validate:"omitempty,isodate"`
	Tier  Tier   `json:"tier" validate:"omitempty,oneof=Discovery Silver Gold Platinum"`
}

// TierEngagement is the number of members whose points resolve to a tier.
type TierEngagement struct {
	Tier        Tier `json:"tier"`
	MemberCount int  `json:"member_count"`
}

// TopLoyaltyMember is a leaderboard row.
type TopLoyaltyMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Tier   Tier   `json:"tier"`
}

// LoyaltyStatus is the derived loyalty view for a points balance.
type LoyaltyStatus struct {
	CustomerID string `json:"customer_id,omitempty"`
	Points     int    `json:"points"`
	Tier       Tier   `json:"tier"`
	// StoredTier is the tier recorded on the customer, which may lag behind Tier.
	StoredTier      Tier    `json:"stored_tier,omitempty"`
	NextTier        *Tier   `json:"next_tier"`
	PointsRemaining int     `json:"points_remaining"`
	PercentComplete float64 `json:"percent_complete"`
	DiscountPercent int     `json:"discount_percent"`
}

// RewardStatus is the lifecycle state of a reward.
type RewardStatus string

const (
	RewardActive   RewardStatus = "Active"
	RewardArchived RewardStatus = "Archived"
)

// Reward is a redeemable item in the loyalty catalog.
type Reward struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Points int          `json:"points" yaml:"points"`
	Status RewardStatus `json:"status" yaml:"status"`
}

// RewardRequest is the DTO for creating or replacing a reward.
type RewardRequest struct {
	Name   string       `json:"name" validate:"required,notblank,max=255"`
	Points *int         `json:"points" validate:"required,gte=0"`
	Status RewardStatus `json:"status" validate:"required,oneof=Active Archived"`
}
