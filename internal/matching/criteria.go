package matching

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/timmy/solarmatch/internal/domain"
)

// Default criteria values.
const (
	DefaultDistanceWeight     = 30.0
	DefaultExpertiseWeight    = 25.0
	DefaultAvailabilityWeight = 20.0
	DefaultRatingWeight       = 15.0
	DefaultPriceWeight        = 10.0
	DefaultMinimumMatchScore  = 50.0
	DefaultMaxMatches         = 10
	DefaultVerifiedOnly       = true
)

var validate = validator.New()

// Weights holds the per-dimension weights. They are meant to sum to 100 but
// the sum is not enforced; the total score scales with whatever is supplied.
type Weights struct {
	Distance     float64 `json:"distance" validate:"gte=0"`
	Expertise    float64 `json:"expertise" validate:"gte=0"`
	Availability float64 `json:"availability" validate:"gte=0"`
	Rating       float64 `json:"rating" validate:"gte=0"`
	Price        float64 `json:"price" validate:"gte=0"`
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Distance + w.Expertise + w.Availability + w.Rating + w.Price
}

// Criteria configures a single matching request. It is a plain value and is
// not modified after construction.
type Criteria struct {
	Weights           Weights `json:"weights"`
	MinimumMatchScore float64 `json:"minimum_match_score" validate:"gte=0,lte=100"`
	MaxMatches        int     `json:"max_matches" validate:"gt=0"`
	VerifiedOnly      bool    `json:"verified_only"`
}

// DefaultCriteria returns the criteria used when a caller overrides nothing.
func DefaultCriteria() Criteria {
	return Criteria{
		Weights: Weights{
			Distance:     DefaultDistanceWeight,
			Expertise:    DefaultExpertiseWeight,
			Availability: DefaultAvailabilityWeight,
			Rating:       DefaultRatingWeight,
			Price:        DefaultPriceWeight,
		},
		MinimumMatchScore: DefaultMinimumMatchScore,
		MaxMatches:        DefaultMaxMatches,
		VerifiedOnly:      DefaultVerifiedOnly,
	}
}

// Overrides carries an optional subset of criteria fields. Nil fields keep their default.
type Overrides struct {
	DistanceWeight     *float64 `json:"distance_weight,omitempty"`
	ExpertiseWeight    *float64 `json:"expertise_weight,omitempty"`
	AvailabilityWeight *float64 `json:"availability_weight,omitempty"`
	RatingWeight       *float64 `json:"rating_weight,omitempty"`
	PriceWeight        *float64 `json:"price_weight,omitempty"`
	MinimumMatchScore  *float64 `json:"minimum_match_score,omitempty"`
	MaxMatches         *int     `json:"max_matches,omitempty"`
	VerifiedOnly       *bool    `json:"verified_only,omitempty"`
}

// NewCriteria applies o on top of the defaults and validates the result.
// A nil o yields the defaults.
func NewCriteria(o *Overrides) (Criteria, error) {
	c := DefaultCriteria()
	if o != nil {
		setFloat(&c.Weights.Distance, o.DistanceWeight)
		setFloat(&c.Weights.Expertise, o.ExpertiseWeight)
		setFloat(&c.Weights.Availability, o.AvailabilityWeight)
		setFloat(&c.Weights.Rating, o.RatingWeight)
		setFloat(&c.Weights.Price, o.PriceWeight)
		setFloat(&c.MinimumMatchScore, o.MinimumMatchScore)
		if o.MaxMatches != nil {
			c.MaxMatches = *o.MaxMatches
		}
		if o.VerifiedOnly != nil {
			c.VerifiedOnly = *o.VerifiedOnly
		}
	}

	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// Validate checks field ranges and returns a domain validation error describing
// every offending field.
func (c Criteria) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Invalid("criteria: %v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return domain.Invalid("criteria: %s", strings.Join(msgs, "; "))
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
