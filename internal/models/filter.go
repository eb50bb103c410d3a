package models

// Sort keys accepted by FilterCriteria.SortBy
const (
	SortByPrice    = "price"
	SortByRating   = "rating"
	SortByDistance = "distance"
)

// FilterCriteria describes a restaurant search. Every field is optional;
// a nil field means "no constraint on this dimension".
type FilterCriteria struct {
	Keyword   *string  `json:"keyword,omitempty" form:"keyword"`
	MaxPrice  *float64 `json:"max_price,omitempty" form:"max_price"`
	MinRating *float64 `json:"min_rating,omitempty" form:"min_rating"`
	SortBy    *string  `json:"sort_by,omitempty" form:"sort_by"`
}
