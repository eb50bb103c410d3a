package services

import (
	"math"
	"sort"

	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/models"
)

// recentLogWindow is how many of the user's latest diet logs feed the
// repeat-avoidance signal.
const recentLogWindow = 5

// RecommendationService produces a ranked list of menu items for a user
type RecommendationService interface {
	// Recommend returns up to the configured number of menu items ranked by
	// the user's mode. A user without a profile gets an empty list.
	Recommend(user *models.User) []*models.MenuItem
}

type recommendationService struct {
	catalog *catalog.Catalog
	limit   int
}

// NewRecommendationService creates a new RecommendationService capped at
// limit results per call. A non-positive limit falls back to 10.
func NewRecommendationService(c *catalog.Catalog, limit int) RecommendationService {
	if limit <= 0 {
		limit = 10
	}
	return &recommendationService{catalog: c, limit: limit}
}

// candidate pairs a menu item with its owning restaurant's rating so
// strategies can rank without reaching back into the catalog.
type candidate struct {
	item   *models.MenuItem
	rating float64
}

// rankingStrategy orders candidates for one operating mode. Each mode is a
// separate value so its policy can be tested on its own.
type rankingStrategy interface {
	rank(candidates []candidate, profile *models.UserProfile) []candidate
}

func (s *recommendationService) Recommend(user *models.User) []*models.MenuItem {
	profile := user.Profile()
	if profile == nil {
		// Degraded mode by contract: no profile means no basis to rank.
		return []*models.MenuItem{}
	}

	candidates := s.collectCandidates()
	strategy := strategyFor(profile.Mode)
	ranked := strategy.rank(candidates, profile)
	ranked = demoteRecent(ranked, user.DietLogs())

	items := make([]*models.MenuItem, 0, s.limit)
	for _, c := range ranked {
		if len(items) == s.limit {
			break
		}
		items = append(items, c.item)
	}
	return items
}

// collectCandidates walks the catalog in insertion order, which is the
// deterministic tiebreak order for every strategy's stable sort.
func (s *recommendationService) collectCandidates() []candidate {
	var out []candidate
	for _, r := range s.catalog.Restaurants() {
		rating := r.AverageRating()
		for _, item := range r.Menu() {
			out = append(out, candidate{item: item, rating: rating})
		}
	}
	return out
}

func strategyFor(mode models.AppMode) rankingStrategy {
	switch mode {
	case models.ModeFitness:
		return fitnessStrategy{}
	case models.ModeTourist:
		return touristStrategy{}
	default:
		return normalStrategy{}
	}
}

// demoteRecent moves items logged in the user's most recent meals behind
// everything else, preserving relative order within both groups. Items are
// demoted, never dropped, and an empty log list changes nothing.
func demoteRecent(ranked []candidate, logs []*models.DietLog) []candidate {
	if len(logs) == 0 {
		return ranked
	}
	start := len(logs) - recentLogWindow
	if start < 0 {
		start = 0
	}
	recent := make(map[string]bool)
	for _, l := range logs[start:] {
		recent[l.MenuItemID] = true
	}

	fresh := make([]candidate, 0, len(ranked))
	repeated := make([]candidate, 0)
	for _, c := range ranked {
		if recent[c.item.ItemID] {
			repeated = append(repeated, c)
		} else {
			fresh = append(fresh, c)
		}
	}
	return append(fresh, repeated...)
}

// normalStrategy keeps items within budget and ranks them by the owning
// restaurant's rating, best first.
type normalStrategy struct{}

func (normalStrategy) rank(candidates []candidate, profile *models.UserProfile) []candidate {
	kept := withinBudget(candidates, profile.Budget)
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].rating > kept[j].rating
	})
	return kept
}

// touristStrategy ranks purely by restaurant rating. Proximity and
// popularity data are not modeled, so rating is the whole signal.
type touristStrategy struct{}

func (touristStrategy) rank(candidates []candidate, profile *models.UserProfile) []candidate {
	kept := make([]candidate, len(candidates))
	copy(kept, candidates)
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].rating > kept[j].rating
	})
	return kept
}

// fitnessStrategy scores items by how far their macros sit from the health
// goal. Items without nutrition info always rank behind scored items but
// are never excluded; missing data is not a disqualification.
type fitnessStrategy struct{}

func (fitnessStrategy) rank(candidates []candidate, profile *models.UserProfile) []candidate {
	kept := withinBudget(candidates, profile.Budget)
	goal := profile.HealthGoal
	sort.SliceStable(kept, func(i, j int) bool {
		ni, nj := kept[i].item.Nutrition, kept[j].item.Nutrition
		if (ni == nil) != (nj == nil) {
			return ni != nil
		}
		if ni == nil {
			return kept[i].rating > kept[j].rating
		}
		di, dj := goalDeviation(ni, goal), goalDeviation(nj, goal)
		if di != dj {
			return di < dj
		}
		return kept[i].rating > kept[j].rating
	})
	return kept
}

// goalDeviation measures how far an item's macros stray from a meal-sized
// share of the daily targets. Without a goal (fitness mode but no targets
// set) every item scores zero and rating decides, which is the graceful
// degradation the profile contract asks for.
func goalDeviation(n *models.NutritionInfo, goal *models.HealthProfile) float64 {
	if goal == nil {
		return 0
	}
	var dev float64
	if goal.TargetCalories > 0 {
		mealShare := float64(goal.TargetCalories) / 3
		dev += math.Abs(float64(n.Calories)-mealShare) / mealShare
	}
	if goal.TargetProtein > 0 {
		mealShare := goal.TargetProtein / 3
		if n.Protein < mealShare {
			dev += (mealShare - n.Protein) / mealShare
		}
	}
	if goal.TargetFat > 0 {
		mealShare := goal.TargetFat / 3
		if n.Fat > mealShare {
			dev += (n.Fat - mealShare) / mealShare
		}
	}
	return dev
}

// withinBudget filters out items the user cannot afford. A zero budget
// means no budget was set and nothing is filtered.
func withinBudget(candidates []candidate, budget float64) []candidate {
	if budget <= 0 {
		kept := make([]candidate, len(candidates))
		copy(kept, candidates)
		return kept
	}
	kept := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.item.Price <= budget {
			kept = append(kept, c)
		}
	}
	return kept
}
