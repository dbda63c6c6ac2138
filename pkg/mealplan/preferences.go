package mealplan

import (
	"fmt"
	"slices"
	"strings"
)

// Meal count bounds, inclusive.
const (
	MinMeals     = 1
	MaxMeals     = 21
	DefaultMeals = 3
)

// Theme is the dietary theme of the plan.
type Theme string

const (
	ThemeBalanced    Theme = "Balanced"
	ThemeLowCarb     Theme = "Low Carb"
	ThemeHighProtein Theme = "High Protein"
	ThemeVegetarian  Theme = "Vegetarian"
	ThemeVegan       Theme = "Vegan"
	ThemeKeto        Theme = "Keto"
)

// Cuisine is the preferred cuisine.
type Cuisine string

const (
	CuisineAny       Cuisine = "Any"
	CuisineAsian     Cuisine = "Asian"
	CuisineNigerian  Cuisine = "Nigerian"
	CuisineEuropean  Cuisine = "European"
	CuisineAmericas  Cuisine = "Americas"
	CuisineCaribbean Cuisine = "Caribbean"
)

// Goal is the user's primary goal.
type Goal string

const (
	GoalLoseWeight     Goal = "Lose Weight"
	GoalMaintainWeight Goal = "Maintain Weight"
	GoalGainMuscle     Goal = "Gain Muscle"
	GoalImproveEnergy  Goal = "Improve Energy"
)

// SkillLevel scales the difficulty of the requested plan.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// Themes returns the theme domain in display order.
func Themes() []Theme {
	return []Theme{ThemeBalanced, ThemeLowCarb, ThemeHighProtein, ThemeVegetarian, ThemeVegan, ThemeKeto}
}

// Cuisines returns the cuisine domain in display order.
func Cuisines() []Cuisine {
	return []Cuisine{CuisineAny, CuisineAsian, CuisineNigerian, CuisineEuropean, CuisineAmericas, CuisineCaribbean}
}

// Goals returns the goal domain in display order.
func Goals() []Goal {
	return []Goal{GoalLoseWeight, GoalMaintainWeight, GoalGainMuscle, GoalImproveEnergy}
}

// SkillLevels returns the skill domain from easiest to hardest.
func SkillLevels() []SkillLevel {
	return []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced}
}

// Preferences is one snapshot of the form. It lives for a single generation.
type Preferences struct {
	Theme      Theme
	MealCount  int
	Cuisine    Cuisine
	Goal       Goal
	SkillLevel SkillLevel
}

// Defaults returns the values the form starts with.
func Defaults() Preferences {
	return Preferences{
		Theme:      ThemeBalanced,
		MealCount:  DefaultMeals,
		Cuisine:    CuisineAny,
		Goal:       GoalLoseWeight,
		SkillLevel: SkillIntermediate,
	}
}

// ClampMealCount bounds n to [MinMeals, MaxMeals].
func ClampMealCount(n int) int {
	return min(max(n, MinMeals), MaxMeals)
}

// Validate reports the first field that falls outside its domain. An empty
// theme is allowed and means no dietary restriction.
func (p Preferences) Validate() error {
	if p.Theme != "" && !slices.Contains(Themes(), p.Theme) {
		return fmt.Errorf("mealplan: unknown theme %q", p.Theme)
	}
	if p.MealCount < MinMeals || p.MealCount > MaxMeals {
		return fmt.Errorf("mealplan: meal count %d outside [%d, %d]", p.MealCount, MinMeals, MaxMeals)
	}
	if !slices.Contains(Cuisines(), p.Cuisine) {
		return fmt.Errorf("mealplan: unknown cuisine %q", p.Cuisine)
	}
	if !slices.Contains(Goals(), p.Goal) {
		return fmt.Errorf("mealplan: unknown goal %q", p.Goal)
	}
	if !slices.Contains(SkillLevels(), p.SkillLevel) {
		return fmt.Errorf("mealplan: unknown skill level %q", p.SkillLevel)
	}
	return nil
}

// ParseTheme matches s case-insensitively against the theme domain.
func ParseTheme(s string) (Theme, error) { return parseEnum("theme", s, Themes()) }

// ParseCuisine matches s case-insensitively against the cuisine domain.
func ParseCuisine(s string) (Cuisine, error) { return parseEnum("cuisine", s, Cuisines()) }

// ParseGoal matches s case-insensitively against the goal domain.
func ParseGoal(s string) (Goal, error) { return parseEnum("goal", s, Goals()) }

// ParseSkillLevel matches s case-insensitively against the skill domain.
func ParseSkillLevel(s string) (SkillLevel, error) { return parseEnum("skill level", s, SkillLevels()) }

func parseEnum[T ~string](field, s string, domain []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range domain {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}

	names := make([]string, len(domain))
	for i, v := range domain {
		names[i] = string(v)
	}

	var zero T
	return zero, fmt.Errorf("mealplan: unknown %s %q (want one of: %s)", field, s, strings.Join(names, ", "))
}
