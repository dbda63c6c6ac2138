package app

import (
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/mealplanner/pkg/mealplan"
)

// newForm builds the preference form bound to prefs. Every field is a
// select, so values outside their domain cannot be entered. submit is set
// by the final confirm.
func newForm(prefs *mealplan.Preferences, submit *bool) *huh.Form {
	*submit = true

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[mealplan.Theme]().
				Title("🥗 Meal Plan Theme").
				Options(enumOptions(mealplan.Themes())...).
				Value(&prefs.Theme),
			huh.NewSelect[int]().
				Title("🍽️ Number of Meals").
				Description("How many meals should the plan include?").
				Options(mealCountOptions()...).
				Value(&prefs.MealCount),
			huh.NewSelect[mealplan.Cuisine]().
				Title("🌎 Preferred Cuisine").
				Options(enumOptions(mealplan.Cuisines())...).
				Value(&prefs.Cuisine),
			huh.NewSelect[mealplan.Goal]().
				Title("🎯 Primary Goal").
				Options(enumOptions(mealplan.Goals())...).
				Value(&prefs.Goal),
			huh.NewSelect[mealplan.SkillLevel]().
				Title("👨‍🍳 Cooking Skill").
				Options(enumOptions(mealplan.SkillLevels())...).
				Inline(true).
				Value(&prefs.SkillLevel),
			huh.NewConfirm().
				Title("Ready?").
				Affirmative("🚀 Generate Meal Plan").
				Negative("Quit").
				Value(submit),
		),
	).WithShowHelp(true)
}

func enumOptions[T ~string](values []T) []huh.Option[T] {
	opts := make([]huh.Option[T], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), v)
	}
	return opts
}

func mealCountOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, mealplan.MaxMeals-mealplan.MinMeals+1)
	for n := mealplan.MinMeals; n <= mealplan.MaxMeals; n++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(n), n))
	}
	return opts
}
