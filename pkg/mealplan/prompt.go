package mealplan

import (
	"fmt"
	"strings"
)

// SystemInstruction is the fixed system turn sent with every prompt.
const SystemInstruction = "You are an expert meal planning assistant who creates practical meal plans."

// noRestrictions stands in for an empty theme.
const noRestrictions = "No restrictions"

const promptTemplate = `Create a practical meal timetable and a weekly meal plan with these details:
- Dietary preferences: %[1]s
- Number of meals: %[2]d
- Cooking skill: %[3]s
- Preferred cuisine: %[4]s
- Goal: %[5]s

Format your response with clear sections:
## 🍽️ Food Timetable
(Put it in a table format for each day. Include breakfast, lunch, dinner, and snacks according to the number of meals %[2]d selected. For each row, add recommended serving sizes. For instance, "2 eggs (140 calories)" and their total calories.
Each meal should have all the food classes)

## 🍽️ MEALS
(List each meal with name, key ingredients, and prep time)

## 🛒 GROCERY LIST
(Organized by category: Produce, Proteins, Pantry, etc.)

## 💡 TIPS
(Meal prep suggestions, storage tips, money-saving ideas)

Keep it realistic and achievable for a %[6]s cook.`

// Section headings the prompt asks the model to produce, in order.
var Sections = []string{"Food Timetable", "MEALS", "GROCERY LIST", "TIPS"}

// ComposePrompt renders p into the instruction sent as the user turn. It is
// a pure function of p.
func ComposePrompt(p Preferences) string {
	theme := string(p.Theme)
	if theme == "" {
		theme = noRestrictions
	}

	return fmt.Sprintf(promptTemplate,
		theme,
		p.MealCount,
		p.SkillLevel,
		p.Cuisine,
		p.Goal,
		strings.ToLower(string(p.SkillLevel)),
	)
}
