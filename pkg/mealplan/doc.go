// Package mealplan holds the meal-planning domain: the bounded preference
// fields collected from the user, the prompt composed from them, and the
// plain-text download produced from a completion.
package mealplan
