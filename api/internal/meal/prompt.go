package meal

import "strings"

const (
	analyzeMaxTokens = 500
	summaryMaxTokens = 200

	NoPhotosNotice = "No meal photos found for today. Please send your meal photos to this bot."
	SummaryHeader  = "Your nutrition summary for today:\n"
)

// Dimensions: девять показателей, которые оценивает модель.
var Dimensions = []string{
	"Calories", "Protein", "Healthy Fats", "Carbohydrates", "Fiber",
	"Vegetables", "Fruits", "Hydration", "Herbs & Spices",
}

var AnalyzePrompt = "Analyze this meal photo and estimate: " + strings.Join(Dimensions, ", ") + ". Return values for each."

// SummaryPrompt встраивает анализы в исходном порядке, разделяя пустой строкой.
func SummaryPrompt(analyses []string) string {
	var b strings.Builder
	b.WriteString("Here are my meal nutrition analyses for today:\n")
	b.WriteString(strings.Join(analyses, "\n\n"))
	b.WriteString("\nSummarize my total intake for ")
	b.WriteString(strings.Join(Dimensions, ", "))
	b.WriteString(". Identify any deficiencies and suggest what I should eat tomorrow to improve my nutrition. Keep the summary concise (max 5 lines).")
	return b.String()
}
