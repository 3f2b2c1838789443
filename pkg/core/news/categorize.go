package news

import "strings"

// Category labels, in the order categories are tried. An article lands in
// the first category whose keyword list matches; unmatched articles go to
// "other".
var categoryOrder = []string{
	"financial", "products", "management", "regulatory", "market_trends", "ma",
}

var categoryKeywords = map[string][]string{
	"financial": {"revenue", "profit", "earnings", "results", "quarterly",
		"q1", "q2", "q3", "q4", "sales", "growth", "loss", "margin", "ebitda"},
	"products":      {"launch", "new product", "service", "innovation", "technology", "platform"},
	"management":    {"ceo", "cfo", "chairman", "board", "director", "appoint", "resign", "management"},
	"regulatory":    {"sebi", "rbi", "regulator", "compliance", "legal", "court", "law", "penalty"},
	"market_trends": {"market", "industry", "sector", "competition", "share", "trend"},
	"ma":            {"merger", "acquisition", "buyout", "takeover", "deal", "partnership", "joint venture"},
}

// Categorize buckets articles by keyword match on title and summary.
func Categorize(articles []Article) map[string][]Article {
	categories := make(map[string][]Article)
	for _, article := range articles {
		text := strings.ToLower(article.Title + " " + article.Summary)

		matched := ""
		for _, category := range categoryOrder {
			for _, keyword := range categoryKeywords[category] {
				if strings.Contains(text, keyword) {
					matched = category
					break
				}
			}
			if matched != "" {
				break
			}
		}
		if matched == "" {
			matched = "other"
		}
		categories[matched] = append(categories[matched], article)
	}
	return categories
}
