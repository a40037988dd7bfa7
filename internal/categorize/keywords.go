package categorize

import (
	"strings"

	"github.com/spendsense/spendsense/constants"
)

// Deterministic keyword tier. Merchant vocabulary seen in Indian UPI and
// bank narrations; checked in order, first hit wins.
var keywordTable = []struct {
	category constants.Category
	keywords []string
}{
	{constants.Food, []string{"zomato", "swiggy", "restaurant", "cafe", "starbucks", "blinkit", "mcdonalds", "burger", "pizza", "food", "tea", "coffee"}},
	{constants.Travel, []string{"uber", "ola", "petrol", "fuel", "train", "irctc", "metro", "bus", "cab", "auto"}},
	{constants.Shopping, []string{"amazon", "flipkart", "myntra", "mall", "electronics", "cloth", "shoe", "market"}},
	{constants.Bills, []string{"recharge", "electricity", "bill", "jio", "airtel", "gas", "water", "wifi", "internet", "mobile"}},
	{constants.Health, []string{"medical", "hospital", "pharmacy", "apollo", "doctor", "clinic", "medicine", "health"}},
	{constants.Education, []string{"college", "fees", "books", "school", "course", "udemy", "coursera", "learning"}},
	{constants.Entertainment, []string{"netflix", "spotify", "cinema", "movie", "prime", "hotstar", "game", "play"}},
	{constants.Groceries, []string{"grocery", "bigbasket", "kirana", "supermart"}},
	{constants.Rent, []string{"rent", "landlord"}},
	{constants.Investment, []string{"zerodha", "groww", "mutual fund", "sip "}},
}

// KeywordCategory resolves a category from the description alone.
func KeywordCategory(description string) (constants.Category, bool) {
	desc := strings.ToLower(description)
	for _, entry := range keywordTable {
		for _, kw := range entry.keywords {
			if strings.Contains(desc, kw) {
				return entry.category, true
			}
		}
	}
	return "", false
}
