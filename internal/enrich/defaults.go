package enrich

// DefaultTables returns the built-in category keyword table. First hit wins,
// so more specific categories sit above the broad ones.
func DefaultTables() Tables {
	return Tables{Categories: []CategoryRule{
		{Name: "Subscriptions", Keywords: []string{
			"netflix", "spotify", "hulu", "disney+", "youtube premium",
			"icloud", "subscription", "membership", "patreon", "audible",
		}},
		{Name: "Groceries", Keywords: []string{
			"grocery", "supermarket", "safeway", "kroger", "whole foods",
			"trader joe", "aldi", "costco", "loblaws", "save-on",
		}},
		{Name: "Dining", Keywords: []string{
			"restaurant", "cafe", "coffee", "starbucks", "pizza", "sushi",
			"doordash", "uber eats", "skipthedishes", "mcdonald", "burger",
		}},
		{Name: "Transport", Keywords: []string{
			"uber", "lyft", "taxi", "transit", "parking", "shell",
			"chevron", "petro", "esso", "gas station", "fuel",
		}},
		{Name: "Utilities", Keywords: []string{
			"electric", "hydro", "water", "internet", "comcast", "verizon",
			"t-mobile", "rogers", "telus", "utility", "energy",
		}},
		{Name: "Entertainment", Keywords: []string{
			"cinema", "theatre", "theater", "steam", "playstation",
			"nintendo", "ticketmaster", "concert",
		}},
		{Name: "Health", Keywords: []string{
			"pharmacy", "drug mart", "dental", "clinic", "gym", "fitness",
			"optical", "physio",
		}},
		{Name: "Travel", Keywords: []string{
			"airline", "airways", "air canada", "westjet", "hotel",
			"airbnb", "expedia", "booking.com",
		}},
		{Name: "Shopping", Keywords: []string{
			"amazon", "walmart", "target", "best buy", "ikea", "ebay",
			"etsy", "canadian tire",
		}},
		{Name: "Income", Keywords: []string{
			"payroll", "direct deposit", "salary", "interest earned",
		}},
		{Name: "Fees", Keywords: []string{
			"service fee", "monthly fee", "overdraft", "interest charge",
			"annual fee", "nsf",
		}},
	}}
}
