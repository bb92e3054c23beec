package content

// Combine concatenates the block sequences of all articles in processing
// order. This is the input to the single local artifact; every article
// contributes here whether or not it has a category.
func Combine(articles []Article) []Block {
	var out []Block
	for _, a := range articles {
		out = append(out, a.Blocks...)
	}
	return out
}

// ByCategory groups article block sequences by detected category for the
// per-category remote documents. Articles without a category contribute
// nothing here; they still appear in the combined local artifact.
func ByCategory(articles []Article) map[string][]Block {
	groups := make(map[string][]Block)
	for _, a := range articles {
		if a.Category == "" {
			continue
		}
		groups[a.Category] = append(groups[a.Category], a.Blocks...)
	}
	return groups
}

// Titles returns each article's display title in processing order.
func Titles(articles []Article) []string {
	titles := make([]string, 0, len(articles))
	for _, a := range articles {
		titles = append(titles, a.Title)
	}
	return titles
}
