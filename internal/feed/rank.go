package feed

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
)

// FilterAndRank applique le sélecteur d'humeur et la recherche puis trie par
// nombre de likes décroissant ; à égalité l'ordre d'arrivée est conservé
func FilterAndRank(posts []post.View, moodFilter, query string) []post.View {
	moodFilter = strings.ToLower(strings.TrimSpace(moodFilter))
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := lo.Filter(posts, func(p post.View, _ int) bool {
		if moodFilter != "" && moodFilter != "all" {
			if p.Mood == nil || *p.Mood != moodFilter {
				return false
			}
		}
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Content), query) ||
			strings.Contains(strings.ToLower(p.Profiles.Username), query)
	})

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].LikeCount > filtered[j].LikeCount
	})
	return filtered
}
