package scholarship

// LevenshteinDistance computes the minimum number of single-character
// insertions, deletions and substitutions needed to transform a into b,
// via the classic (m+1)x(n+1) dynamic-programming table.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)

	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
		table[i][0] = i
	}
	for j := 0; j <= n; j++ {
		table[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if ra[i-1] == rb[j-1] {
				table[i][j] = table[i-1][j-1]
				continue
			}
			table[i][j] = 1 + min(table[i-1][j-1], min(table[i][j-1], table[i-1][j]))
		}
	}
	return table[m][n]
}

// SimilarityScore normalizes the Levenshtein distance between a and b to a
// 0-100 score relative to the longer string. Two empty strings score 100.
func SimilarityScore(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}
	score := (float64(maxLen-LevenshteinDistance(a, b)) / float64(maxLen)) * 100
	if score < 0 {
		return 0
	}
	return score
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
