package engine

// levenshtein computes the classic dynamic-programming edit distance between
// two strings with unit insertion, deletion, and substitution costs. No
// transposition discount is applied.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// fuzzyThreshold returns the maximum accepted edit distance for a query:
// longer queries tolerate proportionally more edits.
func fuzzyThreshold(query string) int {
	t := len([]rune(query)) / 3
	if t < 2 {
		t = 2
	}
	return t
}

// fuzzyScore converts an edit distance into a match score in [0,1].
func fuzzyScore(distance int, query string) float64 {
	n := len([]rune(query))
	if n == 0 {
		return 0
	}
	s := 1 - float64(distance)/float64(n)
	if s < 0 {
		return 0
	}
	return s
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
