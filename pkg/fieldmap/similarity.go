package fieldmap

// Ratio computes a normalized string similarity in [0,1] from the longest
// common subsequence of a and b: 2*LCS / (len(a)+len(b)). 1.0 means
// identical, 0.0 means no characters in common. Two empty strings are
// identical by convention.
//
// Time O(len(a)*len(b)), space O(min(len(a), len(b))).
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	return 2.0 * float64(lcs(a, b)) / float64(len(a)+len(b))
}

// lcs returns the length of the longest common subsequence, using two
// rolling rows instead of the full matrix.
func lcs(a, b string) int {
	// Keep a as the shorter string so the rows stay small.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for j := 1; j <= len(b); j++ {
		for i := 1; i <= len(a); i++ {
			if a[i-1] == b[j-1] {
				curr[i] = prev[i-1] + 1
			} else if prev[i] >= curr[i-1] {
				curr[i] = prev[i]
			} else {
				curr[i] = curr[i-1]
			}
		}
		prev, curr = curr, prev
		for i := range curr {
			curr[i] = 0
		}
	}
	return prev[len(a)]
}
