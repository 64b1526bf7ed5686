// Package similarity scores string likeness for author-name matching.
package similarity

// Ratio returns a sequence-similarity score in [0, 1] for two strings:
// twice the number of characters covered by common matching blocks,
// divided by the combined length of both strings. Identical strings
// score exactly 1.0; strings with no character in common score 0.0.
//
// Comparison is case-sensitive; callers normalize case first. Strings
// are compared rune-wise so names with multibyte characters score the
// same as their ASCII equivalents.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matched := matchedRunes(ra, rb, 0, len(ra), 0, len(rb))
	return 2.0 * float64(matched) / float64(total)
}

// matchedRunes sums the lengths of common matching blocks in
// a[alo:ahi] vs b[blo:bhi]: find the longest common block, then recurse
// on the unmatched pieces to its left and right.
func matchedRunes(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, k := longestMatch(a, b, alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	return k +
		matchedRunes(a, b, alo, i, blo, j) +
		matchedRunes(a, b, i+k, ahi, j+k, bhi)
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] within the
// given ranges. Ties break toward the earliest position in a, then b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	// lengths[j] = length of the common run ending at a[i], b[j]
	lengths := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return besti, bestj, bestk
}
