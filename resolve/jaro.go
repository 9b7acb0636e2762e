package resolve

// JaroSimilarity computes the Jaro similarity of a and b, in [0,1]. No
// corpus example or ecosystem library implements plain Jaro (only
// Jaro-Winkler variants, which over-weight shared prefixes and would
// skew GeonamesStage's >0.9 threshold), so this follows the standard
// definition directly: count matching characters within a sliding
// window, then half the transpositions among matches.
func JaroSimilarity(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 && len(br) == 0 {
		return 1
	}
	if len(ar) == 0 || len(br) == 0 {
		return 0
	}

	matchDistance := max(len(ar), len(br))/2 - 1
	if matchDistance < 0 {
		matchDistance = 0
	}

	aMatches := make([]bool, len(ar))
	bMatches := make([]bool, len(br))

	matches := 0
	for i := range ar {
		start := max(0, i-matchDistance)
		end := min(len(br), i+matchDistance+1)
		for j := start; j < end; j++ {
			if bMatches[j] || ar[i] != br[j] {
				continue
			}
			aMatches[i] = true
			bMatches[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	k := 0
	for i := range ar {
		if !aMatches[i] {
			continue
		}
		for !bMatches[k] {
			k++
		}
		if ar[i] != br[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(len(ar)) + m/float64(len(br)) + (m-t)/m) / 3
}
