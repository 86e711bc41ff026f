package facematch

// Candidate pairs an enrolled embedding with its owner.
type Candidate struct {
	OwnerID   string
	Embedding []float64
}

// Match is the outcome of scoring a query against a candidate set.
// Best and SecondBest start at -1, below any reachable similarity, so a
// SecondBest of -1 means fewer than two scorable candidates existed.
type Match struct {
	OwnerID    string
	Best       float64
	SecondBest float64
	// Scored is the number of candidates that carried a non-empty embedding.
	Scored int
}

// Margin is the confidence gap between the two best scores.
func (m Match) Margin() float64 {
	return m.Best - m.SecondBest
}

// BestMatch scores query against every candidate in one linear pass,
// tracking only the highest and second-highest similarity. Candidates with
// empty embeddings are skipped. The function is a pure fold over the
// candidate list; no indexing is used, which is fine at the enrolled-staff
// scale this system targets.
func BestMatch(query []float64, candidates []Candidate) Match {
	m := Match{Best: -1, SecondBest: -1}
	for _, c := range candidates {
		if len(c.Embedding) == 0 {
			continue
		}
		m.Scored++
		score := Cosine(query, c.Embedding)
		switch {
		case score > m.Best:
			m.SecondBest = m.Best
			m.Best = score
			m.OwnerID = c.OwnerID
		case score > m.SecondBest:
			m.SecondBest = score
		}
	}
	return m
}
