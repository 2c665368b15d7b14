package alignment

// Score accumulates link counts of predicted alignments against gold ones.
type Score struct {
	Predicted         int // |A|
	Sure              int // |S|
	PredictedSure     int // |A ∩ S|
	PredictedPossible int // |A ∩ P|
}

// Add counts one sentence pair.
func (s *Score) Add(predicted []Link, gold Gold) {
	sure := toSet(gold.Sure)
	possible := toSet(gold.Possible)
	for l := range sure {
		possible[l] = struct{}{}
	}

	s.Sure += len(sure)
	for _, l := range dedupe(aligned(predicted)) {
		s.Predicted++
		if _, ok := sure[l]; ok {
			s.PredictedSure++
		}
		if _, ok := possible[l]; ok {
			s.PredictedPossible++
		}
	}
}

// Precision returns |A ∩ P| / |A|.
func (s Score) Precision() float64 {
	if s.Predicted == 0 {
		return 0
	}
	return float64(s.PredictedPossible) / float64(s.Predicted)
}

// Recall returns |A ∩ S| / |S|.
func (s Score) Recall() float64 {
	if s.Sure == 0 {
		return 0
	}
	return float64(s.PredictedSure) / float64(s.Sure)
}

// AER returns the alignment error rate 1 - (|A ∩ S| + |A ∩ P|) / (|A| + |S|).
func (s Score) AER() float64 {
	if s.Predicted+s.Sure == 0 {
		return 0
	}
	return 1 - float64(s.PredictedSure+s.PredictedPossible)/float64(s.Predicted+s.Sure)
}
