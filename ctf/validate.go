package ctf

import "math"

/*
Validate is the last gate before a CTF set is committed.

	Args:
		s: coefficient set in the unit system it was derived in
		maxTerms: largest history order allowed

	Returns:
		nil, or a *ConstructionError saying which limit was exceeded and by how much
*/
func Validate(s *CTFSet, maxTerms int) error {
	if s.NumTerms > maxTerms {
		return newConstructionError("", ErrTermLimitExceeded,
			"%d history terms required at time step %.3f h, maximum is %d (exceeded by %d)",
			s.NumTerms, s.TimeStep, maxTerms, s.NumTerms-maxTerms)
	}
	if s.NumTerms < 1 {
		return newConstructionError("", ErrDiscretization, "history order %d is below 1", s.NumTerms)
	}
	if !(s.TimeStep > 0.0) {
		return newConstructionError("", ErrDiscretization, "time step %g h is not positive", s.TimeStep)
	}

	n := s.NumTerms + 1
	if len(s.Outside) != n || len(s.Cross) != n || len(s.Inside) != n || len(s.Flux) != s.NumTerms {
		return newConstructionError("", ErrConvergence,
			"coefficient lengths %d/%d/%d/%d do not match order %d",
			len(s.Outside), len(s.Cross), len(s.Inside), len(s.Flux), s.NumTerms)
	}

	for _, seq := range [][]float64{s.Outside, s.Cross, s.Inside, s.Flux} {
		for _, v := range seq {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return newConstructionError("", ErrConvergence, "non-finite coefficient")
			}
		}
	}
	return nil
}
