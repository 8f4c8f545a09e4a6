package ranger

import "github.com/chewxy/math32"

// rejectLimit consecutive outliers are taken as a real move and accepted.
const rejectLimit = 3

// Smoother is an exponential moving average over distances that ignores
// single-sample jumps (a stray echo) but follows a jump that persists.
type Smoother struct {
	Alpha   float32 // weight of the new sample, (0,1]
	MaxJump float32 // mm; 0 disables rejection

	value   float32
	primed  bool
	rejects int
}

// Add feeds one sample and reports whether it was used.
func (s *Smoother) Add(mm float32) bool {
	if math32.IsNaN(mm) || math32.IsInf(mm, 0) || mm < 0 {
		return false
	}
	if !s.primed {
		s.value, s.primed = mm, true
		return true
	}
	if s.MaxJump > 0 && math32.Abs(mm-s.value) > s.MaxJump {
		s.rejects++
		if s.rejects < rejectLimit {
			return false
		}
		s.value, s.rejects = mm, 0
		return true
	}
	s.rejects = 0
	a := s.Alpha
	if a <= 0 || a > 1 {
		a = 1
	}
	s.value += a * (mm - s.value)
	return true
}

// Value is the smoothed distance, rounded to 0.1 mm; ok is false before the
// first sample.
func (s *Smoother) Value() (mm float32, ok bool) {
	return math32.Round(s.value*10) / 10, s.primed
}

func (s *Smoother) Reset() { *s = Smoother{Alpha: s.Alpha, MaxJump: s.MaxJump} }
