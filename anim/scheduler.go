package anim

import (
	"github.com/arloliu/enbaya/internal/encoding"
	"github.com/arloliu/enbaya/section"
)

// scheduler toggles component active flags from run-length coded change points.
//
// Slots are numbered track-major, component-minor. nextChange counts the slots left
// before the next toggle and prevChange the slots passed since the last one.
type scheduler struct {
	runs       *encoding.RunDecoder
	nextChange uint32
	prevChange uint32
}

func (s *scheduler) reset() error {
	s.runs.Rewind()

	run, err := s.runs.Next()
	if err != nil {
		return err
	}
	s.nextChange = run
	s.prevChange = 0

	return nil
}

// scan passes once over every slot in direction dir, toggling the flag of each slot
// a run ends on. Slots inside a run are skipped in bulk.
//
// Forward and backward scans are exact inverses: a backward scan walks the slots in
// reverse, decrements prevChange toward the previous toggle and recovers the run
// that preceded it from the run decoder.
func (s *scheduler) scan(dir encoding.Direction, tracks []track) error {
	total := len(tracks) * section.ComponentCount

	ahead, behind := &s.nextChange, &s.prevChange
	if dir == encoding.Backward {
		ahead, behind = &s.prevChange, &s.nextChange
	}

	for done := 0; done < total; {
		if *ahead != 0 {
			n := min(*ahead, uint32(total-done))
			*ahead -= n
			*behind += n
			done += int(n)

			continue
		}

		slot := done
		if dir == encoding.Backward {
			slot = total - 1 - done
		}
		tracks[slot/section.ComponentCount].flags ^= 1 << (slot % section.ComponentCount)

		run, err := s.runs.Step(dir)
		if err != nil {
			return err
		}
		*ahead = run
		*behind = 0
		done++
	}

	return nil
}
