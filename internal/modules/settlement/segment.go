// README: Trip segmentation by border-crossing dates.
package settlement

import (
	"fmt"
	"time"
)

// Border-day boundaries: the traveller is assumed to cross out at 08:00 and
// to remain abroad until 23:59 of the crossing-in date; the return leg
// starts at 00:00 of that same date. The crossing-in day is therefore
// covered by both the abroad and the return segment on purpose.
const (
	crossOutHour     = 8
	crossInEndHour   = 23
	crossInEndMinute = 59
)

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts midnight-to-midnight whole days from a to b.
func daysBetween(a, b time.Time) int {
	d := int(dateOf(b).Sub(dateOf(a)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func validate(in TripInput) error {
	if in.Departure.IsZero() || in.Return.IsZero() {
		return fmt.Errorf("%w: departure and return instants are required", ErrInvalidInput)
	}
	if in.Return.Before(in.Departure) {
		return fmt.Errorf("%w: return precedes departure", ErrInvalidInput)
	}
	if (in.CrossingOut == nil) != (in.CrossingIn == nil) {
		return fmt.Errorf("%w: border crossings must be given in pairs", ErrInvalidInput)
	}
	if in.CrossingOut != nil {
		out, back := dateOf(*in.CrossingOut), dateOf(*in.CrossingIn)
		if out.Before(dateOf(in.Departure)) || back.Before(out) || dateOf(in.Return).Before(back) {
			return fmt.Errorf("%w: crossings must be ordered departure <= out <= in <= return", ErrInvalidInput)
		}
	}
	return nil
}

// buildSegments splits the trip into 1-3 chronological segments. Domestic
// trips (or trips without crossing dates) yield exactly one. Zero-length
// home legs are omitted; the segment containing the return instant is
// marked Final.
func buildSegments(in TripInput, homeCountry string) []Segment {
	dest := in.DestinationCountry
	if dest == "" {
		dest = homeCountry
	}
	domestic := dest == homeCountry

	if in.CrossingOut == nil || domestic {
		return []Segment{{
			Start:   in.Departure,
			End:     in.Return,
			Country: dest,
			Home:    domestic,
			Final:   true,
		}}
	}

	outDate := dateOf(*in.CrossingOut)
	inDate := dateOf(*in.CrossingIn)
	outInstant := outDate.Add(crossOutHour * time.Hour)

	var segs []Segment

	if !sameDate(in.Departure, outDate) {
		segs = append(segs, Segment{
			Start:   in.Departure,
			End:     outInstant,
			Country: homeCountry,
			Home:    true,
		})
	}

	abroadStart := outInstant
	if len(segs) == 0 && in.Departure.After(abroadStart) {
		abroadStart = in.Departure
	}
	abroad := Segment{
		Start:   abroadStart,
		End:     inDate.Add(crossInEndHour*time.Hour + crossInEndMinute*time.Minute),
		Country: dest,
		Home:    false,
	}

	if sameDate(inDate, in.Return) {
		// no return leg: the abroad segment carries the return instant
		if in.Return.Before(abroad.End) {
			abroad.End = in.Return
		}
		abroad.Final = true
		return append(segs, abroad)
	}

	segs = append(segs, abroad)
	segs = append(segs, Segment{
		Start:   inDate,
		End:     in.Return,
		Country: homeCountry,
		Home:    true,
		Final:   true,
	})
	return segs
}
