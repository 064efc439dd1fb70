package settlement

import (
	"errors"
	"testing"
	"time"

	"github.com/clb2clb2/sgtri-desp/internal/types"
)

func day(d, m, y int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func at(d, m, y int, clock string) time.Time {
	c, err := types.ParseClock(clock)
	if err != nil {
		panic(err)
	}
	return types.At(day(d, m, y), c)
}

func ptr(t time.Time) *time.Time { return &t }

func TestBuildSegmentsDomestic(t *testing.T) {
	in := TripInput{
		Departure:          at(15, 1, 2025, "08:00"),
		Return:             at(17, 1, 2025, "19:00"),
		DestinationCountry: "España",
	}
	segs := buildSegments(in, "España")
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	s := segs[0]
	if !s.Home || !s.Final || s.Country != "España" {
		t.Errorf("segment = %+v", s)
	}
	if !s.Start.Equal(in.Departure) || !s.End.Equal(in.Return) {
		t.Errorf("segment span = %v..%v", s.Start, s.End)
	}
}

func TestBuildSegmentsInternationalThree(t *testing.T) {
	in := TripInput{
		Departure:          at(9, 3, 2025, "18:00"),
		Return:             at(14, 3, 2025, "19:00"),
		CrossingOut:        ptr(day(10, 3, 2025)),
		CrossingIn:         ptr(day(13, 3, 2025)),
		DestinationCountry: "Francia",
	}
	segs := buildSegments(in, "España")
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}

	out := segs[0]
	if !out.Home || out.Final {
		t.Errorf("outbound segment = %+v", out)
	}
	if !out.End.Equal(at(10, 3, 2025, "08:00")) {
		t.Errorf("outbound ends %v, want crossing day 08:00", out.End)
	}

	abroad := segs[1]
	if abroad.Home || abroad.Final || abroad.Country != "Francia" {
		t.Errorf("abroad segment = %+v", abroad)
	}
	if !abroad.Start.Equal(at(10, 3, 2025, "08:00")) || !abroad.End.Equal(at(13, 3, 2025, "23:59")) {
		t.Errorf("abroad span = %v..%v", abroad.Start, abroad.End)
	}

	back := segs[2]
	if !back.Home || !back.Final {
		t.Errorf("return segment = %+v", back)
	}
	if !back.Start.Equal(day(13, 3, 2025)) || !back.End.Equal(in.Return) {
		t.Errorf("return span = %v..%v", back.Start, back.End)
	}
}

// Crossing out on the departure date drops the outbound home leg; the
// abroad segment then starts at the actual departure instant.
func TestBuildSegmentsNoOutboundLeg(t *testing.T) {
	in := TripInput{
		Departure:          at(1, 1, 2025, "10:00"),
		Return:             at(5, 1, 2025, "23:00"),
		CrossingOut:        ptr(day(1, 1, 2025)),
		CrossingIn:         ptr(day(4, 1, 2025)),
		DestinationCountry: "Japón",
	}
	segs := buildSegments(in, "España")
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if !segs[0].Start.Equal(in.Departure) {
		t.Errorf("abroad starts %v, want departure instant", segs[0].Start)
	}
	if !segs[1].Final {
		t.Error("return segment not marked final")
	}
}

// Crossings on both trip edge dates collapse to a single abroad segment
// that carries the return instant.
func TestBuildSegmentsAbroadOnly(t *testing.T) {
	in := TripInput{
		Departure:          at(1, 1, 2025, "06:00"),
		Return:             at(4, 1, 2025, "21:00"),
		CrossingOut:        ptr(day(1, 1, 2025)),
		CrossingIn:         ptr(day(4, 1, 2025)),
		DestinationCountry: "Francia",
	}
	segs := buildSegments(in, "España")
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	s := segs[0]
	if s.Home || !s.Final || s.Country != "Francia" {
		t.Errorf("segment = %+v", s)
	}
	if !s.End.Equal(in.Return) {
		t.Errorf("segment ends %v, want return instant", s.End)
	}
}

func TestBuildSegmentsHomeDestinationIgnoresCrossings(t *testing.T) {
	in := TripInput{
		Departure:          at(1, 1, 2025, "06:00"),
		Return:             at(4, 1, 2025, "21:00"),
		CrossingOut:        ptr(day(2, 1, 2025)),
		CrossingIn:         ptr(day(3, 1, 2025)),
		DestinationCountry: "España",
	}
	segs := buildSegments(in, "España")
	if len(segs) != 1 || !segs[0].Home {
		t.Fatalf("segments = %+v, want single home segment", segs)
	}
}

func TestValidate(t *testing.T) {
	valid := TripInput{
		Departure:          at(1, 1, 2025, "10:00"),
		Return:             at(5, 1, 2025, "23:00"),
		CrossingOut:        ptr(day(1, 1, 2025)),
		CrossingIn:         ptr(day(4, 1, 2025)),
		DestinationCountry: "Japón",
	}
	if err := validate(valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*TripInput)
	}{
		{"missing departure", func(in *TripInput) { in.Departure = time.Time{} }},
		{"missing return", func(in *TripInput) { in.Return = time.Time{} }},
		{"return before departure", func(in *TripInput) { in.Return = at(31, 12, 2024, "09:00") }},
		{"lone crossing", func(in *TripInput) { in.CrossingIn = nil }},
		{"crossing before departure", func(in *TripInput) { in.CrossingOut = ptr(day(31, 12, 2024)) }},
		{"crossings out of order", func(in *TripInput) {
			in.CrossingOut = ptr(day(4, 1, 2025))
			in.CrossingIn = ptr(day(1, 1, 2025))
		}},
		{"crossing after return", func(in *TripInput) { in.CrossingIn = ptr(day(6, 1, 2025)) }},
	}
	for _, tt := range tests {
		in := valid
		tt.mutate(&in)
		if err := validate(in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", tt.name, err)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	if got := daysBetween(at(15, 1, 2025, "23:00"), at(17, 1, 2025, "01:00")); got != 2 {
		t.Errorf("daysBetween = %d, want 2", got)
	}
	if got := daysBetween(day(15, 1, 2025), day(15, 1, 2025)); got != 0 {
		t.Errorf("same day = %d, want 0", got)
	}
}
