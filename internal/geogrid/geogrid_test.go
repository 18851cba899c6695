package geogrid_test

import (
	"errors"
	"testing"

	"github.com/zorofrizzy/breatheBack/internal/geogrid"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

func TestZoneID_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := geogrid.ZoneID(37.7749, -122.4194)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for i := 0; i < 100; i++ {
		got, err := geogrid.ZoneID(37.7749, -122.4194)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got != first {
			t.Fatalf("non-deterministic id: got=%q want=%q", got, first)
		}
	}
	if first != "zone_3777_-12242" {
		t.Fatalf("unexpected id: %q", first)
	}
}

func TestZoneID_NearbyCoordinatesShareCell(t *testing.T) {
	t.Parallel()

	a, err := geogrid.ZoneID(37.7749, -122.4194)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := geogrid.ZoneID(37.7742, -122.4191)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a != b {
		t.Fatalf("coordinates in the same cell map to different zones: %q vs %q", a, b)
	}
}

func TestZoneID_NegativeCoordinatesFloorTowardNegativeInfinity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lat  float64
		lng  float64
		want string
	}{
		{"negative lat interior", -0.005, 0.005, "zone_-1_0"},
		{"negative both interior", -0.005, -0.005, "zone_-1_-1"},
		{"deep negative", -33.8688, 151.2093, "zone_-3387_15120"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := geogrid.ZoneID(tc.lat, tc.lng)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestZoneID_OutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lat  float64
		lng  float64
	}{
		{"lat too high", 90.01, 0},
		{"lat too low", -90.01, 0},
		{"lng too high", 0, 180.01},
		{"lng too low", 0, -180.01},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := geogrid.ZoneID(tc.lat, tc.lng)
			if !errors.Is(err, e.ErrInvalidCoordinates) {
				t.Fatalf("want ErrInvalidCoordinates, got %v", err)
			}
		})
	}
}

func TestZoneID_RangeEndpointsAccepted(t *testing.T) {
	t.Parallel()

	for _, c := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
		if _, err := geogrid.ZoneID(c[0], c[1]); err != nil {
			t.Fatalf("endpoint (%v,%v) rejected: %v", c[0], c[1], err)
		}
	}
}

func TestBounds_ContainsOriginatingCoordinate(t *testing.T) {
	t.Parallel()

	// Interior coordinates only. Values sitting exactly on a cell edge are
	// owned by one of the two cells depending on float rounding, which is
	// fine for the contract but not a useful assertion.
	coords := [][2]float64{
		{37.7749, -122.4194},
		{51.5072, -0.1276},
		{-33.8688, 151.2093},
		{0.0042, 0.0042},
		{-0.0042, -0.0042},
	}
	for _, c := range coords {
		lat, lng := c[0], c[1]
		id, err := geogrid.ZoneID(lat, lng)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		b, err := geogrid.Bounds(id)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if lat < b.South || lat >= b.North {
			t.Fatalf("lat %v outside [%v,%v) for %s", lat, b.South, b.North, id)
		}
		if lng < b.West || lng >= b.East {
			t.Fatalf("lng %v outside [%v,%v) for %s", lng, b.West, b.East, id)
		}
	}
}

func TestCenter_RoundTripsToSameZone(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"zone_3777_-12242", "zone_0_0", "zone_-1_-1", "zone_-3387_15120"} {
		lat, lng, err := geogrid.Center(id)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		got, err := geogrid.ZoneID(lat, lng)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got != id {
			t.Fatalf("center of %s maps to %s", id, got)
		}
	}
}

func TestParse_MalformedIdentifiers(t *testing.T) {
	t.Parallel()

	bad := []string{
		"",
		"zone",
		"zone_1",
		"zone_1_2_3",
		"cell_1_2",
		"zone_a_2",
		"zone_1_b",
		"zone_1.5_2",
	}
	for _, id := range bad {
		if _, err := geogrid.Bounds(id); !errors.Is(err, e.ErrInvalidZoneID) {
			t.Fatalf("Bounds(%q): want ErrInvalidZoneID, got %v", id, err)
		}
		if _, _, err := geogrid.Center(id); !errors.Is(err, e.ErrInvalidZoneID) {
			t.Fatalf("Center(%q): want ErrInvalidZoneID, got %v", id, err)
		}
	}
}
