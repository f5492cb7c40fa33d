package places_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

func populated() places.Record {
	return places.Record{
		Name:        "Epoch Coffee",
		Address:     "221 W N Loop Blvd, Austin, TX 78751",
		Latitude:    30.318725,
		Longitude:   -97.724243,
		Category:    "Coffee & Tea, Cafes",
		Phone:       "(512) 454-3762",
		Email:       "hello@epochcoffee.com",
		ContactName: "Mike",
		Website:     "http://www.epochcoffee.com/",
		ParkingInfo: "bike rack in front",
		ExtraInfo:   "open 24 hours",
	}
}

// randomRecord fills a random subset of fields from a small value pool so
// that conflicts and gaps both show up.
func randomRecord(r *rand.Rand, weight int) places.Record {
	str := func(field string) string {
		if r.IntN(3) == 0 {
			return ""
		}
		return field + "-" + string(rune('a'+r.IntN(3)))
	}
	num := func() float64 {
		if r.IntN(3) == 0 {
			return 0
		}
		return float64(r.IntN(3)+1) / 4
	}
	return places.Record{
		Name: str("name"), Address: str("address"), Latitude: num(), Longitude: num(),
		Category: str("type"), Phone: str("phone"), Email: str("email"),
		ContactName: str("contact"), Website: str("web"), ParkingInfo: str("parking"),
		ExtraInfo: str("extra"), Weight: weight,
	}
}

func TestMergeEndToEnd(t *testing.T) {
	a := places.Record{Name: "Epoch Coffee - North Loop", Phone: "(512) 454-3762", Weight: 0}
	b := places.Record{Name: "Epoch Coffee", Category: "Coffee & Tea, Cafes", Weight: 10}

	got := places.Merge(a, b)

	assert.Equal(t, places.Record{
		Name:     "Epoch Coffee - North Loop",
		Category: "Coffee & Tea, Cafes",
		Phone:    "(512) 454-3762",
		Weight:   0,
	}, got)
}

func TestMergeIdentity(t *testing.T) {
	r := populated()

	assert.Equal(t, r, places.Merge(places.Record{}, r))
	assert.Equal(t, r, places.Merge(r, places.Record{}))

	t.Run("weighted record still dominates the seed", func(t *testing.T) {
		weighted := populated()
		weighted.Weight = 10
		assert.Equal(t, r, places.Merge(places.Record{}, weighted))
	})
}

func TestMergeEqualWeight(t *testing.T) {
	a := places.Record{Name: "A", Phone: "111", Latitude: 1.5}
	b := places.Record{Name: "B", Website: "https://b.example", Longitude: 2.5}

	ab := places.Merge(a, b)
	ba := places.Merge(b, a)

	// First operand wins on true conflicts.
	assert.Equal(t, "A", ab.Name)
	assert.Equal(t, "B", ba.Name)

	// Fields populated on one side only agree in both directions.
	for _, m := range []places.Record{ab, ba} {
		assert.Equal(t, "111", m.Phone)
		assert.Equal(t, "https://b.example", m.Website)
		assert.Equal(t, 1.5, m.Latitude)
		assert.Equal(t, 2.5, m.Longitude)
	}
}

func TestMergeWeightPrecedence(t *testing.T) {
	t.Run("lower weight on the left", func(t *testing.T) {
		a := places.Record{Name: "Trusted", Phone: "", Weight: 1}
		b := places.Record{Name: "Other", Phone: "222", Weight: 5}
		got := places.Merge(a, b)
		assert.Equal(t, "Trusted", got.Name)
		assert.Equal(t, "222", got.Phone)
	})

	t.Run("lower weight on the right overrides a set left value", func(t *testing.T) {
		a := places.Record{Name: "Untrusted", Website: "https://a.example", Weight: 10}
		b := places.Record{Name: "Trusted", Weight: 0}
		got := places.Merge(a, b)
		assert.Equal(t, "Trusted", got.Name)
		assert.Equal(t, "https://a.example", got.Website)
	})

	t.Run("property", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		for i := 0; i < 500; i++ {
			a := randomRecord(rng, rng.IntN(5))
			b := randomRecord(rng, a.Weight+1+rng.IntN(5))
			got := places.Merge(a, b)
			require.Zero(t, got.Weight)

			checks := []struct {
				av, got any
				set     bool
			}{
				{a.Name, got.Name, a.Name != ""},
				{a.Address, got.Address, a.Address != ""},
				{a.Latitude, got.Latitude, a.Latitude != 0},
				{a.Longitude, got.Longitude, a.Longitude != 0},
				{a.Category, got.Category, a.Category != ""},
				{a.Phone, got.Phone, a.Phone != ""},
				{a.Email, got.Email, a.Email != ""},
				{a.ContactName, got.ContactName, a.ContactName != ""},
				{a.Website, got.Website, a.Website != ""},
				{a.ParkingInfo, got.ParkingInfo, a.ParkingInfo != ""},
				{a.ExtraInfo, got.ExtraInfo, a.ExtraInfo != ""},
			}
			for _, c := range checks {
				if c.set {
					require.Equal(t, c.av, c.got)
				}
			}

			// Swapping operands must not change the outcome when weights differ.
			require.Equal(t, got, places.Merge(b, a))
		}
	})
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	a := places.Record{Name: "A", Weight: 3}
	b := places.Record{Phone: "1", Weight: 1}
	_ = places.Merge(a, b)
	assert.Equal(t, places.Record{Name: "A", Weight: 3}, a)
	assert.Equal(t, places.Record{Phone: "1", Weight: 1}, b)
}

func TestMergeValue(t *testing.T) {
	r := populated()

	tests := []struct {
		name  string
		value any
	}{
		{"string", "not a record"},
		{"int", 42},
		{"nil", nil},
		{"nil pointer", (*places.Record)(nil)},
		{"map", map[string]any{"name": "x"}},
		{"summary", places.SearchSummary{ID: "x", Name: "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, r, r.MergeValue(tt.value))
		})
	}

	t.Run("record operands merge", func(t *testing.T) {
		other := places.Record{Name: "ignored", ParkingInfo: "garage"}
		empty := places.Record{}
		assert.Equal(t, places.Merge(empty, other), empty.MergeValue(other))
		assert.Equal(t, places.Merge(empty, other), empty.MergeValue(&other))
	})
}

func TestFold(t *testing.T) {
	assert.Equal(t, places.Record{}, places.Fold())

	google := places.Record{Name: "Epoch Coffee - North Loop", Phone: "(512) 454-3762", Weight: 0}
	yelp := places.Record{Name: "Epoch Coffee", Category: "Coffee & Tea, Cafes", Weight: 10}

	assert.Equal(t, places.Merge(google, yelp), places.Fold(google, yelp))
	assert.Equal(t, places.Record{Name: "solo", Weight: 0}, places.Fold(places.Record{Name: "solo", Weight: 7}))
}

func TestGeolocation(t *testing.T) {
	tests := []struct {
		lat, lng float64
		want     string
	}{
		{1.0, 2.0, "1.0,2.0"},
		{0, 0, "0.0,0.0"},
		{-33.866651, 151.195827, "-33.866651,151.195827"},
		{37.80587, -122.42058, "37.80587,-122.42058"},
		{30.5, -97, "30.5,-97.0"},
	}
	for _, tt := range tests {
		r := places.Record{Latitude: tt.lat, Longitude: tt.lng}
		assert.Equal(t, tt.want, r.Geolocation())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	r := populated()
	r.Weight = 10

	data, err := r.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":`)

	got, err := places.FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	t.Run("field order is irrelevant", func(t *testing.T) {
		got, err := places.FromJSON([]byte(`{"phone":"1","name":"n","weight":2}`))
		require.NoError(t, err)
		assert.Equal(t, places.Record{Name: "n", Phone: "1", Weight: 2}, got)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := places.FromJSON([]byte(`{"name":`))
		assert.Error(t, err)
	})
}

func TestIsZero(t *testing.T) {
	assert.True(t, places.Record{}.IsZero())
	assert.True(t, places.Record{Weight: 10}.IsZero())
	assert.False(t, places.Record{Latitude: 0.1}.IsZero())
}
