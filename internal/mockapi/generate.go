package mockapi

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"userdir/internal/domain"
)

var (
	maleFirst   = []string{"John", "Elijah", "Oliver", "Mathis", "Lucas", "Arthur", "Noah", "Eemeli", "Jesus", "Milan", "Hugo", "Kenan"}
	femaleFirst = []string{"Jane", "Johanna", "Emma", "Sofia", "Aino", "Léa", "Olivia", "Isabella", "Alicia", "Mia", "Zoe", "Amelia"}
	lastNames   = []string{"Smith", "Doe", "Johnson", "Berg", "Martin", "Lehtonen", "García", "Moreau", "Wilson", "Novak", "Schulz", "Andersen"}
	streets     = []string{"Valwood Pkwy", "Mill Lane", "Rue de L'Abbé-Roger-Derry", "Hämeenkatu", "Calle de Ferraz", "Church Road"}
	places      = []struct{ city, state, country, nat, tzOffset, tzDesc string }{
		{"Billings", "Michigan", "United States", "US", "-5:00", "Eastern Time (US & Canada), Bogota, Lima"},
		{"Leeds", "Cumbria", "United Kingdom", "GB", "0:00", "Western Europe Time, London, Lisbon, Casablanca"},
		{"Nantes", "Aveyron", "France", "FR", "+1:00", "Brussels, Copenhagen, Madrid, Paris"},
		{"Tampere", "Uusimaa", "Finland", "FI", "+2:00", "Kaliningrad, South Africa"},
		{"Valencia", "Galicia", "Spain", "ES", "+1:00", "Brussels, Copenhagen, Madrid, Paris"},
		{"Kitchener", "Nunavut", "Canada", "CA", "-4:00", "Atlantic Time (Canada), Caracas, La Paz"},
	}
	titles = map[string][]string{
		"male":   {"Mr", "Monsieur"},
		"female": {"Ms", "Mrs", "Miss", "Madame"},
	}
)

// referenceTime anchors generated ages so a seed always yields the same batch
var referenceTime = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

// seedValue turns an API seed string and page into a PRNG seed
func seedValue(seed string, page int) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s/%d", seed, page)
	return int64(h.Sum64())
}

// GenerateUsers deterministically builds n users for seed and page.
// pictureBase is prefixed to portrait paths (e.g. "http://host/api/").
func GenerateUsers(seed string, page, n int, nat []string, pictureBase string) []domain.User {
	rng := rand.New(rand.NewSource(seedValue(seed, page)))
	users := make([]domain.User, n)
	for i := range users {
		users[i] = generateUser(rng, nat, pictureBase)
	}
	return users
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

func generateUser(rng *rand.Rand, nat []string, pictureBase string) domain.User {
	gender := "male"
	first := pick(rng, maleFirst)
	if rng.Intn(2) == 1 {
		gender = "female"
		first = pick(rng, femaleFirst)
	}
	last := pick(rng, lastNames)

	place := pick(rng, places)
	if len(nat) > 0 {
		want := strings.ToUpper(pick(rng, nat))
		for _, p := range places {
			if p.nat == want {
				place = p
				break
			}
		}
	}

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		id = uuid.Nil
	}

	dob := referenceTime.AddDate(-(18 + rng.Intn(60)), -rng.Intn(12), -rng.Intn(28))
	registered := referenceTime.AddDate(-(1 + rng.Intn(20)), -rng.Intn(12), -rng.Intn(28))
	registered = registered.Add(time.Duration(rng.Intn(86400)) * time.Second)

	folder := "men"
	if gender == "female" {
		folder = "women"
	}
	portrait := rng.Intn(100)
	username := strings.ToLower(pick(rng, []string{"yellow", "silver", "brown", "happy", "tiny", "crazy"})) +
		strings.ToLower(pick(rng, []string{"peacock", "koala", "wolf", "tiger", "goose", "lion"})) +
		fmt.Sprint(100+rng.Intn(900))

	var idValue *string
	if rng.Intn(4) != 0 {
		v := fmt.Sprintf("%03d-%02d-%04d", rng.Intn(1000), rng.Intn(100), rng.Intn(10000))
		idValue = &v
	}

	return domain.User{
		Gender: gender,
		Name:   domain.Name{Title: pick(rng, titles[gender]), First: first, Last: last},
		Location: domain.Location{
			Street:   domain.Street{Number: 1 + rng.Intn(9999), Name: pick(rng, streets)},
			City:     place.city,
			State:    place.state,
			Country:  place.country,
			Postcode: domain.Postcode(fmt.Sprint(10000 + rng.Intn(89999))),
			Coordinates: domain.Coordinates{
				Latitude:  fmt.Sprintf("%.4f", rng.Float64()*180-90),
				Longitude: fmt.Sprintf("%.4f", rng.Float64()*360-180),
			},
			Timezone: domain.Timezone{Offset: place.tzOffset, Description: place.tzDesc},
		},
		Email:      strings.ToLower(asciiOnly(first) + "." + asciiOnly(last) + "@example.com"),
		Login:      domain.Login{UUID: id.String(), Username: username},
		Dob:        domain.DatedAge{Date: dob, Age: yearsBetween(dob, referenceTime)},
		Registered: domain.DatedAge{Date: registered, Age: yearsBetween(registered, referenceTime)},
		Phone:      fmt.Sprintf("(%03d) %03d-%04d", rng.Intn(1000), rng.Intn(1000), rng.Intn(10000)),
		Cell:       fmt.Sprintf("(%03d) %03d-%04d", rng.Intn(1000), rng.Intn(1000), rng.Intn(10000)),
		ID:         domain.Identifier{Name: "SSN", Value: idValue},
		Picture: domain.Picture{
			Large:     fmt.Sprintf("%sportraits/%s/%d.png", pictureBase, folder, portrait),
			Medium:    fmt.Sprintf("%sportraits/med/%s/%d.png", pictureBase, folder, portrait),
			Thumbnail: fmt.Sprintf("%sportraits/thumb/%s/%d.png", pictureBase, folder, portrait),
		},
		Nat: place.nat,
	}
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.YearDay() < from.YearDay() {
		years--
	}
	return years
}

func asciiOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < 128:
			b.WriteRune(r)
		case strings.ContainsRune("éè", r):
			b.WriteRune('e')
		case strings.ContainsRune("äá", r):
			b.WriteRune('a')
		case strings.ContainsRune("ö", r):
			b.WriteRune('o')
		case r == 'í':
			b.WriteRune('i')
		}
	}
	return b.String()
}
