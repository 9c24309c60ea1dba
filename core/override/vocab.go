package override

import (
	"strconv"
	"strings"

	"vehicle-catalogue/core/dataerr"
)

// Country is a vehicle's nation.
type Country string

// Countries, as written in data files.
const (
	CountryUSSR    Country = "ussr"
	CountryGermany Country = "germany"
	CountryUSA     Country = "usa"
	CountryChina   Country = "china"
	CountryFrance  Country = "france"
	CountryUK      Country = "uk"
	CountryJapan   Country = "japan"
	CountryCzech   Country = "czech"
	CountrySweden  Country = "sweden"
	CountryPoland  Country = "poland"
	CountryItaly   Country = "italy"
	CountryNone    Country = "none"
)

// Class is a vehicle's role.
type Class string

// Classes, as written in data files.
const (
	ClassLight     Class = "light"
	ClassMedium    Class = "medium"
	ClassHeavy     Class = "heavy"
	ClassDestroyer Class = "destroyer"
	ClassArtillery Class = "artillery"
	ClassNone      Class = "none"
)

// Category describes how a vehicle can be obtained.
type Category string

// Categories, as written in data files.
const (
	// CategoryNormal vehicles are bought for silver.
	CategoryNormal Category = "normal"
	// CategoryPremium vehicles are bought for gold.
	CategoryPremium Category = "premium"
	// CategorySpecial vehicles are not for sale.
	CategorySpecial Category = "special"
)

// MaxTier is the highest valid tier.
const MaxTier = 10

var (
	countries  = []Country{CountryUSSR, CountryGermany, CountryUSA, CountryChina, CountryFrance, CountryUK, CountryJapan, CountryCzech, CountrySweden, CountryPoland, CountryItaly, CountryNone}
	classes    = []Class{ClassLight, ClassMedium, ClassHeavy, ClassDestroyer, ClassArtillery, ClassNone}
	categories = []Category{CategoryNormal, CategoryPremium, CategorySpecial}
)

// ParseCountry validates a country cell.
func ParseCountry(s string) (Country, error) {
	for _, c := range countries {
		if string(c) == s {
			return c, nil
		}
	}
	return "", dataerr.Newf("unrecognized country: %q. Allowed values: %s.", s, allowed(countries))
}

// ParseClass validates a class cell.
func ParseClass(s string) (Class, error) {
	for _, c := range classes {
		if string(c) == s {
			return c, nil
		}
	}
	return "", dataerr.Newf("unrecognized class: %q. Allowed values: %s.", s, allowed(classes))
}

// ParseCategory validates a category cell.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", dataerr.Newf("unrecognized availability: %q. Allowed values: %s.", s, allowed(categories))
}

// ParseTier validates a tier cell.
func ParseTier(s string) (int, error) {
	tier, err := strconv.Atoi(s)
	if err != nil || tier < 0 || tier > MaxTier {
		return 0, dataerr.Newf("the tier field is not a whole number or outside of the 0..%d range: %q", MaxTier, s)
	}
	return tier, nil
}

func allowed[T ~string](values []T) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(string(v))
	}
	return strings.Join(quoted, ", ")
}
