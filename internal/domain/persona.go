package domain

import "slices"

// Region is the cultural/geographic origin of a historical figure.
type Region string

const (
	RegionEastern       Region = "EASTERN"
	RegionWestern       Region = "WESTERN"
	RegionMiddleEastern Region = "MIDDLE_EASTERN"
	RegionOther         Region = "OTHER"
)

// Regions lists every valid Region.
var Regions = []Region{RegionEastern, RegionWestern, RegionMiddleEastern, RegionOther}

// ParseRegion maps s to a Region. Unknown values fail closed to RegionOther.
func ParseRegion(s string) Region {
	r := Region(s)
	if slices.Contains(Regions, r) {
		return r
	}
	return RegionOther
}

// Gender of a historical figure, used for portrait selection.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Genders lists every valid Gender.
var Genders = []Gender{GenderMale, GenderFemale}

// ParseGender maps s to a Gender. Unknown values fail closed to GenderMale.
func ParseGender(s string) Gender {
	g := Gender(s)
	if slices.Contains(Genders, g) {
		return g
	}
	return GenderMale
}

// Profile is the biographical data of the simulated historical figure.
type Profile struct {
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Era             string   `json:"era"`
	BioQuote        string   `json:"bio_quote"`
	KeyAchievements []string `json:"key_achievements"`
	Region          Region   `json:"region"`
	Gender          Gender   `json:"gender"`
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.KeyAchievements = slices.Clone(p.KeyAchievements)
	return &c
}

// FallbackProfile is the profile used when persona generation fails. It
// depends only on targetPerson.
func FallbackProfile(targetPerson string) *Profile {
	return &Profile{
		Name:            targetPerson,
		Title:           "Historical Figure",
		Era:             "Unknown Era",
		BioQuote:        "I am ready to answer your questions.",
		KeyAchievements: []string{"History", "Leadership", "Legacy"},
		Region:          RegionWestern,
		Gender:          GenderMale,
	}
}

// PortraitKey returns the portrait lookup key for the profile, e.g.
// "EASTERN_FEMALE". OTHER regions share the western portraits.
func (p *Profile) PortraitKey() string {
	if p == nil {
		return string(RegionWestern) + "_" + string(GenderMale)
	}
	region := ParseRegion(string(p.Region))
	if region == RegionOther {
		region = RegionWestern
	}
	return string(region) + "_" + string(ParseGender(string(p.Gender)))
}
