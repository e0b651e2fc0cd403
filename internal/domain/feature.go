package domain

type FeatureType string

// Person features.
const (
	FeatureFirstName      FeatureType = "first name"
	FeatureMiddleName     FeatureType = "middle name"
	FeatureLastName       FeatureType = "last name"
	FeatureSex            FeatureType = "sex"
	FeatureStatus         FeatureType = "status"
	FeatureApproximateAge FeatureType = "approximate age"
	FeatureWorkplace      FeatureType = "workplace"
	FeatureJobTitle       FeatureType = "job title"
	FeatureJobShift       FeatureType = "job shift"
	FeatureHome           FeatureType = "home"
	FeatureHomeAddress    FeatureType = "home address"
	FeatureHairColor      FeatureType = "hair color"
	FeatureHairLength     FeatureType = "hair length"
	FeatureEyeColor       FeatureType = "eye color"
	FeatureSkinColor      FeatureType = "skin color"
	FeatureGlasses        FeatureType = "glasses"
)

// Place features.
const (
	FeatureAddress     FeatureType = "address"
	FeatureBlock       FeatureType = "block"
	FeatureIsApartment FeatureType = "is apartment"
)

var personFeatures = []FeatureType{
	FeatureFirstName, FeatureMiddleName, FeatureLastName,
	FeatureSex, FeatureStatus, FeatureApproximateAge,
	FeatureWorkplace, FeatureJobTitle, FeatureJobShift,
	FeatureHome, FeatureHomeAddress,
	FeatureHairColor, FeatureHairLength, FeatureEyeColor,
	FeatureSkinColor, FeatureGlasses,
}

var residenceFeatures = []FeatureType{
	FeatureAddress, FeatureBlock, FeatureIsApartment,
}

var businessFeatures = []FeatureType{
	FeatureAddress, FeatureBlock,
}

// FeatureTypesFor returns every feature type applicable to the given
// entity kind. The table is the single source of applicability; callers
// range over it instead of matching on feature strings.
func FeatureTypesFor(kind EntityKind) []FeatureType {
	switch kind {
	case EntityPerson:
		return personFeatures
	case EntityResidence:
		return residenceFeatures
	case EntityBusiness:
		return businessFeatures
	}
	return nil
}

func ValidFeatureType(kind EntityKind, ft FeatureType) bool {
	for _, t := range FeatureTypesFor(kind) {
		if t == ft {
			return true
		}
	}
	return false
}
