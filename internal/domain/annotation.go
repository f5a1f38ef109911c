package domain

// PoliticalLean is an ordinal classification on the 7-point left-right scale,
// plus "unknown" for sources the annotator could not place.
type PoliticalLean string

// Political lean values, left to right.
const (
	LeanFarLeft     PoliticalLean = "far_left"
	LeanLeft        PoliticalLean = "left"
	LeanCenterLeft  PoliticalLean = "center_left"
	LeanCenter      PoliticalLean = "center"
	LeanCenterRight PoliticalLean = "center_right"
	LeanRight       PoliticalLean = "right"
	LeanFarRight    PoliticalLean = "far_right"
	LeanUnknown     PoliticalLean = "unknown"
)

// leanScale maps each known lean to its index on the 7-point scale.
var leanScale = map[PoliticalLean]int{
	LeanFarLeft:     0,
	LeanLeft:        1,
	LeanCenterLeft:  2,
	LeanCenter:      3,
	LeanCenterRight: 4,
	LeanRight:       5,
	LeanFarRight:    6,
}

// leanScaleMax is the maximum ordinal distance on the scale.
const leanScaleMax = 6

// ScaleIndex returns the lean's position on the 7-point scale.
// ok is false for LeanUnknown, the zero value, and unrecognized values.
func (l PoliticalLean) ScaleIndex() (int, bool) {
	idx, ok := leanScale[l]
	return idx, ok
}

// ParsePoliticalLean maps a string to a PoliticalLean,
// falling back to LeanUnknown for unrecognized input.
func ParsePoliticalLean(s string) PoliticalLean {
	l := PoliticalLean(s)
	if _, ok := leanScale[l]; ok {
		return l
	}
	return LeanUnknown
}

// PolicyFrame is one of the fixed taxonomy of rhetorical framings
// a source's coverage can emphasize.
type PolicyFrame string

// Policy frame taxonomy.
const (
	FrameEconomic             PolicyFrame = "economic"
	FrameCapacityResources    PolicyFrame = "capacity_and_resources"
	FrameMorality             PolicyFrame = "morality"
	FrameFairnessEquality     PolicyFrame = "fairness_and_equality"
	FrameLegality             PolicyFrame = "legality_constitutionality"
	FramePolicyPrescription   PolicyFrame = "policy_prescription"
	FrameCrimePunishment      PolicyFrame = "crime_and_punishment"
	FrameSecurityDefense      PolicyFrame = "security_and_defense"
	FrameHealthSafety         PolicyFrame = "health_and_safety"
	FrameQualityOfLife        PolicyFrame = "quality_of_life"
	FrameCulturalIdentity     PolicyFrame = "cultural_identity"
	FramePublicOpinion        PolicyFrame = "public_opinion"
	FramePolitical            PolicyFrame = "political"
	FrameExternalRegulation   PolicyFrame = "external_regulation"
	FrameOther                PolicyFrame = "other"
)

var knownFrames = map[PolicyFrame]struct{}{
	FrameEconomic:           {},
	FrameCapacityResources:  {},
	FrameMorality:           {},
	FrameFairnessEquality:   {},
	FrameLegality:           {},
	FramePolicyPrescription: {},
	FrameCrimePunishment:    {},
	FrameSecurityDefense:    {},
	FrameHealthSafety:       {},
	FrameQualityOfLife:      {},
	FrameCulturalIdentity:   {},
	FramePublicOpinion:      {},
	FramePolitical:          {},
	FrameExternalRegulation: {},
	FrameOther:              {},
}

// ParsePolicyFrame maps a string to a PolicyFrame.
// ok is false for values outside the taxonomy.
func ParsePolicyFrame(s string) (PolicyFrame, bool) {
	f := PolicyFrame(s)
	_, ok := knownFrames[f]
	return f, ok
}

// StakeholderType classifies who is speaking.
type StakeholderType string

// Stakeholder type values.
const (
	StakeholderGovernment       StakeholderType = "government"
	StakeholderCorporate        StakeholderType = "corporate"
	StakeholderCivilSociety     StakeholderType = "civil_society"
	StakeholderAcademic         StakeholderType = "academic"
	StakeholderJournalist       StakeholderType = "journalist"
	StakeholderCitizen          StakeholderType = "citizen"
	StakeholderInternationalOrg StakeholderType = "international_org"
	StakeholderOther            StakeholderType = "other"
)

var knownStakeholders = map[StakeholderType]struct{}{
	StakeholderGovernment:       {},
	StakeholderCorporate:        {},
	StakeholderCivilSociety:     {},
	StakeholderAcademic:         {},
	StakeholderJournalist:       {},
	StakeholderCitizen:          {},
	StakeholderInternationalOrg: {},
	StakeholderOther:            {},
}

// ParseStakeholderType maps a string to a StakeholderType,
// falling back to StakeholderOther for unrecognized input.
func ParseStakeholderType(s string) StakeholderType {
	st := StakeholderType(s)
	if _, ok := knownStakeholders[st]; ok {
		return st
	}
	return StakeholderOther
}

// PerspectiveAnnotation is structured metadata describing a source's
// political and framing characteristics. The zero value is the valid
// "all unknown / empty" annotation used when annotation fails.
type PerspectiveAnnotation struct {
	PoliticalLean   PoliticalLean
	PolicyFrames    []PolicyFrame
	StakeholderType StakeholderType
	StanceSummary   string
	Topic           string
	GeographicFocus string
}

// AnnotatedSource pairs a source with its perspective annotation
// and a relevance score in [0, 1].
type AnnotatedSource struct {
	Source         Source
	Annotation     PerspectiveAnnotation
	RelevanceScore float64
}

// ClampScore clamps a relevance score into [0, 1].
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
