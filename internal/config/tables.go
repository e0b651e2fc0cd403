package config

import (
	"fmt"
	"os"

	"github.com/grapevine-sim/grapevine/internal/domain"
	"gopkg.in/yaml.v3"
)

// Tables holds every tunable number in the epistemic engine: strength
// bounds, decay rate, per-kind trust multipliers, and the probability
// tables driving conversation and memory noise. Values ship with
// compiled-in defaults and can be overridden from a YAML file.
type Tables struct {
	Strength StrengthTable `yaml:"strength"`
	Decay    DecayTable    `yaml:"decay"`

	// Trust maps evidence kind to the base trust multiplier applied when
	// weighing that evidence against an existing belief.
	Trust map[domain.EvidenceKind]float64 `yaml:"trust"`

	Conversation ConversationTable `yaml:"conversation"`
	Noise        NoiseTable        `yaml:"noise"`
	Social       SocialTable       `yaml:"social"`
	Traits       TraitsTable       `yaml:"traits"`
}

type StrengthTable struct {
	Floor                float64 `yaml:"floor"`
	Cap                  float64 `yaml:"cap"`
	ReinforcementBoost   float64 `yaml:"reinforcement_boost"`
	ContradictionPenalty float64 `yaml:"contradiction_penalty"`
}

type DecayTable struct {
	RatePerDay float64 `yaml:"rate_per_day"`
}

type ConversationTable struct {
	TopicsFloor     int     `yaml:"topics_floor"`
	FriendBonus     int     `yaml:"friend_bonus"`
	EavesdropChance float64 `yaml:"eavesdrop_chance"`

	// FeatureChance gates whether a given feature comes up at all when a
	// subject is discussed.
	FeatureChance map[domain.FeatureType]float64 `yaml:"feature_chance"`
}

type NoiseTable struct {
	MutationChance      float64 `yaml:"mutation_chance"`
	TransferenceChance  float64 `yaml:"transference_chance"`
	ConfabulationChance float64 `yaml:"confabulation_chance"`
}

type SocialTable struct {
	ObservationChance float64 `yaml:"observation_chance"`
	InstigationFloor  float64 `yaml:"instigation_floor"`
	InstigationCap    float64 `yaml:"instigation_cap"`
	FriendComponent   float64 `yaml:"friend_component"`
}

type TraitsTable struct {
	MemoryMean  float64 `yaml:"memory_mean"`
	MemorySD    float64 `yaml:"memory_sd"`
	MemoryFloor float64 `yaml:"memory_floor"`
	MemoryCap   float64 `yaml:"memory_cap"`
}

// DefaultTables returns the compiled-in tuning values.
func DefaultTables() *Tables {
	return &Tables{
		Strength: StrengthTable{
			Floor:                0.05,
			Cap:                  1.0,
			ReinforcementBoost:   0.2,
			ContradictionPenalty: 0.05,
		},
		Decay: DecayTable{
			RatePerDay: 0.005,
		},
		Trust: map[domain.EvidenceKind]float64{
			domain.KindReflection:  1.0,
			domain.KindObservation: 0.95,
			domain.KindDeclaration: 0.75,
			domain.KindStatement:   0.65,
			// A lie is sold as a statement; the discounted multiplier only
			// applies once the recipient learns the source lied.
			domain.KindLie:           0.65,
			domain.KindEavesdropping: 0.5,
			domain.KindConfabulation: 0.45,
			domain.KindMutation:      0.4,
			domain.KindTransference:  0.4,
			domain.KindForgetting:    0.1,
		},
		Conversation: ConversationTable{
			TopicsFloor:     2,
			FriendBonus:     2,
			EavesdropChance: 0.15,
			FeatureChance: map[domain.FeatureType]float64{
				domain.FeatureFirstName:      0.9,
				domain.FeatureMiddleName:     0.1,
				domain.FeatureLastName:       0.75,
				domain.FeatureSex:            0.9,
				domain.FeatureStatus:         0.8,
				domain.FeatureApproximateAge: 0.4,
				domain.FeatureWorkplace:      0.5,
				domain.FeatureJobTitle:       0.4,
				domain.FeatureJobShift:       0.15,
				domain.FeatureHome:           0.3,
				domain.FeatureHomeAddress:    0.25,
				domain.FeatureHairColor:      0.3,
				domain.FeatureHairLength:     0.2,
				domain.FeatureEyeColor:       0.15,
				domain.FeatureSkinColor:      0.3,
				domain.FeatureGlasses:        0.2,
			},
		},
		Noise: NoiseTable{
			MutationChance:      0.005,
			TransferenceChance:  0.002,
			ConfabulationChance: 0.003,
		},
		Social: SocialTable{
			ObservationChance: 0.75,
			InstigationFloor:  0.05,
			InstigationCap:    0.95,
			FriendComponent:   0.3,
		},
		Traits: TraitsTable{
			MemoryMean:  0.7,
			MemorySD:    0.1,
			MemoryFloor: 0.1,
			MemoryCap:   0.9,
		},
	}
}

// LoadTables reads YAML overrides from path on top of the defaults.
// An empty path returns the defaults untouched.
func LoadTables(path string) (*Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate rejects tables that would break the strength invariants.
func (t *Tables) Validate() error {
	if t.Strength.Floor < 0 || t.Strength.Cap <= t.Strength.Floor {
		return fmt.Errorf("strength bounds invalid: floor=%v cap=%v", t.Strength.Floor, t.Strength.Cap)
	}
	if t.Decay.RatePerDay < 0 {
		return fmt.Errorf("decay rate must be non-negative, got %v", t.Decay.RatePerDay)
	}
	for kind, trust := range t.Trust {
		if trust < 0 {
			return fmt.Errorf("trust for %s must be non-negative, got %v", kind, trust)
		}
	}
	for ft, p := range t.Conversation.FeatureChance {
		if p < 0 || p > 1 {
			return fmt.Errorf("feature chance for %q out of range: %v", ft, p)
		}
	}
	return nil
}
