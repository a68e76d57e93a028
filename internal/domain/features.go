package domain

import "fmt"

// Feature names gateable capabilities and counted allowances.
type Feature string

const (
	FeatureChatMessages      Feature = "chatMessages"
	FeatureCollections       Feature = "collections"
	FeatureWorkingModels     Feature = "workingModels"
	FeatureExportCollections Feature = "exportCollections"
	FeaturePrioritySupport   Feature = "prioritySupport"
)

// FeatureLimits holds a tier's allowances. Numeric caps use nil for unlimited.
type FeatureLimits struct {
	ChatMessages      *int
	Collections       *int
	WorkingModels     bool
	ExportCollections bool
	PrioritySupport   bool
}

// tierFeatures is fixed at process start and must stay exhaustive over the
// tier set; a missing tier is a programming error, not a soft failure.
var tierFeatures = map[Tier]FeatureLimits{
	TierFree: {
		ChatMessages:      intPtr(3),
		Collections:       intPtr(3),
		WorkingModels:     false,
		ExportCollections: false,
		PrioritySupport:   false,
	},
	TierSparcc: {
		ChatMessages:      nil, // unlimited
		Collections:       nil, // unlimited
		WorkingModels:     true,
		ExportCollections: true,
		PrioritySupport:   false,
	},
	TierEnterprise: {
		ChatMessages:      nil,
		Collections:       nil,
		WorkingModels:     true,
		ExportCollections: true,
		PrioritySupport:   true,
	},
}

func intPtr(n int) *int { return &n }

func featuresFor(tier Tier) FeatureLimits {
	limits, ok := tierFeatures[tier]
	if !ok {
		panic(fmt.Sprintf("domain: no feature table entry for tier %q", tier))
	}
	return limits
}

// CanUseFeature reports whether the tier may use a feature at all. Counted
// features are usable on every tier; only an explicit false denies.
func CanUseFeature(tier Tier, feature Feature) bool {
	limits := featuresFor(tier)
	switch feature {
	case FeatureChatMessages, FeatureCollections:
		return true
	case FeatureWorkingModels:
		return limits.WorkingModels
	case FeatureExportCollections:
		return limits.ExportCollections
	case FeaturePrioritySupport:
		return limits.PrioritySupport
	}
	panic(fmt.Sprintf("domain: unknown feature %q", feature))
}

// FeatureLimit returns the numeric cap for a counted feature, nil meaning
// unlimited.
func FeatureLimit(tier Tier, feature Feature) *int {
	limits := featuresFor(tier)
	switch feature {
	case FeatureChatMessages:
		return limits.ChatMessages
	case FeatureCollections:
		return limits.Collections
	}
	panic(fmt.Sprintf("domain: feature %q has no numeric limit", feature))
}

// HasReachedLimit reports whether currentCount exhausts the tier's cap for a
// counted feature. The count-th item is already at capacity, so the boundary
// is >=, not >.
func HasReachedLimit(tier Tier, feature Feature, currentCount int) bool {
	limit := FeatureLimit(tier, feature)
	if limit == nil {
		return false
	}
	return currentCount >= *limit
}
