package identity

import "strings"

// Tier enum
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

const premiumPlan = "premium_subscription"

// Classify derives the caller's tier from claims. It is pure and total:
// any claims bag, including an empty or malformed one, yields free or premium.
// Premium wins if ANY signal matches; missing fields never match.
func Classify(c Claims) Tier {
	// 1. billing may expose premium through the org role
	if strings.Contains(strings.ToLower(c.String("org_role")), "premium") {
		return TierPremium
	}

	// 2. direct subscription claim
	if c.Truthy("premium_subscription") {
		return TierPremium
	}

	// 3. public metadata (manual overrides)
	meta := c.Map("public_metadata")
	if meta.String("subscription") == "premium" || meta.String("tier") == "premium" {
		return TierPremium
	}

	// 4. plan inside nested user claims
	if c.Map("user_claims").String("plan") == premiumPlan {
		return TierPremium
	}

	// 5. any org membership carrying the premium plan
	for _, org := range c.List("org_memberships") {
		if org.String("plan") == premiumPlan {
			return TierPremium
		}
	}

	return TierFree
}
