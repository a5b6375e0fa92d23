package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   Tier
	}{
		{"empty claims", Claims{}, TierFree},
		{"nil claims", nil, TierFree},
		{"org role premium", Claims{"org_role": "org:Premium_Member"}, TierPremium},
		{"org role other", Claims{"org_role": "org:member"}, TierFree},
		{"subscription bool", Claims{"premium_subscription": true}, TierPremium},
		{"subscription bool false", Claims{"premium_subscription": false}, TierFree},
		{"subscription string", Claims{"premium_subscription": "active"}, TierPremium},
		{"subscription empty string", Claims{"premium_subscription": ""}, TierFree},
		{"subscription number", Claims{"premium_subscription": float64(1)}, TierPremium},
		{"subscription zero", Claims{"premium_subscription": float64(0)}, TierFree},
		{"metadata subscription", Claims{"public_metadata": map[string]any{"subscription": "premium"}}, TierPremium},
		{"metadata tier", Claims{"public_metadata": map[string]any{"tier": "premium"}}, TierPremium},
		{"metadata tier other", Claims{"public_metadata": map[string]any{"tier": "basic"}}, TierFree},
		{"metadata wrong type", Claims{"public_metadata": "premium"}, TierFree},
		{"user claims plan", Claims{"user_claims": map[string]any{"plan": "premium_subscription"}}, TierPremium},
		{"user claims other plan", Claims{"user_claims": map[string]any{"plan": "starter"}}, TierFree},
		{"org membership plan", Claims{"org_memberships": []any{
			map[string]any{"plan": "basic"},
			map[string]any{"plan": "premium_subscription"},
		}}, TierPremium},
		{"org membership no match", Claims{"org_memberships": []any{
			map[string]any{"plan": "basic"},
		}}, TierFree},
		{"org membership malformed", Claims{"org_memberships": []any{"premium_subscription", 42}}, TierFree},
		{"org memberships wrong type", Claims{"org_memberships": "premium_subscription"}, TierFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.claims))
		})
	}
}

func TestClaimsAccessors(t *testing.T) {
	c := Claims{
		"sub":    "user_123",
		"number": float64(7),
		"nested": map[string]any{"k": "v"},
	}

	assert.Equal(t, "user_123", c.Subject())
	assert.Equal(t, "", c.String("missing"))
	assert.Equal(t, "", c.String("number"), "non-string claim reads as empty")
	assert.Equal(t, "v", c.Map("nested").String("k"))
	assert.Empty(t, c.Map("missing"))
	assert.Nil(t, c.List("missing"))

	list := Claims{"orgs": []any{map[string]any{"plan": "x"}}}.List("orgs")
	require.Len(t, list, 1)
	assert.Equal(t, "x", list[0].String("plan"))
}
