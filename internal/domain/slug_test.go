package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "main", "main"},
		{"spaces become dashes", "Feature Branch", "feature-branch"},
		{"underscores kept", "release_2024", "release_2024"},
		{"punctuation collapses", "Fix: the (big) bug!!", "fix-the-big-bug"},
		{"leading junk trimmed", "  --Hotfix  ", "hotfix"},
		{"trailing junk trimmed", "wip...", "wip"},
		{"digits kept", "v2 rollout", "v2-rollout"},
		{"unicode dropped", "café menü", "caf-men"},
		{"nothing usable", "!!!", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
