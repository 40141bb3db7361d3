package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveContext(t *testing.T) {
	tests := []struct {
		name    string
		project string
		branch  string
		want    string
	}{
		{"both provided", "shop", "main", "shop:main"},
		{"defaults", "", "", "default:main"},
		{"default project", "", "dev", "default:dev"},
		{"default branch", "api", "", "api:main"},
		{"colon in branch kept", "api", "feature:v2", "api:feature:v2"},
		{"colon in project sanitized", "a:b", "main", "a-b:main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveContext(tt.project, tt.branch))
		})
	}
}

func TestResolveContextDeterministic(t *testing.T) {
	assert.Equal(t, ResolveContext("p", "b"), ResolveContext("p", "b"))
}

func TestSplitContextRoundTrip(t *testing.T) {
	tests := []struct {
		project string
		branch  string
	}{
		{"shop", "main"},
		{"default", "main"},
		{"api", "feature/login"},
		{"api", "release:2024:final"},
	}
	for _, tt := range tests {
		project, branch := SplitContext(ResolveContext(tt.project, tt.branch))
		assert.Equal(t, tt.project, project)
		assert.Equal(t, tt.branch, branch)
	}
}

func TestSplitContextNoColon(t *testing.T) {
	project, branch := SplitContext("legacy")
	assert.Equal(t, "legacy", project)
	assert.Equal(t, DefaultBranch, branch)
}

func TestBranchPrefix(t *testing.T) {
	assert.Equal(t, "shop:", BranchPrefix("shop"))
	assert.Equal(t, "default:", BranchPrefix(""))
}
