package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinaryPath(t *testing.T) {
	assert.True(t, IsBinaryPath("assets/logo.PNG"))
	assert.True(t, IsBinaryPath("dist/app.jar"))
	assert.False(t, IsBinaryPath("main.go"))
	assert.False(t, IsBinaryPath("README"))
}

func TestIsSourcePath(t *testing.T) {
	assert.True(t, IsSourcePath("cmd/server/main.go"))
	assert.True(t, IsSourcePath("lib/Util.Java"))
	assert.False(t, IsSourcePath("docs/guide.md"))
	assert.False(t, IsSourcePath("Dockerfile"))
}

func TestIsConfigPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"Dockerfile", true},
		{"deploy/Dockerfile.prod", true},
		{"docker-compose.yml", true},
		{"docker-compose.override.yaml", true},
		{"compose.yaml", true},
		{".env", true},
		{".env.local", true},
		{"environment.yml", false},
		{"src/main.go", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsConfigPath(tt.path), tt.path)
	}
}
