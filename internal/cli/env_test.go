package cli

import (
	"testing"

	"github.com/forgekit/forge/internal/models"
)

func TestSplitAssign(t *testing.T) {
	k, v, err := splitAssign("build_type=Debug")
	if err != nil {
		t.Fatalf("splitAssign failed: %v", err)
	}
	if k != "build_type" || v != "Debug" {
		t.Errorf("Wrong split: %s=%s", k, v)
	}

	if _, _, err := splitAssign("no-equals"); err == nil {
		t.Errorf("Missing '=' accepted")
	}
	if _, _, err := splitAssign("=value"); err == nil {
		t.Errorf("Empty key accepted")
	}
}

func TestMergeRemotes(t *testing.T) {
	configured := []models.Remote{
		{Name: "company", URL: "https://packages.internal"},
		{Name: "bincrafters", URL: "https://configured.example"},
	}
	declared := []models.Remote{
		{Name: "bincrafters", URL: "https://recipe.example"},
		{Name: "alaingalvan", URL: "https://alain.example"},
	}

	merged := mergeRemotes(configured, declared)
	if len(merged) != 3 {
		t.Fatalf("Expected 3 remotes, got %v", merged)
	}

	// configured remotes come first and win name collisions
	if merged[0].Name != "company" {
		t.Errorf("Configured order not preserved: %v", merged)
	}
	if merged[1].URL != "https://configured.example" {
		t.Errorf("Recipe remote overrode the configured one: %v", merged)
	}
	if merged[2].Name != "alaingalvan" {
		t.Errorf("Recipe-only remote lost: %v", merged)
	}
}
