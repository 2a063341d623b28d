package services

import (
	"strings"
	"testing"
)

func TestSystemPromptRequestsEverySection(t *testing.T) {
	prompt := NewPromptBuilder().SystemPrompt()

	last := -1
	for _, section := range projectSections {
		idx := strings.Index(prompt, section+":")
		if idx < 0 {
			t.Errorf("system prompt does not request section %q", section)
			continue
		}
		if idx < last {
			t.Errorf("section %q is out of order", section)
		}
		last = idx
	}
}

func TestSystemPromptKeepsOriginalWording(t *testing.T) {
	prompt := NewPromptBuilder().SystemPrompt()
	if !strings.Contains(prompt, "structured execution.Project Tools:") {
		t.Error("system prompt wording changed around the Project Tools section")
	}
	if !strings.HasPrefix(prompt, "You are an AI career coach") || !strings.HasSuffix(prompt, "securing job opportunities.") {
		t.Error("system prompt start or end changed")
	}
}

func TestUserPromptIsPassedThrough(t *testing.T) {
	in := "  Staff SRE\nKubernetes, Terraform  "
	if got := NewPromptBuilder().UserPrompt(in); got != in {
		t.Errorf("UserPrompt = %q, want %q", got, in)
	}
}
