package services

import (
	"strings"
	"testing"

	"alfredoptarigan/job-project-generator/internal/testutil"
)

func TestExtractTextFromBytes_ReadsPageText(t *testing.T) {
	data := testutil.MinimalPDF("Senior Go Engineer", "Requirements: Postgres and gRPC")

	content, err := NewPDFParserService().ExtractTextFromBytes(data)
	if err != nil {
		t.Fatalf("ExtractTextFromBytes: %v", err)
	}
	if content.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", content.PageCount)
	}
	for _, want := range []string{"Senior Go Engineer", "Requirements: Postgres and gRPC"} {
		if !strings.Contains(content.Text, want) {
			t.Errorf("extracted text %q does not contain %q", content.Text, want)
		}
	}
}

func TestExtractTextFromBytes_RejectsNonPDF(t *testing.T) {
	p := NewPDFParserService()

	for name, data := range map[string][]byte{
		"empty": nil,
		"text":  []byte("Senior Go engineer, remote"),
		"trunc": []byte("%PDF-1.4\n1 0 obj\n<<"),
	} {
		if _, err := p.ExtractTextFromBytes(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCleanText(t *testing.T) {
	in := "  Senior Go Engineer  \n\n\n  Requirements:\n\t- Go\n   \n- SQL  \n"
	want := "Senior Go Engineer\nRequirements:\n- Go\n- SQL"
	if got := CleanText(in); got != want {
		t.Errorf("CleanText = %q, want %q", got, want)
	}
	if got := CleanText(" \n \n"); got != "" {
		t.Errorf("CleanText(blank) = %q, want empty", got)
	}
}
