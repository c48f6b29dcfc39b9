package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateWidth(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"phone", 320, false},
		{"tablet", 768.5, false},
		{"max", MaxWidth, false},

		{"zero", 0, true},
		{"negative", -10, true},
		{"too large", MaxWidth + 1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidth(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidWidth) {
				t.Errorf("code = %v", GetCode(err))
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"json", "svg", "png"}
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"json", false},
		{"png", false},
		{"", true},
		{"JSON", true},
		{"gif", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if err := ValidateFormat(tt.input, allowed...); (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMetrics(t *testing.T) {
	for _, ok := range []string{"estimate", "truetype"} {
		if err := ValidateMetrics(ok); err != nil {
			t.Errorf("ValidateMetrics(%q) = %v", ok, err)
		}
	}
	if err := ValidateMetrics("coretext"); !Is(err, ErrCodeInvalidMetrics) {
		t.Errorf("ValidateMetrics(coretext) = %v", err)
	}
}

func TestValidateDocumentFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"json", "page.json", false},
		{"toml upper", "PAGE.TOML", false},
		{"nested", "docs/page.json", false},

		{"empty", "", true},
		{"yaml", "page.yaml", true},
		{"no extension", "page", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateDocumentFilename(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://telegram.org/blog", false},
		{"http://example.com/a?b=c#d", false},
		{"", true},
		{"ftp://example.com", true},
		{"javascript:alert(1)", true},
		{"https://", true},
		{"/relative/path", true},
		{"http://[::1", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnchorName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "end", false},
		{"punctuation", "section-2.1:notes", false},
		{"unicode", "глава", false},
		{"empty", "", true},
		{"space", "two words", true},
		{"tab", "a\tb", true},
		{"too long", strings.Repeat("a", MaxAnchorName+1), true},
		{"max", strings.Repeat("a", MaxAnchorName), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnchorName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAnchorName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !IsInvalid(err) {
				t.Errorf("code = %v", GetCode(err))
			}
		})
	}
}
