package pii

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestValidate(t *testing.T) {
	engine := New(true, 0.8)

	t.Run("DetectsEmail", func(t *testing.T) {
		result := engine.Validate("Contact me at test@example.com")
		if !result.HasPII {
			t.Fatal("Email not detected")
		}
		if !reflect.DeepEqual(result.PIITypes, []string{"email"}) {
			t.Errorf("Unexpected pii_types: %v", result.PIITypes)
		}
		if result.Confidence != 1.0 {
			t.Errorf("Confidence = %f, want 1.0", result.Confidence)
		}
		if result.SafeToSend {
			t.Error("Detected email marked safe to send")
		}
	})

	t.Run("DetailsAreMasked", func(t *testing.T) {
		result := engine.Validate("Contact me at test@example.com")
		if len(result.Details) != 1 {
			t.Fatalf("Expected 1 detail, got %d", len(result.Details))
		}
		if result.Details[0] != "Found email: te***om" {
			t.Errorf("Unexpected detail: %q", result.Details[0])
		}
		if strings.Contains(result.Details[0], "test@example.com") {
			t.Error("Detail contains unmasked value")
		}
	})

	t.Run("PhoneDetailJoinsGroups", func(t *testing.T) {
		result := engine.Validate("Call me at (415) 555-1212")
		if !reflect.DeepEqual(result.PIITypes, []string{"phone"}) {
			t.Fatalf("Unexpected pii_types: %v", result.PIITypes)
		}
		if result.Details[0] != "Found phone: 415-555-1212" {
			t.Errorf("Unexpected detail: %q", result.Details[0])
		}
	})

	t.Run("DetectsSSN", func(t *testing.T) {
		result := engine.Validate("My SSN is 123-45-6789")
		if !reflect.DeepEqual(result.PIITypes, []string{"ssn"}) {
			t.Errorf("Unexpected pii_types: %v", result.PIITypes)
		}
	})

	t.Run("DetectsCreditCard", func(t *testing.T) {
		result := engine.Validate("Use card 4242 4242 4242 4242 for payment")
		if !reflect.DeepEqual(result.PIITypes, []string{"credit_card"}) {
			t.Errorf("Unexpected pii_types: %v", result.PIITypes)
		}
	})

	t.Run("DetectsIPWithoutRangeValidation", func(t *testing.T) {
		result := engine.Validate("host at 999.999.999.999")
		if !reflect.DeepEqual(result.PIITypes, []string{"ip_address"}) {
			t.Errorf("Unexpected pii_types: %v", result.PIITypes)
		}
	})

	t.Run("DetectsStreetAddress", func(t *testing.T) {
		result := engine.Validate("Ship to 42 Elm Street please")
		if !reflect.DeepEqual(result.PIITypes, []string{"address"}) {
			t.Errorf("Unexpected pii_types: %v", result.PIITypes)
		}
	})

	t.Run("RegistryOrderAcrossCategories", func(t *testing.T) {
		result := engine.Validate("Email a@bb.com, call 415-555-1212, SSN 123-45-6789")
		want := []string{"email", "phone", "ssn"}
		if !reflect.DeepEqual(result.PIITypes, want) {
			t.Errorf("pii_types = %v, want %v", result.PIITypes, want)
		}
	})

	t.Run("MultipleMatchesPerCategory", func(t *testing.T) {
		result := engine.Validate("a@bb.com and c@dd.org")
		want := []string{"email", "email"}
		if !reflect.DeepEqual(result.PIITypes, want) {
			t.Errorf("pii_types = %v, want %v", result.PIITypes, want)
		}
	})

	t.Run("DetailsMatchTypesLength", func(t *testing.T) {
		inputs := []string{
			"",
			"nothing sensitive here",
			"a@bb.com",
			"a@bb.com 415-555-1212 123-45-6789 10.0.0.1 9 Oak Ln",
		}
		for _, input := range inputs {
			result := engine.Validate(input)
			if len(result.Details) != len(result.PIITypes) {
				t.Errorf("Input %q: %d details vs %d types", input, len(result.Details), len(result.PIITypes))
			}
			if result.HasPII != (len(result.Details) > 0) {
				t.Errorf("Input %q: has_pii inconsistent with details", input)
			}
		}
	})

	t.Run("CleanText", func(t *testing.T) {
		result := engine.Validate("Let's meet tomorrow to discuss the roadmap.")
		if result.HasPII {
			t.Error("Clean text flagged as PII")
		}
		if result.Confidence != 0.0 {
			t.Errorf("Confidence = %f, want 0.0", result.Confidence)
		}
		if !result.SafeToSend {
			t.Error("Clean text not safe to send")
		}
		if result.PIITypes == nil || result.Details == nil {
			t.Error("Result slices should be empty, not nil")
		}
	})
}

func TestValidateDisabled(t *testing.T) {
	engine := New(false, 0.8)

	for _, input := range []string{"", "test@example.com", "SSN 123-45-6789"} {
		result := engine.Validate(input)
		if result.HasPII {
			t.Errorf("Disabled engine reported PII for %q", input)
		}
		if !result.SafeToSend {
			t.Errorf("Disabled engine marked %q unsafe", input)
		}
		if result.Confidence != 1.0 {
			t.Errorf("Disabled engine confidence = %f, want 1.0", result.Confidence)
		}
		if len(result.PIITypes) != 0 || len(result.Details) != 0 {
			t.Errorf("Disabled engine returned findings for %q", input)
		}
	}
}

func TestThresholdEdges(t *testing.T) {
	// Binary confidence makes the threshold nearly inert: any detection
	// yields confidence 1.0, which is below the threshold only when the
	// threshold exceeds 1.0.
	t.Run("BelowOne", func(t *testing.T) {
		result := New(true, 0.8).Validate("test@example.com")
		if result.SafeToSend {
			t.Error("Detection with threshold 0.8 should be unsafe")
		}
	})

	t.Run("ExactlyOne", func(t *testing.T) {
		result := New(true, 1.0).Validate("test@example.com")
		if result.SafeToSend {
			t.Error("Confidence 1.0 is not below threshold 1.0; should be unsafe")
		}
	})

	t.Run("AboveOne", func(t *testing.T) {
		result := New(true, 1.5).Validate("test@example.com")
		if !result.SafeToSend {
			t.Error("Threshold above 1.0 marks every result safe")
		}
	})

	t.Run("Zero", func(t *testing.T) {
		result := New(true, 0).Validate("test@example.com")
		if result.SafeToSend {
			t.Error("Threshold 0 should mark detected PII unsafe")
		}
	})
}

func TestMask(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"", "***"},
		{"ab", "***"},
		{"abcd", "***"},
		{"abcde", "ab***de"},
		{"test@example.com", "te***om"},
	}
	for _, c := range cases {
		if got := mask(c.value); got != c.want {
			t.Errorf("mask(%q) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestCategories(t *testing.T) {
	want := []string{"email", "phone", "ssn", "credit_card", "ip_address", "address"}
	if got := Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestConcurrentUse(t *testing.T) {
	engine := New(true, 0.8)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			input := fmt.Sprintf("worker %d mail user%d@example.com", n, n)
			for j := 0; j < 100; j++ {
				if !engine.Validate(input).HasPII {
					t.Error("Email not detected under concurrency")
					return
				}
				if strings.Contains(engine.Sanitize(input), "user") {
					t.Error("Local part survived sanitization under concurrency")
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
