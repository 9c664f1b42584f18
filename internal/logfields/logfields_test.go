package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Stage", KeyStage, "lex", Stage("lex")},
		{"File", KeyFile, "a.md", File("a.md")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Format", KeyFormat, "html", Format("html")},
		{"RequestID", KeyRequestID, "rid", RequestID("rid")},
		{"Method", KeyMethod, "POST", Method("POST")},
		{"RemoteAddr", KeyRemoteAddr, "1.2.3.4", RemoteAddr("1.2.3.4")},
		{"UserAgent", KeyUserAgent, "curl/8", UserAgent("curl/8")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & bool helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Tokens(5); v.Key != KeyTokens || v.Value.Int64() != 5 {
		t.Fatalf("Tokens mismatch: %v", v)
	}
	if v := Blocks(3); v.Key != KeyBlocks || v.Value.Int64() != 3 {
		t.Fatalf("Blocks mismatch: %v", v)
	}
	if v := Status(200); v.Key != KeyStatus {
		t.Fatalf("Status key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
	if v := CacheHit(true); v.Key != KeyCacheHit || !v.Value.Bool() {
		t.Fatalf("CacheHit mismatch: %v", v)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
