package utils

import (
	"strings"
	"testing"
)

func TestGenerateOrderRefFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := GenerateOrderRef()
		if !strings.HasPrefix(ref, "DKO-") {
			t.Fatalf("missing prefix: %q", ref)
		}
		body := strings.TrimPrefix(ref, "DKO-")
		if len(body) != 8 {
			t.Fatalf("body length %d in %q", len(body), ref)
		}
		for _, c := range body {
			if !strings.ContainsRune(orderRefCharset, c) {
				t.Fatalf("character %q outside charset in %q", c, ref)
			}
		}
		if seen[ref] {
			t.Fatalf("duplicate reference %q after %d draws", ref, i)
		}
		seen[ref] = true
	}
}

func TestOrderRefCharsetAvoidsAmbiguity(t *testing.T) {
	for _, c := range "IO01" {
		if strings.ContainsRune(orderRefCharset, c) {
			t.Fatalf("charset must not contain %q", c)
		}
	}
}
