package cli

import (
	"testing"
)

func TestShowRequiresID(t *testing.T) {
	_, err := executeCommand("show")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestShowRejectsNonNumericID(t *testing.T) {
	_, err := executeCommand("show", "abc", "--server", "http://127.0.0.1:1")
	if err == nil || err.Error() != "invalid property ID: abc" {
		t.Fatalf("err = %v, want invalid property ID", err)
	}
}

func TestSearchRejectsInvertedPriceRange(t *testing.T) {
	_, err := executeCommand("search", "--min-price", "20000", "--max-price", "10000", "--server", "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error for inverted price range")
	}
}

func TestSearchTakesAtMostOneQuery(t *testing.T) {
	_, err := executeCommand("search", "loft", "studio")
	if err == nil {
		t.Fatal("expected error for two queries")
	}
}

func TestRoommatesRejectsUnknownGender(t *testing.T) {
	_, err := executeCommand("roommates", "--gender", "robot", "--server", "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error for unknown gender")
	}
}

func TestRecommendRejectsNegativeLimit(t *testing.T) {
	_, err := executeCommand("recommend", "--limit", "-1", "--server", "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestServeAcceptsNoArgs(t *testing.T) {
	_, err := executeCommand("serve", "extra")
	if err == nil {
		t.Fatal("expected error for extra args")
	}
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := executeCommand("serve", "--config", "", "--storage", "cassandra")
	if err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}
