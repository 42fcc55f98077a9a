package migrate

import "testing"

func TestValidateMigrationsDir(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations directory failed validation: %v", err)
	}
}

func TestValidateDirMissing(t *testing.T) {
	if err := ValidateDir("does-not-exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
