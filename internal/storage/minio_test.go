package storage

import "testing"

func TestObjectKeys(t *testing.T) {
	if got := AvatarKey("user-1", "me.png"); got != "avatars/user-1/me.png" {
		t.Fatalf("AvatarKey: %q", got)
	}
	if got := CoverKey("user-1", "proj-9", "cover.jpg"); got != "covers/user-1/proj-9/cover.jpg" {
		t.Fatalf("CoverKey: %q", got)
	}
}

func TestNewMediaStorage_MissingConfig(t *testing.T) {
	if _, err := NewMediaStorage(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := NewMediaStorage(&MinIOConfig{}); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}
