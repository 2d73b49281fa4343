package service

import (
	"strings"
	"testing"
)

func TestToken_IssueAndValidate(t *testing.T) {
	as := NewAuthService(nil, "segredo-de-teste")

	token, err := as.issueToken("user-1234")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	userID, err := as.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token failed: %v", err)
	}

	if userID != "user-1234" {
		t.Fatalf("want user-1234, got %q", userID)
	}
}

func TestToken_RejectsTamperedAndForeign(t *testing.T) {
	as := NewAuthService(nil, "segredo-de-teste")

	token, err := as.issueToken("user-1234")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	// 换一个密钥签出来的令牌必须被拒绝
	other := NewAuthService(nil, "outro-segredo")
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatalf("foreign token accepted")
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := as.ValidateToken(tampered); err == nil {
		t.Fatalf("tampered token accepted")
	}

	if _, err := as.ValidateToken(""); err == nil {
		t.Fatalf("empty token accepted")
	}
}

func TestGenerateRoomCode_Format(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code := generateRoomCode()

		if len(code) != ROOM_CODE_LEN {
			t.Fatalf("code %q has wrong length", code)
		}

		for _, c := range code {
			if !strings.ContainsRune(roomCodeAlphabet, c) {
				t.Fatalf("code %q contains invalid character %q", code, c)
			}
		}

		seen[code] = true
	}

	// 100 次全部撞码几乎不可能
	if len(seen) < 2 {
		t.Fatalf("codes are not random")
	}
}
