package password

import (
	"strings"
	"testing"
)

// testParams keeps the memory cost low so the suite stays fast.
var testParams = Params{
	Time:        1,
	MemoryKiB:   16 * 1024,
	Parallelism: 2,
	SaltLen:     16,
	KeyLen:      32,
}

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("admin123", testParams)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("hash %q is not a PHC argon2id string", hash)
	}

	t.Run("CorrectPassword", func(t *testing.T) {
		ok, err := Verify("admin123", hash)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if !ok {
			t.Fatal("correct password did not verify")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ok, err := Verify("admin124", hash)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if ok {
			t.Fatal("wrong password verified")
		}
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		ok, err := Verify("", hash)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if ok {
			t.Fatal("empty password verified")
		}
	})
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := Hash("same input", testParams)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, err := Hash("same input", testParams)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ by salt")
	}
}

func TestUnicodeNormalization(t *testing.T) {
	// U+00E9 (precomposed) and U+0065 U+0301 (decomposed) must verify
	// against each other.
	hash, err := Hash("café", testParams)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	ok, err := Verify("café", hash)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Fatal("decomposed form did not verify against precomposed hash")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1,p=4$only-one-part",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
	} {
		if _, err := Verify("anything", encoded); err == nil {
			t.Errorf("Verify(%q) should have failed", encoded)
		}
	}
}
