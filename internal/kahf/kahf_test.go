package kahf

import "testing"

func TestValid(t *testing.T) {
	for _, n := range []int{1, 6, 10, 110} {
		if !Valid(n) {
			t.Fatalf("expected ayah %d to be valid", n)
		}
	}
	for _, n := range []int{0, -1, 111, 286} {
		if Valid(n) {
			t.Fatalf("expected ayah %d to be invalid", n)
		}
	}
}

func TestRandomAyahInRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		n := RandomAyah()
		if n < 1 || n > AyahCount {
			t.Fatalf("random ayah %d out of range", n)
		}
	}
}
