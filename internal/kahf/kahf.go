// Package kahf describes the fixed verse set of Surat Al-Kahf (chapter 18),
// the target chapter every reflection is linked to. The verse texts
// themselves live with the frontend dataset; submissions carry a denormalized
// copy, so the engine only needs the numbering.
package kahf

import "math/rand"

const (
	// Surah is the chapter number in the mushaf.
	Surah = 18
	// AyahCount is the number of verses in the chapter.
	AyahCount = 110
)

// Valid reports whether n references a verse of the chapter.
func Valid(n int) bool {
	return n >= 1 && n <= AyahCount
}

// RandomAyah returns a verse number for the "reflect on a random ayah"
// helper on the submit page.
func RandomAyah() int {
	return rand.Intn(AyahCount) + 1
}
