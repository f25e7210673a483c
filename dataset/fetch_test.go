package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLink(t *testing.T) {
	base := "https://www.openmx-square.org/atoms/LDA/Fe/"

	assert.Equal(t, "https://mirror.example/Fe.alog",
		resolveLink(base, "https://mirror.example/Fe.alog"))
	assert.Equal(t, "https://www.openmx-square.org/files/Fe.alog",
		resolveLink(base, "/files/Fe.alog"))
	assert.Equal(t, "https://www.openmx-square.org/atoms/LDA/Fe/Fe7.0.alog",
		resolveLink(base, "Fe7.0.alog"))
	assert.Equal(t, "https://www.openmx-square.org/atoms/LDA/Fe/Fe7.0.alog",
		resolveLink("https://www.openmx-square.org/atoms/LDA/Fe", "Fe7.0.alog"))
}

func TestDedupeLinks(t *testing.T) {
	page := `<a href="Fe7.0.alog">a</a>
<a href="Fe5.5.alog">b</a>
<a href="Fe7.0.alog">dup</a>
<a href="readme.txt">other</a>`

	links := dedupeLinks(alogLinkRe, page)
	assert.Equal(t, []string{"Fe5.5.alog", "Fe7.0.alog"}, links)
}

func TestUPFLinkPattern(t *testing.T) {
	page := `<a href="/upf_files/C.pbe-n-kjpaw_psl.1.0.0.UPF">x</a>
<a href="/other/C.UPF">y</a>`

	links := dedupeLinks(upfLinkRe, page)
	assert.Equal(t, []string{"/upf_files/C.pbe-n-kjpaw_psl.1.0.0.UPF"}, links)
}

func TestPickBest_PrefersHigherScoreAndBreaksTiesFirst(t *testing.T) {
	links := []string{"a.alog", "b.alog", "c0.alog"}
	best := pickBest(links, func(name string) int {
		if name == "c0.alog" {
			return 10
		}
		return 1
	})
	assert.Equal(t, "c0.alog", best)

	// All equal keeps the first in sorted order.
	best = pickBest(links, func(string) int { return 0 })
	assert.Equal(t, "a.alog", best)
}

func TestUPFScore(t *testing.T) {
	paw := "c.pbe-n-kjpaw_psl.1.0.0.upf"
	us := "c.pbe-n-rrkjus_psl.0.1.upf"
	pz := "c.pz-n-kjpaw_psl.0.1.upf"
	rel := "c.rel-pbe-n-kjpaw_psl.1.0.0.upf"

	// PBE PAW from the current psl release wins for light elements;
	// relativistic sets gain ground only for heavy ones.
	assert.Greater(t, upfScore(paw, 6), upfScore(us, 6))
	assert.Greater(t, upfScore(paw, 6), upfScore(pz, 6))
	assert.Greater(t, upfScore(paw, 6), upfScore(rel, 6))
	assert.Greater(t, upfScore(rel, 79), upfScore(pz, 79))
}

func TestAlogScore(t *testing.T) {
	assert.Greater(t, alogScore("fe7.0.alog", "Fe"), alogScore("fe5.5.alog", "Fe"))
	assert.Greater(t, alogScore("fe7.0.alog", "Fe"), alogScore("old7.0.alog", "Fe"))
}
