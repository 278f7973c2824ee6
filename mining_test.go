package prefixdict

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var gatingURLs = []string{
	"https://cdn1.example.com/img/a.png",
	"https://cdn2.example.com/img/b.png",
	"https://cdn1.example.com/img/c.png",
}

func minedFrom(urls []string, opts ...Option) []Atom {
	return MineAtoms(SplitPrefixes(CountURLs(urls)), newConfig(opts))
}

func TestMineThresholdGatingMembership(t *testing.T) {
	// two distinct prefixes: "https://" saves 2*8-8-10 < 0, "/img/" is
	// tallied twice only
	got := minedFrom(gatingURLs)
	want := []Atom{
		{Text: "cdn*.example.com", Kind: DomainAtom, Frequency: 2, Savings: 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mined atoms mismatch (-want +got):\n%s", diff)
	}
}

func TestMineThresholdGatingWeighted(t *testing.T) {
	got := minedFrom(gatingURLs, WithFrequencyWeighting())
	want := []Atom{
		{Text: "cdn*.example.com", Kind: DomainAtom, Frequency: 3, Savings: 22},
		{Text: "https://", Kind: ProtocolAtom, Frequency: 3, Savings: 6},
		{Text: "cdn1.example.com", Kind: DomainAtom, Frequency: 2, Savings: 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mined atoms mismatch (-want +got):\n%s", diff)
	}
	// "/img/" reaches the tally of 3 but saves 3*5-5-10 = 0 bytes
	for _, a := range got {
		if a.Kind == PathAtom {
			t.Fatalf("unexpected path atom %q", a.Text)
		}
	}
}

func TestMineRejectsSingleOccurrencePaths(t *testing.T) {
	got := minedFrom([]string{
		"https://media.example.org/photos/a/1.png",
		"https://media.example.org/photos/b/1.png",
		"https://media.example.org/voices/c/1.mp3",
		"https://media.example.org/extras/d/1.txt",
	})
	for _, a := range got {
		if a.Kind == PathAtom {
			t.Fatalf("path atom %q accepted with tally %d", a.Text, a.Frequency)
		}
	}
}

func TestMineAcceptsPathAtThreshold(t *testing.T) {
	got := minedFrom([]string{
		"https://h.org/collection/a/1.png",
		"https://h.org/collection/b/1.png",
		"https://h.org/collection/c/1.png",
	})
	found := false
	for _, a := range got {
		if a.Text == "/collection/" {
			found = true
			if a.Kind != PathAtom || a.Frequency != 3 || a.Savings != 3*12-12-10 {
				t.Fatalf("unexpected path atom %+v", a)
			}
		}
	}
	if !found {
		t.Fatalf("expected path atom /collection/, got %v", got)
	}
}

func TestMineSkipsUnparsablePrefixes(t *testing.T) {
	got := minedFrom([]string{
		"/local/img/1.png",
		"/local/img/2.png",
		"relative/img/3.png",
		"http://%zz/img/4.png",
	})
	if len(got) != 0 {
		t.Fatalf("expected no atoms from relative or broken URLs, got %v", got)
	}
}

func TestMinedSavingsArePositive(t *testing.T) {
	got := minedFrom(append(gatingURLs,
		"http://files.example.com/audio/full/1.mp3",
		"http://files.example.com/audio/full/2.mp3",
		"http://files.example.com/audio/part/1.mp3",
		"http://files.example.com/audio/demo/1.mp3",
	), WithFrequencyWeighting())
	if len(got) == 0 {
		t.Fatalf("expected some atoms")
	}
	for i, a := range got {
		if a.Savings <= 0 {
			t.Fatalf("atom %q has non-positive savings %d", a.Text, a.Savings)
		}
		if i > 0 && got[i-1].Savings < a.Savings {
			t.Fatalf("atoms not sorted by savings at %d", i)
		}
	}
}

func TestMineProtocolAndDomainOptions(t *testing.T) {
	urls := []string{
		"https://a.example.com/p/1.png",
		"https://b.example.com/q/1.png",
		"gopher://c.example.com/r/1.png",
		"gopher://c.example.com/s/1.png",
	}
	got := minedFrom(urls, WithProtocols("gopher://"), WithOverhead(0))
	want := []Atom{
		{Text: "c.example.com", Kind: DomainAtom, Frequency: 2, Savings: 13},
		{Text: "gopher://", Kind: ProtocolAtom, Frequency: 2, Savings: 9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mined atoms mismatch (-want +got):\n%s", diff)
	}
	got = minedFrom(urls, WithProtocols("gopher://"), WithOverhead(0),
		WithMinProtocolCount(3), WithMinDomainCount(3))
	if len(got) != 0 {
		t.Fatalf("expected raised thresholds to reject all candidates, got %v", got)
	}
}
