package delim_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/strcalc/internal/delim"
	"pgregory.net/rapid"
)

func TestParseHeader_AnyLengthBracketedDelimiter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	set, err := delim.ParseHeader("//[***]")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(set).To(Equal(delim.Set{"***"}))
}

func TestParseHeader_InvalidHeaders(t *testing.T) {
	t.Parallel()

	for name, header := range map[string]string{
		"empty remainder":      "//",
		"empty group":          "//[]",
		"empty group in a run": "//[*][]",
		"unclosed group":       "//[**",
		"text after group":     "//[*]x",
		"text between groups":  "//[*]x[%]",
		"missing prefix":       "[*]",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			set, err := delim.ParseHeader(header)

			g.Expect(err).To(MatchError(delim.ErrInvalidHeader))
			g.Expect(set).To(BeNil())
		})
	}
}

func TestParseHeader_MultiCharacterWithoutBrackets(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	set, err := delim.ParseHeader("//ab")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(set).To(Equal(delim.Set{"ab"}), "the whole remainder is one delimiter")
}

func TestParseHeader_MultipleBracketedDelimiters(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	set, err := delim.ParseHeader("//[**][%%][a[b]")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(set).To(Equal(delim.Set{"**", "%%", "a[b"}))
}

func TestParseHeader_SingleCharacter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	set, err := delim.ParseHeader("//;")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(set).To(Equal(delim.Set{";"}))
}

func TestParse_HeaderWithoutNewline_EmptyPayload(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	set, payload, err := delim.Parse("//;", delim.Default)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(set).To(Equal(delim.Set{";"}))
	g.Expect(payload).To(BeEmpty())
}

func TestParse_InvalidHeaderPropagates(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, _, err := delim.Parse("//[]\n1,2", delim.Default)

	g.Expect(errors.Is(err, delim.ErrInvalidHeader)).To(BeTrue())
}

func TestParse_NoHeader_UsesDefaults(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	set, payload, err := delim.Parse("1,2\n3", delim.Default)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(set).To(Equal(delim.Default))
	g.Expect(payload).To(Equal("1,2\n3"))
}

func TestParse_SplitsAtFirstNewlineOnly(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	set, payload, err := delim.Parse("//;\n1;2\n3", delim.Default)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(set).To(Equal(delim.Set{";"}))
	g.Expect(payload).To(Equal("1;2\n3"))
}

func TestSet_Split_DiscardsEmptyTokens(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(delim.Default.Split(",1,,2\n\n3,")).To(Equal([]string{"1", "2", "3"}))
	g.Expect(delim.Default.Split("")).To(BeEmpty())
	g.Expect(delim.Default.Split(",\n,")).To(BeEmpty())
}

func TestSet_Split_LongestDelimiterWins(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	set := delim.Set{"ab", "abc"}

	g.Expect(set.Split("1abc2ab3")).To(Equal([]string{"1", "2", "3"}))
}

func TestSet_Split_MetacharactersAreLiteral(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	set := delim.Set{".", "|", "$", "\\d"}

	g.Expect(set.Split("1.2|3$4\\d5")).To(Equal([]string{"1", "2", "3", "4", "5"}))
	g.Expect(set.Split("12")).To(Equal([]string{"12"}), "a pattern-style delimiter must not match digits")
}

func TestSet_Split_NonOverlappingMatches(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(delim.Set{"**"}.Split("1***2")).To(Equal([]string{"1", "*2"}))
}

func TestSet_Split_Property_RejoinRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		sep := rapid.SampledFrom([]string{",", "\n", ";", "***", "%%", ".", "|"}).Draw(rt, "sep")
		tokens := rapid.SliceOf(rapid.StringMatching(`[0-9]{1,4}`)).Draw(rt, "tokens")

		got := delim.Set{sep}.Split(strings.Join(tokens, sep))

		if !slices.Equal(got, tokens) {
			rt.Fatalf("split of %q joined by %q gave %q", tokens, sep, got)
		}
	})
}
