//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package bags

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//
// CLEANING
//

// the order matters: strip markup, swap the drafting abbreviations, lower,
// deaccent, then drop everything that is not a letter, digit, space, or "_"

var (
	strippers = []string{
		`<[^>]*>`,              // markup
		`\[[0-9]+\]`,           // bracketed references
		`§+\s*[0-9a-z.\-]*`,    // section symbols
		`\b[0-9]+\s+U\.S\.C\.`, // code citations
		`http[s]?://\S+`,
		`\b[0-9]+\b`, // free-standing numbers
	}
	strippercache = compilestrippers(strippers)
	notword       = regexp.MustCompile(`[^\p{L}\p{N}_ ]+`)
	manyspaces    = regexp.MustCompile(`\s+`)
)

func compilestrippers(pp []string) []*regexp.Regexp {
	cc := make([]*regexp.Regexp, len(pp))
	for i := 0; i < len(pp); i++ {
		cc[i] = regexp.MustCompile(pp[i])
	}
	return cc
}

// stripper - delete each in a list of patterns from a string
func stripper(item string, purge []*regexp.Regexp) string {
	for i := 0; i < len(purge); i++ {
		item = purge[i].ReplaceAllString(item, " ")
	}
	return item
}

// makesubstitutions - expand the bill-drafting abbreviations before lowercasing kills them
func makesubstitutions(thetext string) string {
	// "H.R. 2617" and "S. 1605" must not leave an orphaned "h" or "r" in the bag
	swap := strings.NewReplacer("H.R.", "housebill", "H. R.", "housebill", "S.", "senatebill",
		"H.J.Res.", "jointresolution", "S.J.Res.", "jointresolution",
		"H.Con.Res.", "concurrentresolution", "S.Con.Res.", "concurrentresolution",
		"U.S.", "unitedstates", "No.", "number", "Stat.", "statutes",
		"Cong.", "congress", "Sess.", "session")
	return swap.Replace(thetext)
}

// deaccent - NFD, strip the combining marks, NFC
func deaccent(thetext string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	cleaned, _, e := transform.String(t, thetext)
	if e != nil {
		return thetext
	}
	return cleaned
}

// Clean - raw bill text into a lowercased, deaccented, stripped string
func Clean(raw string) string {
	clean := makesubstitutions(raw)
	clean = stripper(clean, strippercache)
	clean = strings.ToLower(clean)
	clean = deaccent(clean)
	clean = notword.ReplaceAllString(clean, " ")
	clean = manyspaces.ReplaceAllString(clean, " ")
	return strings.TrimSpace(clean)
}

// Tokenize - a cleaned string into its words
func Tokenize(clean string) []string {
	if clean == "" {
		return nil
	}
	return strings.Fields(clean)
}

//
// BAGGING
//

// each bill is one bag; the whole corpus is a positionally aligned slice of bags

// BuildBags - clean + tokenize + drop stop words, one bag per text
func BuildBags(texts []string, stops []string) [][]string {
	sm := ToStopMap(stops)
	bb := make([][]string, len(texts))
	for i := 0; i < len(texts); i++ {
		bb[i] = stopworddropper(sm, Tokenize(Clean(texts[i])))
	}
	return bb
}

// ToStopMap - a skip list as a set
func ToStopMap(stops []string) map[string]bool {
	sm := make(map[string]bool, len(stops))
	for i := 0; i < len(stops); i++ {
		sm[stops[i]] = true
	}
	return sm
}

// stopworddropper - if word is in stops, drop the word
func stopworddropper(stops map[string]bool, wordlist []string) []string {
	var returnlist []string
	for i := 0; i < len(wordlist); i++ {
		if _, t := stops[wordlist[i]]; t {
			continue
		}
		returnlist = append(returnlist, wordlist[i])
	}
	return returnlist
}

// Join - a bag back into one document string for the vectoriser
func Join(bag []string) string {
	return strings.Join(bag, " ")
}

// JoinAll - all the bags as vectoriser-ready document strings
func JoinAll(bb [][]string) []string {
	dd := make([]string, len(bb))
	for i := 0; i < len(bb); i++ {
		dd[i] = Join(bb[i])
	}
	return dd
}

//
// FREQUENCY TRIMMING
//

// the vectoriser's stop-word mechanism is the trimming mechanism: terms that
// fail the thresholds are appended to the skip list before the matrix is built

// TrimmableTerms - terms below the corpus count or document count thresholds
func TrimmableTerms(bb [][]string, mintermcount int, mindoccount int) []string {
	termcount := make(map[string]int)
	doccount := make(map[string]int)

	for i := 0; i < len(bb); i++ {
		seen := make(map[string]bool)
		for _, w := range bb[i] {
			termcount[w]++
			if !seen[w] {
				doccount[w]++
				seen[w] = true
			}
		}
	}

	var cuts []string
	for w, c := range termcount {
		if c < mintermcount || doccount[w] < mindoccount {
			cuts = append(cuts, w)
		}
	}
	return cuts
}

// TrimBags - drop the trimmable terms from every bag; the bag count is unchanged
func TrimBags(bb [][]string, mintermcount int, mindoccount int) ([][]string, []string) {
	cuts := TrimmableTerms(bb, mintermcount, mindoccount)
	cm := ToStopMap(cuts)
	out := make([][]string, len(bb))
	for i := 0; i < len(bb); i++ {
		out[i] = stopworddropper(cm, bb[i])
	}
	return out, cuts
}
