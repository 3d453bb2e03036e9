//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tm

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//
// SEED DICTIONARIES
//

// a seed dictionary is an ordered list of labeled topics, each with seed terms
// or stems; terms ending in "*" prefix-match against the vocabulary
//
//   topics:
//     - label: agriculture
//       terms: [farm*, crop, livestock, subsid*]
//     - label: healthcare
//       terms: [hospital*, medicare, insurance]

const STEMMARK = "*"

type SeedTopic struct {
	Label string   `yaml:"label"`
	Terms []string `yaml:"terms"`
}

type SeedDict struct {
	Topics []SeedTopic `yaml:"topics"`
}

// LoadSeedDict - read and validate a seed dictionary YAML file
func LoadSeedDict(path string) (*SeedDict, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open seed dictionary '%s': %w", path, err)
	}
	return ParseSeedDict(b)
}

// ParseSeedDict - seed dictionary YAML bytes into a validated SeedDict
func ParseSeedDict(b []byte) (*SeedDict, error) {
	var sd SeedDict
	if err := yaml.Unmarshal(b, &sd); err != nil {
		return nil, fmt.Errorf("could not parse seed dictionary: %w", err)
	}
	if err := sd.Validate(); err != nil {
		return nil, err
	}
	return &sd, nil
}

// Validate - reject the configurations the fitter would accept but silently ruin:
// an unlabeled topic, a topic with no seeds, a term claimed by two topics
func (sd *SeedDict) Validate() error {
	if len(sd.Topics) == 0 {
		return fmt.Errorf("seed dictionary has no topics")
	}

	claimed := make(map[string]string)
	for i, t := range sd.Topics {
		if strings.TrimSpace(t.Label) == "" {
			return fmt.Errorf("seed topic #%d has no label", i+1)
		}
		if len(t.Terms) == 0 {
			return fmt.Errorf("seed topic '%s' has an empty term list", t.Label)
		}
		for _, term := range t.Terms {
			term = strings.TrimSpace(term)
			if term == "" || term == STEMMARK {
				return fmt.Errorf("seed topic '%s' contains an empty term", t.Label)
			}
			if prior, dup := claimed[term]; dup && prior != t.Label {
				return fmt.Errorf("seed term '%s' is claimed by both '%s' and '%s'", term, prior, t.Label)
			}
			claimed[term] = t.Label
		}
	}
	return nil
}

// K - the number of seeded topics
func (sd *SeedDict) K() int {
	return len(sd.Topics)
}

// Labels - the topic labels in dictionary order
func (sd *SeedDict) Labels() []string {
	ll := make([]string, len(sd.Topics))
	for i := 0; i < len(sd.Topics); i++ {
		ll[i] = sd.Topics[i].Label
	}
	return ll
}

// FlatTerms - every seed term in dictionary order, stem marks kept
func (sd *SeedDict) FlatTerms() []string {
	var tt []string
	for _, t := range sd.Topics {
		tt = append(tt, t.Terms...)
	}
	return tt
}

// MatchVocabulary - per topic, the vocabulary indices its seeds cover;
// "farm*" prefix-matches, "farm" matches exactly
func (sd *SeedDict) MatchVocabulary(vocab []string) [][]int {
	out := make([][]int, len(sd.Topics))
	for i, t := range sd.Topics {
		seen := make(map[int]bool)
		for _, term := range t.Terms {
			if strings.HasSuffix(term, STEMMARK) {
				stem := strings.TrimSuffix(term, STEMMARK)
				for v := 0; v < len(vocab); v++ {
					if strings.HasPrefix(vocab[v], stem) {
						seen[v] = true
					}
				}
			} else {
				for v := 0; v < len(vocab); v++ {
					if vocab[v] == term {
						seen[v] = true
					}
				}
			}
		}
		for v := range seen {
			out[i] = append(out[i], v)
		}
		sort.Ints(out[i])
	}
	return out
}

// Degenerate - does this dictionary look like a mechanical alphabetical slice
// of the vocabulary rather than a curated one? A dictionary whose flattened
// terms are exactly the first len(terms) entries of the sorted vocabulary will
// "fit" but models nothing; flag it so callers can refuse or opt in
func (sd *SeedDict) Degenerate(vocab []string) bool {
	terms := sd.FlatTerms()
	if len(terms) == 0 || len(terms) > len(vocab) {
		return false
	}

	for _, t := range terms {
		if strings.HasSuffix(t, STEMMARK) {
			// stems imply a curating hand
			return false
		}
	}

	sorted := append([]string(nil), vocab...)
	sort.Strings(sorted)

	prefix := make(map[string]bool, len(terms))
	for i := 0; i < len(terms); i++ {
		prefix[sorted[i]] = true
	}
	for _, t := range terms {
		if !prefix[t] {
			return false
		}
	}
	return true
}

//
// THE LEXICON-TRUNCATION SHORTCUT
//

// building a "dictionary" by slicing the first k*perTopic entries off an
// alphabetized lexicon is supported because it is cheap and tempting, but the
// result trips Degenerate(); callers must opt in to fit with it

// LoadLexicon - a lexicon file, one term per line, returned alphabetized
func LoadLexicon(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open lexicon '%s': %w", path, err)
	}

	var terms []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			terms = append(terms, line)
		}
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("lexicon '%s' is empty", path)
	}
	sort.Strings(terms)
	return terms, nil
}

// TruncateLexicon - the first k*perTopic lexicon entries dealt into k topics
func TruncateLexicon(lexicon []string, k int, pertopic int) (*SeedDict, error) {
	need := k * pertopic
	if len(lexicon) < need {
		return nil, fmt.Errorf("lexicon has %d terms; %d topics x %d terms needs %d", len(lexicon), k, pertopic, need)
	}

	sd := &SeedDict{Topics: make([]SeedTopic, k)}
	for i := 0; i < k; i++ {
		sd.Topics[i] = SeedTopic{
			Label: fmt.Sprintf("lexicon-%02d", i+1),
			Terms: append([]string(nil), lexicon[i*pertopic:(i+1)*pertopic]...),
		}
	}
	if err := sd.Validate(); err != nil {
		return nil, err
	}
	return sd, nil
}
