package trainer

import (
	"fmt"

	"github.com/armon/go-radix"
)

// VocabSummary breaks a vocabulary down by entry kind.
type VocabSummary struct {
	Size         int
	Special      int
	WordInitial  int
	Continuation int
}

// Summarize counts the entries of vocab. Continuation pieces are the ones
// carrying prefix; special tokens are counted separately and must all be
// present.
func Summarize(vocab map[string]int, specials []string, prefix string) (VocabSummary, error) {
	tree := radix.New()
	for token, id := range vocab {
		tree.Insert(token, id)
	}

	var summary VocabSummary
	summary.Size = tree.Len()

	for _, s := range specials {
		if _, ok := tree.Get(s); !ok {
			return summary, fmt.Errorf("%w: %s", ErrMissingSpecialToken, s)
		}
		summary.Special++
	}

	if prefix != "" {
		tree.WalkPrefix(prefix, func(string, interface{}) bool {
			summary.Continuation++
			return false
		})
	}
	summary.WordInitial = summary.Size - summary.Special - summary.Continuation
	return summary, nil
}
