// ranker package combines TF-IDF query relevance with precomputed
// PageRank authority scores into a single ranked result list.
package ranker

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"unisearch/textindexer/index"
)

// Index is the read-only view of the text index that ranking requires.
type Index interface {
	Lookup(term string) ([]index.Posting, error)
	DocumentCount() int
}

// Result is a single ranked entry of a query.
type Result struct {
	URL string

	// Weighted combination of the normalized TF-IDF relevance and the
	// document's PageRank score.
	Score float64
}

// Config encapsulates the weights applied when combining relevance with
// authority.
type Config struct {
	// Weight applied to the normalized TF-IDF component. If not
	// specified, a default value of 0.7 will be used instead.
	WeightTFIDF float64

	// Weight applied to the PageRank component. If not specified, a
	// default value of 0.3 will be used instead.
	WeightPageRank float64
}

func (config *Config) validate() error {
	var err error

	if config.WeightTFIDF == 0 && config.WeightPageRank == 0 {
		config.WeightTFIDF = 0.7
		config.WeightPageRank = 0.3
	}
	if config.WeightTFIDF < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for TF-IDF weight, must be >= 0",
		))
	}
	if config.WeightPageRank < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for PageRank weight, must be >= 0",
		))
	}

	return err
}

// Ranker scores candidate documents for a tokenized query. It only reads
// from the index and the score map, so a single instance can serve
// concurrent queries.
type Ranker struct {
	cfg Config
}

// NewRanker returns a new Ranker instance using the provided config
// options.
func NewRanker(cfg Config) (*Ranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ranker config validation failed: %w", err)
	}

	return &Ranker{cfg: cfg}, nil
}

// Rank scores every document appearing in the postings of any query term
// and returns the candidates ordered by combined score, tie-broken by URL
// so identical inputs always produce identical output. A query whose
// terms all have zero postings yields an empty result list.
func (r *Ranker) Rank(queryTerms []string, idx Index, pageRankScores map[string]float64) ([]Result, error) {
	totalDocs := idx.DocumentCount()

	tfidfScores := make(map[string]float64)
	for _, term := range queryTerms {
		postings, err := idx.Lookup(term)
		if err != nil {
			return nil, fmt.Errorf("rank: lookup %q: %w", term, err)
		}

		idf := index.IDF(totalDocs, len(postings))
		for _, posting := range postings {
			tfidfScores[posting.URL] += posting.TF() * idf
		}
	}

	if len(tfidfScores) == 0 {
		return nil, nil
	}

	// Raw TF-IDF scores have no fixed scale; normalizing by the best
	// candidate keeps them comparable to the [0,1]-bounded PageRank
	// component.
	var maxTFIDF float64
	for _, score := range tfidfScores {
		if score > maxTFIDF {
			maxTFIDF = score
		}
	}

	results := make([]Result, 0, len(tfidfScores))
	for url, tfidf := range tfidfScores {
		var normalized float64
		if maxTFIDF > 0 {
			normalized = tfidf / maxTFIDF
		}

		results = append(results, Result{
			URL: url,
			Score: r.cfg.WeightTFIDF*normalized +
				r.cfg.WeightPageRank*pageRankScores[url],
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}

		return results[i].URL < results[j].URL
	})

	return results, nil
}
