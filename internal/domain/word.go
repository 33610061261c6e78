package domain

// DataSource names where a catalog came from.
type DataSource string

const (
	DataSourceDictionary DataSource = "dictionary files"
	DataSourceFallback   DataSource = "embedded fallback"
)

func (s DataSource) String() string { return string(s) }

// MaxCatalogWords is the default cap on the number of words in a merged catalog.
const MaxCatalogWords = 1000

// CatalogWord is one ranked, translated vocabulary item.
//
// ID is 1-based and dense over the catalog itself. FrequencyRank is the
// 1-based position in the filtered frequency list, so it keeps counting over
// words that were dropped for lacking a translation. The two diverge.
type CatalogWord struct {
	ID            int    `json:"id"            db:"id"`
	Spanish       string `json:"spanish"       db:"spanish"`
	English       string `json:"english"       db:"english"`
	PartOfSpeech  string `json:"partOfSpeech"  db:"part_of_speech"`
	FrequencyRank int    `json:"frequencyRank" db:"frequency_rank"`

	// Example fields are only set for words from the embedded fallback list.
	ExampleSentence    *string `json:"exampleSentence,omitempty"    db:"example_sentence"`
	ExampleTranslation *string `json:"exampleTranslation,omitempty" db:"example_translation"`
}
