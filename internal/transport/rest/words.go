package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/spanish-vocab/internal/domain"
	"github.com/heartmarshall/spanish-vocab/internal/service/words"
)

const (
	defaultCount = 20
	maxExclude   = domain.MaxCatalogWords
)

type wordsService interface {
	GetByID(id int) (domain.CatalogWord, error)
	ListByFrequency(count, skip int) ([]domain.CatalogWord, error)
	Random(count int, exclude []int) []domain.CatalogWord
	Info() words.Info
}

// WordsHandler serves the catalog read endpoints.
type WordsHandler struct {
	words wordsService
	log   *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(svc wordsService, logger *slog.Logger) *WordsHandler {
	return &WordsHandler{
		words: svc,
		log:   logger.With("handler", "words"),
	}
}

// WordList is the JSON envelope of list endpoints.
type WordList struct {
	Words []domain.CatalogWord `json:"words"`
	Count int                  `json:"count"`
}

// Get returns one word.
// GET /words/{id}
func (h *WordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeServiceError(w, r, h.log, domain.NewValidationError("id", "must be a positive integer"))
		return
	}

	word, err := h.words.GetByID(id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, word)
}

// List returns a page of words in frequency order.
// GET /words?count=20&skip=0
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var errs []domain.FieldError
	count, err := intParam(q.Get("count"), defaultCount)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must be an integer"})
	}
	skip, err := intParam(q.Get("skip"), 0)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "skip", Message: "must be an integer"})
	}
	if len(errs) > 0 {
		writeServiceError(w, r, h.log, domain.NewValidationErrors(errs))
		return
	}

	page, err := h.words.ListByFrequency(min(count, domain.MaxCatalogWords), skip)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, WordList{Words: page, Count: len(page)})
}

// Random returns a random sample of words.
// GET /words/random?count=10&exclude=1,2,3
func (h *WordsHandler) Random(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var errs []domain.FieldError
	count, err := intParam(q.Get("count"), defaultCount)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must be an integer"})
	}
	exclude, err := idList(q.Get("exclude"))
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "exclude", Message: err.Error()})
	}
	if len(errs) > 0 {
		writeServiceError(w, r, h.log, domain.NewValidationErrors(errs))
		return
	}

	sample := h.words.Random(min(count, domain.MaxCatalogWords), exclude)
	writeJSON(w, http.StatusOK, WordList{Words: sample, Count: len(sample)})
}

// Info describes the served catalog.
// GET /catalog/info
func (h *WordsHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.words.Info())
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

var (
	errTooManyIDs = errors.New("too many ids")
	errBadIDList  = errors.New("must be a comma-separated list of integers")
)

// idList parses a comma-separated list of word ids. Empty items are ignored.
func idList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) > maxExclude {
		return nil, errTooManyIDs
	}

	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, errBadIDList
		}
		ids = append(ids, id)
	}
	return ids, nil
}
