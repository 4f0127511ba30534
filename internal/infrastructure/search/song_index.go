// Package search keeps an Elasticsearch index of the catalog for title/artist lookups.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

// maxHits matches the default index.max_result_window.
const maxHits = 10000

// ErrTruncated means the index holds more matches than one search returns.
var ErrTruncated = errors.New("search: more hits than returned")

// title and artist carry a keyword sub-field so that case-insensitive wildcard
// queries give plain substring semantics instead of analyzed token matches.
const indexMapping = `{
  "mappings": {
    "properties": {
      "title":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "artist":     {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "created_at": {"type": "date"}
    }
  }
}`

type SongIndex struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewSongIndex(es *elasticsearch.Client, index string) *SongIndex {
	return &SongIndex{es: es, index: index, timeout: 3 * time.Second}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// ContainsWildcard builds a wildcard pattern matching term anywhere in a keyword.
func ContainsWildcard(term string) string {
	return "*" + wildcardEscaper.Replace(term) + "*"
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (s *SongIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := esapi.IndicesExistsRequest{Index: []string{s.index}}.Do(c, s.es)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = esapi.IndicesCreateRequest{Index: s.index, Body: strings.NewReader(indexMapping)}.Do(c, s.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", s.index, res.Status())
	}
	return nil
}

func (s *SongIndex) Index(ctx context.Context, song *entity.Song) error {
	return s.put(ctx, song, "wait_for")
}

func (s *SongIndex) put(ctx context.Context, song *entity.Song, refresh string) error {
	doc := map[string]any{
		"id":         song.ID,
		"title":      song.Title,
		"artist":     song.Artist,
		"created_at": song.CreatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	req := esapi.IndexRequest{Index: s.index, DocumentID: song.ID, Body: strings.NewReader(string(b)), Refresh: refresh}
	res, err := req.Do(c, s.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index song %s: %s", song.ID, res.Status())
	}
	return nil
}

// Remove deletes a song document; a missing document is not an error.
func (s *SongIndex) Remove(ctx context.Context, id string) error {
	c, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: s.index, DocumentID: id, Refresh: "wait_for"}.Do(c, s.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove song %s: %s", id, res.Status())
	}
	return nil
}

// Search returns the ids of every indexed song matching term. It fails with
// ErrTruncated rather than return a partial set.
func (s *SongIndex) Search(ctx context.Context, term string) ([]string, error) {
	pattern := ContainsWildcard(term)
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{"wildcard": map[string]any{"title.raw": map[string]any{"value": pattern, "case_insensitive": true}}},
					map[string]any{"wildcard": map[string]any{"artist.raw": map[string]any{"value": pattern, "case_insensitive": true}}},
				},
				"minimum_should_match": 1,
			},
		},
		"_source":          false,
		"size":             maxHits,
		"track_total_hits": true,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.es.Search(s.es.Search.WithContext(c), s.es.Search.WithIndex(s.index), s.es.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search songs: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value    int    `json:"value"`
				Relation string `json:"relation"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	total := parsed.Hits.Total
	if total.Relation == "gte" || total.Value > len(parsed.Hits.Hits) {
		return nil, fmt.Errorf("%w: %d of %d", ErrTruncated, len(parsed.Hits.Hits), total.Value)
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

// Reindex writes every song without waiting for refresh, then refreshes once.
func (s *SongIndex) Reindex(ctx context.Context, songs []entity.Song) error {
	if err := s.EnsureIndex(ctx); err != nil {
		return err
	}
	for i := range songs {
		if err := s.put(ctx, &songs[i], "false"); err != nil {
			return err
		}
	}
	c, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := esapi.IndicesRefreshRequest{Index: []string{s.index}}.Do(c, s.es)
	if err != nil {
		return err
	}
	return res.Body.Close()
}

var _ repository.SongIndex = (*SongIndex)(nil)
