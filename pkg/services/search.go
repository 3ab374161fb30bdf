package services

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
)

const (
	// DefaultSearchLimit is applied when a caller omits limit.
	DefaultSearchLimit = 10
	// MaxSearchLimit caps the result count; larger requests are
	// clamped, not rejected.
	MaxSearchLimit = 50

	// DefaultStanceLimit is the default number of document groups in
	// a stance result.
	DefaultStanceLimit = 5
	// stanceProvisionsPerGroup caps provisions carried per statute in
	// a stance group; the aggregator trades depth for breadth.
	stanceProvisionsPerGroup = 3
)

// SearchRequest is a caller-facing full-text query. DocumentRef is
// resolved through the identifier resolver when non-empty.
type SearchRequest struct {
	Query       string
	DocumentRef string
	Status      models.DocumentStatus
	Limit       int
}

// SearchService runs ranked full-text search over provision text and
// the stance aggregation built on top of it.
type SearchService interface {
	Search(ctx context.Context, req SearchRequest) ([]*models.SearchResult, error)
	// BuildStance fans the query out across the corpus and groups
	// hits by source document, at most limit groups.
	BuildStance(ctx context.Context, query, documentRef string, limit int) ([]*models.StanceGroup, error)
}

type searchService struct {
	repo     repositories.SearchRepository
	resolver ResolverService
	logger   *zap.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(repo repositories.SearchRepository, resolver ResolverService, logger *zap.Logger) SearchService {
	return &searchService{repo: repo, resolver: resolver, logger: logger}
}

var _ SearchService = (*searchService)(nil)

// tsQueryMeta matches characters meaningful to the tsquery syntax.
// They are stripped rather than escaped: legal queries never need
// them literally, and multilingual text search syntax is brittle
// enough without pass-through operators.
var tsQueryMeta = regexp.MustCompile(`[&|!():*<>'"]`)

// SanitizeQuery neutralizes text-search operators and collapses
// whitespace. Exported for the tool layer's parameter validation.
func SanitizeQuery(query string) string {
	cleaned := tsQueryMeta.ReplaceAllString(query, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// prefixQuery rebuilds the sanitized query as an AND of prefix
// matches: "data protection" -> "data:* & protection:*".
func prefixQuery(sanitized string) string {
	tokens := strings.Fields(sanitized)
	for i, tok := range tokens {
		tokens[i] = tok + ":*"
	}
	return strings.Join(tokens, " & ")
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

func (s *searchService) Search(ctx context.Context, req SearchRequest) ([]*models.SearchResult, error) {
	sanitized := SanitizeQuery(req.Query)
	if sanitized == "" {
		return []*models.SearchResult{}, nil
	}

	params := repositories.SearchParams{
		Query:  sanitized,
		Mode:   repositories.ModeWeb,
		Status: req.Status,
		Limit:  clampLimit(req.Limit, DefaultSearchLimit, MaxSearchLimit),
	}

	if ref := strings.TrimSpace(req.DocumentRef); ref != "" {
		doc, err := s.resolver.Resolve(ctx, ref)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, err
		}
		params.DocumentID = doc.ID
	}

	results, err := s.repo.SearchProvisions(ctx, params)
	if err != nil {
		return nil, err
	}

	// Zero rows from the primary strategy may mean a syntax mismatch
	// rather than a true miss; retry with relaxed prefix matching
	// before reporting "no matches".
	if len(results) == 0 {
		params.Mode = repositories.ModePrefix
		params.Query = prefixQuery(sanitized)
		results, err = s.repo.SearchProvisions(ctx, params)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			s.logger.Debug("Primary search strategy empty; prefix fallback matched",
				zap.String("query", sanitized),
				zap.Int("results", len(results)),
			)
		}
	}

	if results == nil {
		results = []*models.SearchResult{}
	}
	return results, nil
}

func (s *searchService) BuildStance(ctx context.Context, query, documentRef string, limit int) ([]*models.StanceGroup, error) {
	results, err := s.Search(ctx, SearchRequest{
		Query:       query,
		DocumentRef: documentRef,
		Limit:       MaxSearchLimit,
	})
	if err != nil {
		return nil, err
	}

	groupLimit := clampLimit(limit, DefaultStanceLimit, MaxSearchLimit)

	byDoc := make(map[string]*models.StanceGroup)
	var order []string
	for _, res := range results {
		group, ok := byDoc[res.DocumentID]
		if !ok {
			group = &models.StanceGroup{
				DocumentID:    res.DocumentID,
				DocumentTitle: res.DocumentTitle,
				Abbreviation:  res.Abbreviation,
				Status:        res.Status,
				BestRank:      res.Rank,
			}
			byDoc[res.DocumentID] = group
			order = append(order, res.DocumentID)
		}
		if res.Rank > group.BestRank {
			group.BestRank = res.Rank
		}
		if len(group.Provisions) < stanceProvisionsPerGroup {
			group.Provisions = append(group.Provisions, *res)
		}
	}

	groups := make([]*models.StanceGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, byDoc[id])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].BestRank > groups[j].BestRank
	})
	if len(groups) > groupLimit {
		groups = groups[:groupLimit]
	}
	return groups, nil
}
