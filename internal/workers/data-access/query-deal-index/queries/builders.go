// internal/workers/data-access/query-deal-index/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// DealQuery describes one search against the deal index.
type DealQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	DealID     string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery assembles the search request for a query type.
func BuildQuery(dq DealQuery) (*esapi.SearchRequest, error) {
	if dq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch dq.QueryType {
	case "deal_search":
		queryBody = buildDealSearchQuery(dq)
	case "similar_deals":
		queryBody = buildSimilarDealsQuery(dq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, dq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{dq.Index},
		Body:  strings.NewReader(string(body)),
		From:  &dq.Pagination.From,
		Size:  &dq.Pagination.Size,
	}

	return &req, nil
}

// buildDealSearchQuery builds the marketplace deal search from its filters.
func buildDealSearchQuery(dq DealQuery) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := dq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"projectName^3", "sponsorName^2", "projectType"},
				"type":   "best_fields",
			},
		})
	}

	if state, ok := dq.Filters["state"].(string); ok && state != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"state": state},
		})
	}

	if projectType, ok := dq.Filters["projectType"].(string); ok && projectType != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"projectType": projectType},
		})
	}

	if tier, ok := dq.Filters["tier"].(float64); ok && tier > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"tier": int(tier)},
		})
	}

	if readinessTier, ok := dq.Filters["readinessTier"].(string); ok && readinessTier != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"readinessTier": readinessTier},
		})
	}

	if distressed, ok := dq.Filters["severelyDistressed"].(bool); ok && distressed {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"severelyDistressed": true},
		})
	}

	if sizeClause := buildSizeRangeClause(dq.Filters); sizeClause != nil {
		filterClauses = append(filterClauses, sizeClause)
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	if sortBy, ok := dq.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "allocationRequested":
			query["sort"] = []map[string]interface{}{{"allocationRequested": "desc"}}
		case "totalScore":
			query["sort"] = []map[string]interface{}{{"totalScore": "desc"}}
		case "projectName":
			query["sort"] = []map[string]interface{}{{"projectName": "asc"}}
		}
	}

	return query
}

// buildSizeRangeClause constrains the requested allocation. Either bound may
// be given alone.
func buildSizeRangeClause(filters map[string]interface{}) map[string]interface{} {
	sizeRange, ok := filters["sizeRange"].(map[string]interface{})
	if !ok {
		return nil
	}

	bounds := map[string]interface{}{}
	if minVal := numeric(sizeRange["min"]); minVal > 0 {
		bounds["gte"] = minVal
	}
	if maxVal := numeric(sizeRange["max"]); maxVal > 0 {
		bounds["lte"] = maxVal
	}
	if len(bounds) == 0 {
		return nil
	}

	return map[string]interface{}{
		"range": map[string]interface{}{"allocationRequested": bounds},
	}
}

func numeric(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// buildSimilarDealsQuery finds deals resembling a reference deal.
func buildSimilarDealsQuery(dq DealQuery) map[string]interface{} {
	if dq.DealID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"projectName", "projectType", "targetSectors", "state"},
				"like": []map[string]interface{}{
					{"_index": dq.Index, "_id": dq.DealID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
				"min_word_length": 3,
			},
		},
	}
}
