package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/finbooks/ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportFilterFromQuery parses the shared from/to/branch query parameters.
func reportFilterFromQuery(c *gin.Context) (domain.ReportFilter, error) {
	filter := domain.ReportFilter{Branch: c.Query("branch")}
	for _, q := range []struct {
		name string
		dst  *string
	}{
		{"from", &filter.From},
		{"to", &filter.To},
	} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		if _, err := time.Parse(dto.DateFormat, raw); err != nil {
			return domain.ReportFilter{}, fmt.Errorf("%s must be YYYY-MM-DD", q.name)
		}
		*q.dst = raw
	}
	return filter, nil
}

// intQuery reads an integer query parameter with a fallback.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// dateQuery parses an optional YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD", name)
	}
	return &t, nil
}
