package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Query builds one read against a backend table. Filters compose in the
// PostgREST operator syntax (eq, in) and are applied as query parameters.
type Query struct {
	client  *Client
	table   string
	columns string
	filters url.Values
	order   string
	limit   int
}

// From starts a query against the named table.
func (c *Client) From(table string) *Query {
	return &Query{client: c, table: table, columns: "*", filters: url.Values{}}
}

// Select narrows the returned columns. Embedded joins use the backend's
// resource embedding syntax, e.g. "*,profiles!inner(display_name,user_id)".
func (q *Query) Select(columns string) *Query {
	q.columns = columns
	return q
}

// Eq keeps rows whose column equals value.
func (q *Query) Eq(column, value string) *Query {
	q.filters.Add(column, "eq."+value)
	return q
}

// In keeps rows whose column matches any of the values.
func (q *Query) In(column string, values []string) *Query {
	q.filters.Add(column, "in.("+strings.Join(values, ",")+")")
	return q
}

// OrderDesc sorts the result newest-first on the given column.
func (q *Query) OrderDesc(column string) *Query {
	q.order = column + ".desc"
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) url() string {
	params := url.Values{}
	params.Set("select", q.columns)
	for column, ops := range q.filters {
		for _, op := range ops {
			params.Add(column, op)
		}
	}
	if q.order != "" {
		params.Set("order", q.order)
	}
	if q.limit > 0 {
		params.Set("limit", strconv.Itoa(q.limit))
	}
	return q.client.baseURL + "/rest/v1/" + q.table + "?" + params.Encode()
}

// Get runs the query and decodes the JSON array of rows into dest.
func (q *Query) Get(ctx context.Context, token string, dest any) error {
	return q.get(ctx, token, dest, false)
}

// Single runs the query expecting exactly one row and decodes it into dest.
func (q *Query) Single(ctx context.Context, token string, dest any) error {
	return q.get(ctx, token, dest, true)
}

func (q *Query) get(ctx context.Context, token string, dest any, single bool) error {
	req, err := http.NewRequest(http.MethodGet, q.url(), nil)
	if err != nil {
		return fmt.Errorf("build select %s: %w", q.table, err)
	}
	if single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}
	resp, err := q.client.do(ctx, "backend.select "+q.table, req, token)
	if err != nil {
		return fmt.Errorf("select %s: %w", q.table, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("select %s: %w", q.table, decodeError(resp))
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", q.table, err)
	}
	return nil
}

// Insert writes one row into the named table. The backend's row policy
// decides whether the acting token may insert it.
func (c *Client) Insert(ctx context.Context, token, table string, row any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode %s row: %w", table, err)
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/rest/v1/"+table, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build insert %s: %w", table, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	resp, err := c.do(ctx, "backend.insert "+table, req, token)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("insert %s: %w", table, decodeError(resp))
	}
	return nil
}

// Update patches every row of table matching column == value. Patches are
// last-write-wins; there is no version check against concurrent writers.
func (c *Client) Update(ctx context.Context, token, table string, patch any, column, value string) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", table, err)
	}
	params := url.Values{}
	params.Add(column, "eq."+value)
	target := c.baseURL + "/rest/v1/" + table + "?" + params.Encode()
	req, err := http.NewRequest(http.MethodPatch, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build update %s: %w", table, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	resp, err := c.do(ctx, "backend.update "+table, req, token)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("update %s: %w", table, decodeError(resp))
	}
	return nil
}
