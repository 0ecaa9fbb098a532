// Package backend is the JSON-over-HTTP client for the Injaz CRUD API.
// It implements aggregate.Source, tolerating endpoints that return
// either a single object or a list (the first element is the canonical
// record).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/injaz-app/injaz/pkg/core"
)

// Client talks to a running Injaz API server.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the server at base, e.g.
/// "http://localhost:8640".
func New(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// GetProject reads the project record. A 404 is reported as absence.
func (c *Client) GetProject(ctx context.Context, id string) (*core.Project, error) {
	var p core.Project
	found, err := c.getJSON(ctx, fmt.Sprintf("/api/v1/projects/%s", id), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// ListSitePlans reads the site-plan records of a project.
func (c *Client) ListSitePlans(ctx context.Context, projectID string) ([]*core.SitePlanRecord, error) {
	return listRecords[core.SitePlanRecord](ctx, c, projectID, "siteplans")
}

// ListLicenses reads the license records of a project.
func (c *Client) ListLicenses(ctx context.Context, projectID string) ([]*core.LicenseRecord, error) {
	return listRecords[core.LicenseRecord](ctx, c, projectID, "licenses")
}

// ListContracts reads the contract records of a project.
func (c *Client) ListContracts(ctx context.Context, projectID string) ([]*core.ContractRecord, error) {
	return listRecords[core.ContractRecord](ctx, c, projectID, "contracts")
}

// ListAwardings reads the awarding records of a project.
func (c *Client) ListAwardings(ctx context.Context, projectID string) ([]*core.AwardingRecord, error) {
	return listRecords[core.AwardingRecord](ctx, c, projectID, "awardings")
}

// PatchClassification writes the project's classification fields.
func (c *Client) PatchClassification(ctx context.Context, projectID string, class core.Classification) error {
	return c.send(ctx, http.MethodPatch,
		fmt.Sprintf("/api/v1/projects/%s/classification", projectID), class, nil)
}

// SaveContract creates the contract record or patches the existing one;
// the server-assigned id comes back on rec.
func (c *Client) SaveContract(ctx context.Context, rec *core.ContractRecord) error {
	return c.send(ctx, http.MethodPost,
		fmt.Sprintf("/api/v1/projects/%s/contracts", rec.ProjectID), rec, rec)
}

// listRecords decodes a dependent-record endpoint that may answer with
// either a JSON array or a single object.
func listRecords[T any](ctx context.Context, c *Client, projectID, kind string) ([]*T, error) {
	raw, status, err := c.get(ctx, fmt.Sprintf("/api/v1/projects/%s/%s", projectID, kind))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list %s: unexpected status %d", kind, status)
	}

	var list []*T
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var single T
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("list %s: cannot decode response: %w", kind, err)
	}
	return []*T{&single}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return raw, resp.StatusCode, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	raw, status, err := c.get(ctx, path)
	if err != nil {
		return false, err
	}
	if status == http.StatusNotFound {
		return false, nil
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("get %s: unexpected status %d", path, status)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("get %s: cannot decode response: %w", path, err)
	}
	return true, nil
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s failed: %s: %s", method, path, resp.Status, bytes.TrimSpace(raw))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: cannot decode response: %w", method, path, err)
		}
	}
	return nil
}
