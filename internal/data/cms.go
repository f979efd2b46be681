package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// CMSClient fetches drug spending records from the data.cms.gov data API.
type CMSClient struct {
	BaseURL string
	Client  *http.Client
	Log     logrus.FieldLogger
}

// NewCMSClient creates a new data API client.
// If baseURL is empty, defaults to "https://data.cms.gov".
func NewCMSClient(baseURL string, log logrus.FieldLogger) *CMSClient {
	if baseURL == "" {
		baseURL = "https://data.cms.gov"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CMSClient{
		BaseURL: baseURL,
		Log:     log,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchParams defines parameters for pulling a dataset.
type FetchParams struct {
	DatasetID string // data.cms.gov dataset UUID, e.g. the Part D spending-by-drug set
	PageSize  int    // rows per request (default 1000)
	MaxRows   int    // stop after this many rows; 0 = fetch everything
}

// CMSError represents an error response from the data API.
type CMSError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *CMSError) Error() string {
	return e.Message
}

// FetchDataset pulls every page of a dataset:
//
//	GET /data-api/v1/dataset/{id}/data?size=N&offset=M
//
// The API returns a bare JSON array per page; an empty array marks the end.
func (c *CMSClient) FetchDataset(params FetchParams) ([]map[string]any, error) {
	if params.DatasetID == "" {
		return nil, fmt.Errorf("dataset id is required")
	}
	size := params.PageSize
	if size <= 0 {
		size = 1000
	}

	var records []map[string]any
	for offset := 0; ; offset += size {
		page, err := c.fetchPage(params.DatasetID, size, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if params.MaxRows > 0 && len(records) >= params.MaxRows {
			records = records[:params.MaxRows]
			break
		}
		if len(page) < size {
			break
		}
	}

	c.Log.WithFields(logrus.Fields{
		"dataset": params.DatasetID,
		"records": len(records),
	}).Info("fetched dataset from CMS data API")
	return records, nil
}

func (c *CMSClient) fetchPage(datasetID string, size, offset int) ([]map[string]any, error) {
	u, err := url.Parse(fmt.Sprintf("%s/data-api/v1/dataset/%s/data", c.BaseURL, datasetID))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("size", fmt.Sprintf("%d", size))
	q.Set("offset", fmt.Sprintf("%d", offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.Log.WithError(err).WithField("dataset", datasetID).Error("CMS request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Log.WithFields(logrus.Fields{
		"dataset":  datasetID,
		"offset":   offset,
		"status":   resp.StatusCode,
		"duration": duration,
	}).Debug("CMS page response")

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusUnauthorized:
		return nil, &CMSError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "unauthorized request to CMS data API",
		}
	case http.StatusForbidden:
		return nil, &CMSError{
			StatusCode: resp.StatusCode,
			Code:       "FORBIDDEN",
			Message:    "CMS data API rejected the request",
		}
	case http.StatusNotFound:
		return nil, &CMSError{
			StatusCode: resp.StatusCode,
			Code:       "DATASET_NOT_FOUND",
			Message:    fmt.Sprintf("dataset %s not found", datasetID),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &CMSError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &CMSError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var page []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return page, nil
}
