// Package events owns the broker message boundary: inbound request parsing
// and the outbound success / fail event DTOs.
package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/jderrors"
)

// rawRequest mirrors the upstream JdPreprocessRequest message shape.
type rawRequest struct {
	EventID      string          `json:"eventId"`
	RequestID    string          `json:"requestId"`
	OccurredAt   int64           `json:"occurredAt"`
	Version      string          `json:"version"`
	BrandName    string          `json:"brandName"`
	PositionName string          `json:"positionName"`
	Source       string          `json:"source"`
	Text         string          `json:"text"`
	Images       json.RawMessage `json:"images"`
	URL          string          `json:"url"`
	SourceURL    string          `json:"sourceUrl"`
}

// ParseRequest turns a broker message value into a domain Request. Failures
// are tagged with the MSG_PARSE codes and the PARSE stage.
func ParseRequest(value []byte) (domain.Request, error) {
	var raw rawRequest
	if err := json.Unmarshal(value, &raw); err != nil {
		return domain.Request{}, jderrors.Wrap(jderrors.CodeMsgParseJSON, "PARSE", "message is not valid JSON", err)
	}

	var missing []string
	if raw.RequestID == "" {
		missing = append(missing, "requestId")
	}
	if raw.BrandName == "" {
		missing = append(missing, "brandName")
	}
	if raw.PositionName == "" {
		missing = append(missing, "positionName")
	}
	if raw.Source == "" {
		missing = append(missing, "source")
	}
	if len(missing) > 0 {
		return domain.Request{}, jderrors.New(jderrors.CodeMsgParseMissing, "PARSE",
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	source, err := domain.ParseSource(raw.Source)
	if err != nil {
		return domain.Request{}, jderrors.Wrap(jderrors.CodeMsgParseMissing, "PARSE", err.Error(), err)
	}

	req := domain.Request{
		RequestID:    raw.RequestID,
		BrandName:    raw.BrandName,
		PositionName: raw.PositionName,
		Source:       source,
		EventID:      raw.EventID,
		OccurredAt:   raw.OccurredAt,
		Version:      raw.Version,
	}

	switch source {
	case domain.SourceText:
		if raw.Text == "" {
			return domain.Request{}, jderrors.New(jderrors.CodeMsgParseMissing, "PARSE",
				"'text' is required when source=TEXT")
		}
		req.Text = raw.Text

	case domain.SourceImage:
		images, err := parseImages(raw.Images)
		if err != nil {
			return domain.Request{}, jderrors.Wrap(jderrors.CodeMsgParseMissing, "PARSE", err.Error(), err)
		}
		if len(images) == 0 {
			return domain.Request{}, jderrors.New(jderrors.CodeMsgParseMissing, "PARSE",
				"'images' is required when source=IMAGE")
		}
		req.Images = images

	case domain.SourceURL:
		url := raw.URL
		if url == "" {
			url = raw.SourceURL
		}
		if url == "" {
			return domain.Request{}, jderrors.New(jderrors.CodeMsgParseMissing, "PARSE",
				"'url' or 'sourceUrl' is required when source=URL")
		}
		req.URL = url
	}

	return req, nil
}

// parseImages accepts both a JSON array and a single string value.
func parseImages(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil, nil
		}
		return []string{single}, nil
	}

	return nil, fmt.Errorf("'images' must be a string or a list of strings")
}
