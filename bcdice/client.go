package bcdice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// Upstream reasons carried by a 400 response of the roll endpoint.
const (
	reasonUnsupportedSystem  = "unsupported game system"
	reasonUnsupportedCommand = "unsupported command"
)

// Client represents a BCDice-API client
type Client struct {
	transport Transport
	baseURL   string
	logger    zerolog.Logger
}

// NewClient creates a new BCDice-API client backed by a WebClient
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	web, err := NewWebClient(baseURL, logger, opts...)
	if err != nil {
		return nil, err
	}
	return NewClientWithTransport(web, logger), nil
}

// NewClientWithTransport creates a client over an arbitrary Transport
func NewClientWithTransport(transport Transport, logger zerolog.Logger) *Client {
	c := &Client{
		transport: transport,
		logger:    logger,
	}
	if b, ok := transport.(interface{ BaseURL() string }); ok {
		c.baseURL = b.BaseURL()
	}
	return c
}

// BaseURL returns the server URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetAPIVersion retrieves the versions of BCDice-API and BCDice
func (c *Client) GetAPIVersion(ctx context.Context) (*APIVersion, error) {
	payload, err := c.transport.Get(ctx, "v2/version", nil)
	if err != nil {
		return nil, transportError(err)
	}

	payload = reshapeValue(payload)
	if !IsAPIVersion(payload) {
		return nil, incorrectResponse(payload)
	}

	return toAPIVersion(payload.(map[string]any)), nil
}

// GetAPIAdmin retrieves the administrator of the BCDice-API server
func (c *Client) GetAPIAdmin(ctx context.Context) (*APIAdmin, error) {
	payload, err := c.transport.Get(ctx, "v2/admin", nil)
	if err != nil {
		return nil, transportError(err)
	}

	payload = reshapeValue(payload)
	if !IsAPIAdmin(payload) {
		return nil, incorrectResponse(payload)
	}

	return toAPIAdmin(payload.(map[string]any)), nil
}

// GetAvailableGameSystems retrieves all game systems in server order
func (c *Client) GetAvailableGameSystems(ctx context.Context) ([]AvailableGameSystem, error) {
	payload, err := c.transport.Get(ctx, "v2/game_system", nil)
	if err != nil {
		return nil, transportError(err)
	}

	obj, ok := asObject(payload)
	if !ok {
		return nil, incorrectResponse(payload)
	}
	rawList, ok := obj["game_system"]
	if !ok {
		return nil, newError(CodeIncorrectResponse, msgIncorrectResponse,
			fmt.Errorf("the syntax of the response is incorrect, property game_system is undefined:\n%s", describe(payload)))
	}
	entries, ok := rawList.([]any)
	if !ok {
		return nil, newError(CodeIncorrectResponse, msgIncorrectResponse,
			fmt.Errorf("the syntax of the response is incorrect, property game_system is not an array:\n%s", describe(payload)))
	}

	systems := make([]AvailableGameSystem, 0, len(entries))
	for _, entry := range entries {
		reshaped := reshapeValue(entry)
		if !IsAvailableGameSystem(reshaped) {
			return nil, newError(CodeIncorrectResponse, msgIncorrectSystem,
				fmt.Errorf("the syntax of the game system is incorrect:\n%s", describe(entry)))
		}
		systems = append(systems, toAvailableGameSystem(reshaped.(map[string]any)))
	}

	c.logger.Debug().Msgf("Retrieved %d game systems from BCDice-API", len(systems))
	return systems, nil
}

// GetGameSystem retrieves the game system with the given ID
func (c *Client) GetGameSystem(ctx context.Context, id string) (*GameSystem, error) {
	payload, err := c.transport.Get(ctx, "v2/game_system/"+url.PathEscape(id), nil)
	if err != nil {
		// 400 Bad Request means the game system ID is unknown
		if _, ok := asHTTPError(err, 400); ok {
			return nil, newError(CodeUnsupportedSystem, msgUnsupportedSystem, err)
		}
		return nil, transportError(err)
	}

	obj, ok := asObject(payload)
	if !ok {
		return nil, incorrectResponse(payload)
	}

	reshaped, err := compileCommandPattern(reshape(obj))
	if err != nil {
		return nil, newError(CodeIncorrectResponse, msgIncorrectResponse,
			fmt.Errorf("%w:\n%s", err, describe(payload)))
	}

	if !IsGameSystem(reshaped) {
		return nil, incorrectResponse(payload)
	}

	return toGameSystem(reshaped), nil
}

// DiceRoll runs command with the game system id
func (c *Client) DiceRoll(ctx context.Context, id, command string) (*DiceRollResults, error) {
	payload, err := c.transport.Get(ctx, "v2/game_system/"+url.PathEscape(id)+"/roll", &RequestOptions{
		Query: url.Values{"command": {command}},
	})
	if err != nil {
		// 400 Bad Request means either the command or the game system is wrong
		if httpErr, ok := asHTTPError(err, 400); ok {
			switch rejectionReason(httpErr.Body) {
			case reasonUnsupportedSystem:
				return nil, newError(CodeUnsupportedSystem, msgUnsupportedSystem, err)
			case reasonUnsupportedCommand:
				return nil, newError(CodeUnsupportedCommand, msgUnsupportedCmd, err)
			}
		}
		return nil, transportError(err)
	}

	payload = reshapeValue(payload)
	if !IsDiceRollResults(payload) {
		return nil, incorrectResponse(payload)
	}

	results := toDiceRollResults(payload.(map[string]any))
	c.logger.Debug().
		Str("system", id).
		Str("command", command).
		Int("rands", len(results.Rands)).
		Msg("Rolled dice")
	return results, nil
}

// RunOriginalTable rolls table on the server
func (c *Client) RunOriginalTable(ctx context.Context, table OriginalTable) (*OriginalTableResults, error) {
	payload, err := c.transport.Post(ctx, "v2/original_table", &RequestOptions{
		Header: map[string][]string{"Content-Type": {"application/x-www-form-urlencoded"}},
		Body:   "table=" + table.Encode(),
	})
	if err != nil {
		// 500 Internal Server Error means the table could not be parsed
		if _, ok := asHTTPError(err, 500); ok {
			return nil, newError(CodeUnsupportedTable, msgUnsupportedTable, err)
		}
		return nil, transportError(err)
	}

	payload = reshapeValue(payload)
	if !IsOriginalTableResults(payload) {
		return nil, incorrectResponse(payload)
	}

	return toOriginalTableResults(payload.(map[string]any)), nil
}

// rejectionReason reads the reason field of an error body, or "" when absent.
func rejectionReason(body []byte) string {
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Reason
}

func incorrectResponse(v any) *Error {
	return newError(CodeIncorrectResponse, msgIncorrectResponse,
		fmt.Errorf("the syntax of the response is incorrect:\n%s", describe(v)))
}

// describe renders a decoded value for error causes.
func describe(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
