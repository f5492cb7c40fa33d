package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/logging"
)

// maxErrorBody caps how much of an error answer ends up in APIError.Message.
const maxErrorBody = 512

// DecodeResponse decodes a JSON response into target. Any status other than
// 200 becomes an *errors.APIError carrying the (truncated) body.
func DecodeResponse(ctx context.Context, resp *http.Response, provider string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapAPI(provider, resp.StatusCode, err)
	}

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.Path
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &errors.APIError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    msg,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.NewParseError("json", endpoint, err.Error(), err)
	}

	return nil
}
