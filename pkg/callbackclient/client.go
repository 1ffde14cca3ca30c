package callbackclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Behyna/collect-gateway/pkg/httpclient"
)

type Notifier interface {
	Notify(ctx context.Context, url string, payload []byte) (Response, error)
}

type Response struct {
	StatusCode int
}

type notifier struct {
	client httpclient.HTTPClient
}

func NewNotifier(client httpclient.HTTPClient) Notifier {
	return &notifier{client: client}
}

// Notify posts payload to url as JSON. Any status outside 2xx is an error,
// the returned Response still carries the status code when one was received.
func (n *notifier) Notify(ctx context.Context, url string, payload []byte) (Response, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := n.client.Post(ctx, url, bytes.NewReader(payload), headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Response{}, ErrTimeout
		}

		return Response{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Response{StatusCode: resp.StatusCode}, nil
	}

	return Response{StatusCode: resp.StatusCode}, MapStatusToError(resp.StatusCode)
}
