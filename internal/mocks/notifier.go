package mocks

import (
	"context"

	"github.com/Behyna/collect-gateway/pkg/callbackclient"
	"github.com/stretchr/testify/mock"
)

type Notifier struct {
	mock.Mock
}

func (n *Notifier) Notify(ctx context.Context, url string, payload []byte) (callbackclient.Response, error) {
	args := n.Called(ctx, url, payload)
	return args.Get(0).(callbackclient.Response), args.Error(1)
}
