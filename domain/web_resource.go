package domain

import (
	"github.com/niftyhouse/indexer/base/ctx"
)

type WebResourceReaderRepository interface {
	Get(ctx.Ctx, string) ([]byte, error)
}

// WebResourceUseCase resolves content-addressed or plain urls and fetches
// their payload with a bounded timeout.
type WebResourceUseCase interface {
	Get(ctx.Ctx, string) ([]byte, error)
	GetJson(ctx.Ctx, string) ([]byte, error)
}
