package blob

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/smartxerox/internal/config"
	"github.com/polkiloo/smartxerox/internal/domain/repository"
)

// Module wires the Supabase backed blob store.
var Module = fx.Provide(newBlobStore)

type blobParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newBlobStore(p blobParams) repository.BlobStore {
	return NewSupabaseStore(p.Config.SupabaseURL, p.Config.SupabaseServiceKey, p.Config.StorageBucket, p.Logger)
}
