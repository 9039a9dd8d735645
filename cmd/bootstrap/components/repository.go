package components

import (
	"rentshare/internal/infra/repository"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		repository.NewUserRepository,
		repository.NewItemRepository,
		repository.NewItemLookup,
		repository.NewBookingRepository,
		repository.NewCommentRepository,
		repository.NewBookingReadStore,
		repository.NewItemReadStore,
		repository.NewCommentReadStore,
	),
)
