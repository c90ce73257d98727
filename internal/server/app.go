package server

import (
	"github.com/fekuna/omnipos-pos-service/internal/activity"
	actRepo "github.com/fekuna/omnipos-pos-service/internal/activity/repository"
	actUC "github.com/fekuna/omnipos-pos-service/internal/activity/usecase"
	"github.com/fekuna/omnipos-pos-service/internal/category"
	catRepo "github.com/fekuna/omnipos-pos-service/internal/category/repository"
	catUC "github.com/fekuna/omnipos-pos-service/internal/category/usecase"
	"github.com/fekuna/omnipos-pos-service/internal/event"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	invRepo "github.com/fekuna/omnipos-pos-service/internal/inventory/repository"
	invUC "github.com/fekuna/omnipos-pos-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	prodRepo "github.com/fekuna/omnipos-pos-service/internal/product/repository"
	prodUC "github.com/fekuna/omnipos-pos-service/internal/product/usecase"
	"github.com/fekuna/omnipos-pos-service/internal/sale"
	saleRepo "github.com/fekuna/omnipos-pos-service/internal/sale/repository"
	"github.com/fekuna/omnipos-pos-service/internal/sale/sequence"
	saleUC "github.com/fekuna/omnipos-pos-service/internal/sale/usecase"
	"github.com/fekuna/omnipos-pos-service/internal/store/memory"
	"github.com/fekuna/omnipos-pos-service/internal/user"
	userRepo "github.com/fekuna/omnipos-pos-service/internal/user/repository"
	userUC "github.com/fekuna/omnipos-pos-service/internal/user/usecase"
	"github.com/fekuna/omnipos-pos-service/pkg/cache"
	"github.com/fekuna/omnipos-pos-service/pkg/database"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-pos-service/pkg/idempotency"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/fekuna/omnipos-pos-service/pkg/search"
	"github.com/jmoiron/sqlx"
)

// Repositories is one storage backend. Tx must be the transactor the
// repositories participate in.
type Repositories struct {
	Products   product.Repository
	Categories category.Repository
	Ledger     inventory.Repository
	Sales      sale.Repository
	Activity   activity.Repository
	Users      user.Repository
	Tx         database.Transactor
}

func PostgresRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Products:   prodRepo.NewPGRepository(db),
		Categories: catRepo.NewPGRepository(db),
		Ledger:     invRepo.NewPGRepository(db),
		Sales:      saleRepo.NewPGRepository(db),
		Activity:   actRepo.NewPGRepository(db),
		Users:      userRepo.NewPGRepository(db),
		Tx:         postgres.NewTxManager(db),
	}
}

func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Products:   s.Products(),
		Categories: s.Categories(),
		Ledger:     s.Ledger(),
		Sales:      s.Sales(),
		Activity:   s.Activity(),
		Users:      s.Users(),
		Tx:         s,
	}
}

// Infra holds the optional collaborators. Nil fields fall back to
// in-process implementations.
type Infra struct {
	Redis       *cache.RedisClient
	Search      *search.Client
	Publisher   event.Publisher
	Sequence    sequence.Generator
	Idempotency idempotency.Store
}

type UseCases struct {
	Products   product.UseCase
	Categories category.UseCase
	Inventory  inventory.UseCase
	Sales      sale.UseCase
	Activity   activity.UseCase
	Users      user.UseCase
}

func NewUseCases(repos Repositories, infra Infra, log logger.ZapLogger) UseCases {
	if infra.Publisher == nil {
		infra.Publisher = event.NopPublisher{}
	}
	if infra.Sequence == nil {
		infra.Sequence = sequence.NewMemoryGenerator()
	}

	products := prodUC.NewProductUseCase(repos.Products, repos.Ledger, repos.Tx, infra.Redis, infra.Search, log)

	return UseCases{
		Products:   products,
		Categories: catUC.NewCategoryUseCase(repos.Categories, log),
		Inventory:  invUC.NewInventoryUseCase(repos.Ledger, repos.Products, repos.Tx, products, infra.Publisher, log),
		Sales: saleUC.NewSaleUseCase(saleUC.Deps{
			Sales:     repos.Sales,
			Products:  repos.Products,
			Ledger:    repos.Ledger,
			Users:     repos.Users,
			Tx:        repos.Tx,
			Sequence:  infra.Sequence,
			Notifier:  products,
			Publisher: infra.Publisher,
			Logger:    log,
		}),
		Activity: actUC.NewActivityUseCase(repos.Activity, log),
		Users:    userUC.NewUserUseCase(repos.Users, log),
	}
}
