package server

import (
	"github.com/fekuna/omnipos-pos-service/internal/activity"
	actRepo "github.com/fekuna/omnipos-pos-service/internal/activity/repository"
	"github.com/fekuna/omnipos-pos-service/internal/category"
	catRepo "github.com/fekuna/omnipos-pos-service/internal/category/repository"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	invRepo "github.com/fekuna/omnipos-pos-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	prodRepo "github.com/fekuna/omnipos-pos-service/internal/product/repository"
	"github.com/fekuna/omnipos-pos-service/internal/sale"
	saleRepo "github.com/fekuna/omnipos-pos-service/internal/sale/repository"
	"github.com/fekuna/omnipos-pos-service/internal/sale/sequence"
	"github.com/fekuna/omnipos-pos-service/internal/user"
	userRepo "github.com/fekuna/omnipos-pos-service/internal/user/repository"
	"github.com/fekuna/omnipos-pos-service/pkg/database"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
)

var (
	_ product.Repository   = (*prodRepo.PGRepository)(nil)
	_ category.Repository  = (*catRepo.PGRepository)(nil)
	_ inventory.Repository = (*invRepo.PGRepository)(nil)
	_ sale.Repository      = (*saleRepo.PGRepository)(nil)
	_ activity.Repository  = (*actRepo.PGRepository)(nil)
	_ user.Repository      = (*userRepo.PGRepository)(nil)
	_ database.Transactor  = (*postgres.TxManager)(nil)

	_ sequence.Generator = (*sequence.RedisGenerator)(nil)
	_ sequence.Generator = (*sequence.PostgresGenerator)(nil)
	_ sequence.Generator = (*sequence.MemoryGenerator)(nil)
)
