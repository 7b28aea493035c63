package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bazaar/infras/otel"
	"bazaar/infras/postgres"
	"bazaar/internal/domains/listing/model"
	"bazaar/shared/constant"
	gDto "bazaar/shared/dto"
	"bazaar/shared/logger"
	gRepo "bazaar/shared/repository"
)

type Listing interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Listing, error)
}

type Business interface {
	IsMember(ctx context.Context, businessID, userID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Listing]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Listing {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Listing](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type businessRepositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewBusiness(db *postgres.Connection, otel otel.Otel) Business {
	return &businessRepositoryImpl{
		db:   db,
		otel: otel,
	}
}

var isMemberQuery = fmt.Sprintf(`SELECT EXISTS(
	SELECT 1 FROM %s WHERE id = :business_id AND owner_id = :user_id
	UNION ALL
	SELECT 1 FROM %s WHERE business_id = :business_id AND user_id = :user_id
)`, model.BusinessTableName, model.BusinessStaffTableName)

// IsMember reports whether the user owns the business or is on its staff.
func (r *businessRepositoryImpl) IsMember(ctx context.Context, businessID, userID string) (member bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".business.IsMember")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, isMemberQuery)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, isMemberQuery)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to prepare statement (business): %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &member, map[string]any{"business_id": businessID, "user_id": userID})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check business membership: %w", err)
	}

	return member, nil
}
