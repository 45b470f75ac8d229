package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCollectionQueryHandler reads a collection and derives its status from the
// member positions. When the stored status is stale it is rewritten; a failed
// rewrite is logged and the read still succeeds.
type GetCollectionQueryHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGetCollectionQueryHandler(db *gorm.DB, logger *slog.Logger) GetCollectionQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetCollectionQueryHandler{db: db, logger: logger}
}

func (h GetCollectionQueryHandler) Handle(ctx context.Context, query GetCollectionQuery) (GetCollectionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCollectionQueryResponse{}, err
	}

	var (
		resp           GetCollectionQueryResponse
		id, customerID uuid.UUID
		storedStatus   string
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, customer_id, status, prepaid_value, total, created_at
		FROM collections
		WHERE id = ?
	`, query.CollectionID().Bytes()).Row().Scan(
		&id, &customerID, &storedStatus, &resp.PrepaidValue, &resp.Total, &resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCollectionQueryResponse{}, errs.NewObjectNotFoundError("collection", query.CollectionID().String())
	}
	if err != nil {
		return GetCollectionQueryResponse{}, err
	}
	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetCollectionQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetCollectionQueryResponse{}, err
	}

	members, positions, err := h.members(ctx, query.CollectionID())
	if err != nil {
		return GetCollectionQueryResponse{}, err
	}
	resp.Members = members

	status, progress := collection.Derive(positions)
	resp.Status = string(status)
	resp.Ready = progress.Ready
	resp.Active = progress.Active

	if string(status) != storedStatus {
		err := h.db.WithContext(ctx).Exec(
			`UPDATE collections SET status = ? WHERE id = ?`, string(status), id,
		).Error
		if err != nil {
			h.logger.WarnContext(ctx, "collection status cache write failed",
				"collection_id", resp.ID.String(),
				"status", resp.Status,
				"error", err,
			)
		}
	}

	return resp, nil
}

func (h GetCollectionQueryHandler) members(
	ctx context.Context,
	collectionID kernel.UUID,
) ([]CollectionMemberView, []order.Position, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, detail_title, position, archived, pricing_total
		FROM orders
		WHERE collection_id = ?
		ORDER BY created_at, id
	`, collectionID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	members := make([]CollectionMemberView, 0)
	positions := make([]order.Position, 0)
	for rows.Next() {
		var (
			member CollectionMemberView
			id     uuid.UUID
			code   int
		)
		if err := rows.Scan(&id, &member.Title, &code, &member.Archived, &member.Total); err != nil {
			return nil, nil, err
		}
		if member.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, nil, err
		}
		position, err := order.PositionFromCode(code)
		if err != nil {
			return nil, nil, err
		}
		member.Position = position.String()
		members = append(members, member)
		positions = append(positions, position)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return members, positions, nil
}
