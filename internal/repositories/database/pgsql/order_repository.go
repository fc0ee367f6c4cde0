package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/laquila/backend/internal/apperrors"
	"github.com/laquila/backend/internal/core/domain"
	portsrepo "github.com/laquila/backend/internal/core/ports/repositories"
	"github.com/laquila/backend/internal/models"
	"github.com/laquila/backend/internal/utils/invoice"
	"github.com/laquila/backend/internal/utils/mapping"
	"github.com/laquila/backend/internal/utils/pagination"
)

// invoiceSeqConstraint is the unique constraint on (invoice_period,
// invoice_seq) that backs the numbering guarantee.
const invoiceSeqConstraint = "orders_invoice_period_seq_key"

const orderColumns = `order_id, invoice_number, invoice_period, invoice_seq, marketplace, customer_name,
	       city, address, phone, order_status, payment_status, amount_settled, created_at`

const orderItemColumns = `item_id, order_id, product_id, product_name, unit_price, quantity, variant`

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for order and settlement data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

// CreateOrder inserts the order header and its items in one transaction,
// assigning the next invoice sequence for the order's period. Two writers can
// race to the same MAX(invoice_seq); the unique constraint catches the loser,
// which retries once with a fresh transaction and a fresh sequence.
func (r *PgxOrderRepository) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	return createWithRetry(func() (*domain.Order, error) {
		return r.createOrderOnce(ctx, order)
	}, order.OrderID)
}

// createWithRetry runs create and repeats it exactly once when it loses the
// invoice sequence race. A violation surviving the retry means sustained
// contention on the period and surfaces as a conflict; any other error is
// returned as-is without a retry.
func createWithRetry(create func() (*domain.Order, error), orderID string) (*domain.Order, error) {
	created, err := create()
	if err != nil && isUniqueViolation(err, invoiceSeqConstraint) {
		created, err = create()
	}
	if err != nil {
		if isUniqueViolation(err, invoiceSeqConstraint) {
			return nil, apperrors.NewAppError(409, "invoice sequence contention for order "+orderID, apperrors.ErrConflict)
		}
		return nil, err
	}
	return created, nil
}

func (r *PgxOrderRepository) createOrderOnce(ctx context.Context, order domain.Order) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	period := invoice.PeriodCode(order.CreatedAt)
	var seq int64
	seqQuery := `
		SELECT COALESCE(MAX(invoice_seq) + 1, $2)
		FROM orders
		WHERE invoice_period = $1;
	`
	if err := tx.QueryRow(ctx, seqQuery, period, invoice.SequenceFloor).Scan(&seq); err != nil {
		return nil, apperrors.NewStorageError("failed to compute invoice sequence for period "+period, err)
	}

	modelOrder := mapping.ToModelOrder(order)
	modelOrder.InvoicePeriod = period
	modelOrder.InvoiceSeq = seq
	modelOrder.InvoiceNumber = invoice.Format(period, seq)

	insertQuery := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelOrder.OrderID,
		modelOrder.InvoiceNumber,
		modelOrder.InvoicePeriod,
		modelOrder.InvoiceSeq,
		modelOrder.Marketplace,
		modelOrder.CustomerName,
		modelOrder.City,
		modelOrder.Address,
		modelOrder.Phone,
		modelOrder.OrderStatus,
		modelOrder.PaymentStatus,
		modelOrder.AmountSettled,
		modelOrder.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, invoiceSeqConstraint) {
			return nil, err
		}
		return nil, apperrors.NewStorageError("failed to insert order "+modelOrder.OrderID, err)
	}

	if err := insertOrderItems(ctx, tx, order.Items); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	order.InvoiceNumber = modelOrder.InvoiceNumber
	return &order, nil
}

func insertOrderItems(ctx context.Context, tx pgx.Tx, items []domain.OrderItem) error {
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO order_items (` + orderItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range items {
		modelItem := mapping.ToModelOrderItem(item)
		batch.Queue(itemQuery,
			modelItem.ItemID,
			modelItem.OrderID,
			modelItem.ProductID,
			modelItem.ProductName,
			modelItem.UnitPrice,
			modelItem.Quantity,
			modelItem.Variant,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewStorageError("failed to insert order items", err)
	}
	return nil
}

// UpdateOrder rewrites the order header and, when replaceItems is set, swaps
// the entire item set within the same transaction. Invoice columns and the
// settled amount are left untouched; a replacement that would shrink the
// total below the settled amount is rejected under a row lock, and the
// payment status is rederived from the new total so it cannot go stale.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order, replaceItems bool) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var settled decimal.Decimal
	if replaceItems {
		locked, err := findOrderForUpdate(ctx, tx, order.OrderID)
		if err != nil {
			return nil, err
		}
		settled = locked.AmountSettled
		if order.Total().LessThan(settled) {
			return nil, apperrors.NewAppError(409, "new item total for order "+order.OrderID+" is below the settled amount", apperrors.ErrConflict)
		}
	}

	updateQuery := `
		UPDATE orders
		SET marketplace = $2, customer_name = $3, city = $4, address = $5, phone = $6
		WHERE order_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		order.OrderID,
		order.Marketplace,
		order.CustomerName,
		order.City,
		order.Address,
		order.Phone,
	)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to update order "+order.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("order " + order.OrderID + " not found")
	}

	if replaceItems {
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1;`, order.OrderID); err != nil {
			return nil, apperrors.NewStorageError("failed to clear items for order "+order.OrderID, err)
		}
		if err := insertOrderItems(ctx, tx, order.Items); err != nil {
			return nil, err
		}
		newStatus := domain.ResolvePaymentStatus(order.Total(), settled)
		if _, err := tx.Exec(ctx, `UPDATE orders SET payment_status = $2 WHERE order_id = $1;`, order.OrderID, models.PaymentStatus(newStatus)); err != nil {
			return nil, apperrors.NewStorageError("failed to refresh payment status for order "+order.OrderID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindOrderByID(ctx, order.OrderID)
}

// CancelOrder flips the order to Cancelled under a row lock. Orders with any
// settled amount, and orders already cancelled, are rejected with a conflict.
func (r *PgxOrderRepository) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	modelOrder, err := findOrderForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if modelOrder.OrderStatus == models.OrderCancelled {
		return nil, apperrors.NewAppError(409, "order "+orderID+" is already cancelled", apperrors.ErrConflict)
	}
	if modelOrder.AmountSettled.IsPositive() {
		return nil, apperrors.NewAppError(409, "order "+orderID+" has settled payments", apperrors.ErrConflict)
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET order_status = $2 WHERE order_id = $1;`, orderID, models.OrderCancelled); err != nil {
		return nil, apperrors.NewStorageError("failed to cancel order "+orderID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindOrderByID(ctx, orderID)
}

// SettleOrder is the settlement transaction: it re-checks the remaining
// balance under a row lock, bumps the settled amount, rederives the payment
// status and appends the matching income ledger row, all atomically.
func (r *PgxOrderRepository) SettleOrder(ctx context.Context, orderID string, amount decimal.Decimal, walletID string, categoryName string, occurredAt time.Time) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	modelOrder, err := findOrderForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if modelOrder.OrderStatus == models.OrderCancelled {
		return nil, apperrors.NewAppError(409, "cannot settle cancelled order "+orderID, apperrors.ErrConflict)
	}

	items, err := findOrderItems(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	domainOrder := mapping.ToDomainOrder(*modelOrder)
	domainOrder.Items = mapping.ToDomainOrderItemSlice(items)

	total := domainOrder.Total()
	remaining := total.Sub(domainOrder.AmountSettled)
	if !remaining.IsPositive() {
		return nil, apperrors.NewAppError(409, "order "+orderID+" is already fully settled", apperrors.ErrConflict)
	}
	if amount.GreaterThan(remaining) {
		return nil, apperrors.NewAppError(409, "settlement exceeds remaining balance of order "+orderID, apperrors.ErrConflict)
	}

	newSettled := domainOrder.AmountSettled.Add(amount)
	newStatus := domain.ResolvePaymentStatus(total, newSettled)

	updateQuery := `
		UPDATE orders
		SET amount_settled = $2, payment_status = $3
		WHERE order_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, orderID, newSettled, models.PaymentStatus(newStatus)); err != nil {
		return nil, apperrors.NewStorageError("failed to update settled amount for order "+orderID, err)
	}

	description := "Settlement for invoice " + domainOrder.InvoiceNumber
	entryQuery := `
		INSERT INTO cashflow_entries (entry_id, entry_type, amount, category_name, wallet_id, to_wallet_id, order_id, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5, NULL, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, entryQuery,
		uuid.NewString(),
		models.CashFlowIncome,
		amount,
		categoryName,
		walletID,
		orderID,
		description,
		occurredAt,
	)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to append settlement ledger entry for order "+orderID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	domainOrder.AmountSettled = newSettled
	domainOrder.PaymentStatus = newStatus
	return &domainOrder, nil
}

// findOrderForUpdate loads and row-locks an order header inside tx.
func findOrderForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_id = $1
		FOR UPDATE;
	`
	var m models.Order
	err := tx.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID,
		&m.InvoiceNumber,
		&m.InvoicePeriod,
		&m.InvoiceSeq,
		&m.Marketplace,
		&m.CustomerName,
		&m.City,
		&m.Address,
		&m.Phone,
		&m.OrderStatus,
		&m.PaymentStatus,
		&m.AmountSettled,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to lock order "+orderID, err)
	}
	return &m, nil
}

type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func findOrderItems(ctx context.Context, q rowQuerier, orderID string) ([]models.OrderItem, error) {
	query := `
		SELECT ` + orderItemColumns + `
		FROM order_items
		WHERE order_id = $1
		ORDER BY item_id;
	`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query items for order "+orderID, err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ItemID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.UnitPrice,
			&item.Quantity,
			&item.Variant,
		)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan item row for order "+orderID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating item rows for order "+orderID, err)
	}
	return items, nil
}

// FindOrderByID retrieves an order with its full item set.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_id = $1;
	`
	var m models.Order
	err := r.Pool.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID,
		&m.InvoiceNumber,
		&m.InvoicePeriod,
		&m.InvoiceSeq,
		&m.Marketplace,
		&m.CustomerName,
		&m.City,
		&m.Address,
		&m.Phone,
		&m.OrderStatus,
		&m.PaymentStatus,
		&m.AmountSettled,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find order by ID "+orderID, err)
	}

	items, err := findOrderItems(ctx, r.Pool, orderID)
	if err != nil {
		return nil, err
	}

	domainOrder := mapping.ToDomainOrder(m)
	domainOrder.Items = mapping.ToDomainOrderItemSlice(items)
	return &domainOrder, nil
}

// ListOrders retrieves a filtered page of orders using keyset pagination on
// (created_at, order_id) descending. Items for the whole page are loaded in
// one follow-up query.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter portsrepo.OrderFilter) ([]domain.Order, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + orderColumns + `
		FROM orders
	`
	whereClause := `WHERE 1=1`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, models.OrderStatus(*filter.Status))
		whereClause += ` AND order_status = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		whereClause += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		whereClause += ` AND created_at < $` + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		whereClause += ` AND (invoice_number ILIKE $` + n + ` OR customer_name ILIKE $` + n + ` OR marketplace ILIKE $` + n + `)`
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastOrderID, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastCreatedAt, lastOrderID)
		whereClause += ` AND (created_at, order_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	orderByClause := `ORDER BY created_at DESC, order_id DESC`
	args = append(args, fetchLimit)
	query := baseQuery + " " + whereClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to query orders", err)
	}
	defer rows.Close()

	modelOrders := make([]models.Order, 0, fetchLimit)
	for rows.Next() {
		var m models.Order
		err := rows.Scan(
			&m.OrderID,
			&m.InvoiceNumber,
			&m.InvoicePeriod,
			&m.InvoiceSeq,
			&m.Marketplace,
			&m.CustomerName,
			&m.City,
			&m.Address,
			&m.Phone,
			&m.OrderStatus,
			&m.PaymentStatus,
			&m.AmountSettled,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewStorageError("failed to scan order row", err)
		}
		modelOrders = append(modelOrders, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewStorageError("error iterating order rows", err)
	}

	var nextTokenVal *string
	if len(modelOrders) > limit {
		last := modelOrders[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.OrderID)
		nextTokenVal = &token
		modelOrders = modelOrders[:limit]
	}

	orderIDs := make([]string, len(modelOrders))
	for i, m := range modelOrders {
		orderIDs[i] = m.OrderID
	}
	itemsByOrder, err := r.findItemsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, nil, err
	}

	orders := make([]domain.Order, len(modelOrders))
	for i, m := range modelOrders {
		orders[i] = mapping.ToDomainOrder(m)
		orders[i].Items = mapping.ToDomainOrderItemSlice(itemsByOrder[m.OrderID])
	}
	return orders, nextTokenVal, nil
}

func (r *PgxOrderRepository) findItemsForOrders(ctx context.Context, orderIDs []string) (map[string][]models.OrderItem, error) {
	itemsByOrder := make(map[string][]models.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return itemsByOrder, nil
	}

	query := `
		SELECT ` + orderItemColumns + `
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query items for order page", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ItemID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.UnitPrice,
			&item.Quantity,
			&item.Variant,
		)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan item row for order page", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating item rows for order page", err)
	}
	return itemsByOrder, nil
}
