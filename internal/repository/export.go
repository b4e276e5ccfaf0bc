package repository

import (
	"context"
	"fmt"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// exportColumns — фиксированный набор столбцов выгрузки.
// Статус и направление вычисляются на стороне БД.
var exportColumns = fmt.Sprintf(`t.id, t.msg_id, t.type,
	CASE t.direction WHEN 1 THEN 'Outbound' WHEN 2 THEN 'Inbound' ELSE 'Unknown' END AS direction_label,
	CASE
		WHEN t.error IS NOT NULL AND t.error <> 0 THEN 'Error'
		WHEN t.state = %d THEN 'Success'
		WHEN t.state IN (%s) THEN 'Processing'
		ELSE 'Unknown'
	END AS status_label,
	t.init_time, t.send_time, t.response_time, t.error, t.error_msg,
	t.file_name, t.response_file_name, t.reference,
	e.message AS error_description, ft.name AS form_name`,
	model.StateCompleted, stateList(model.PendingStates))

// ExportRepository — выборка строк для выгрузки.
type ExportRepository interface {
	// Count возвращает количество транзакций, подходящих под фильтр.
	Count(ctx context.Context, f model.TransactionFilter) (int64, error)
	// Rows возвращает не более limit строк, новые первыми.
	Rows(ctx context.Context, f model.TransactionFilter, limit int) ([]model.ExportRow, error)
}

type exportRepo struct {
	gw Gateway
}

// NewExportRepository создаёт репозиторий выгрузки.
func NewExportRepository(gw Gateway) ExportRepository {
	return &exportRepo{gw: gw}
}

func (r *exportRepo) Count(ctx context.Context, f model.TransactionFilter) (int64, error) {
	query, args := buildCountQuery(f, r.gw.Dialect())
	rs, err := r.gw.Execute(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта транзакций: %w", err)
	}
	if rs.Len() == 0 {
		return 0, nil
	}
	return asInt64(rs.Rows[0][0])
}

func (r *exportRepo) Rows(ctx context.Context, f model.TransactionFilter, limit int) ([]model.ExportRow, error) {
	d := r.gw.Dialect()
	args := newQueryArgs(d)
	where := buildTransactionWhere(f, args)
	query := fmt.Sprintf(`SELECT %s FROM %s %s %s LIMIT %s`,
		exportColumns, transactionSource, where, transactionOrder(d), args.add(limit))

	rs, err := r.gw.Execute(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки для выгрузки: %w", err)
	}

	rows := make([]model.ExportRow, 0, rs.Len())
	for i := range rs.Rows {
		row, err := exportRowAt(rs, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// exportRowAt читает строку выгрузки по имени столбца.
func exportRowAt(rs *ResultSet, i int) (model.ExportRow, error) {
	id, err := asInt64(rs.Value(i, "id"))
	if err != nil {
		return model.ExportRow{}, fmt.Errorf("ошибка чтения id: %w", err)
	}
	code, err := asNullInt64(rs.Value(i, "error"))
	if err != nil {
		return model.ExportRow{}, fmt.Errorf("ошибка чтения кода ошибки: %w", err)
	}
	return model.ExportRow{
		ID:               id,
		MsgID:            asString(rs.Value(i, "msg_id")),
		Type:             asString(rs.Value(i, "type")),
		Direction:        asString(rs.Value(i, "direction_label")),
		Status:           asString(rs.Value(i, "status_label")),
		InitTime:         asTime(rs.Value(i, "init_time")),
		SendTime:         asTime(rs.Value(i, "send_time")),
		ResponseTime:     asTime(rs.Value(i, "response_time")),
		ErrorCode:        code,
		ErrorMessage:     asString(rs.Value(i, "error_msg")),
		FileName:         asString(rs.Value(i, "file_name")),
		ResponseFileName: asString(rs.Value(i, "response_file_name")),
		Reference:        asString(rs.Value(i, "reference")),
		ErrorDescription: asString(rs.Value(i, "error_description")),
		FormName:         asString(rs.Value(i, "form_name")),
	}, nil
}
