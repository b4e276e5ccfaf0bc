package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// transactionColumns — столбцы журнала и связанных справочников для SELECT-запросов.
// XML и JSON приводятся к тексту на стороне БД.
const transactionColumns = `t.id, t.msg_id, t.type, t.direction, t.state,
	t.init_time, t.send_time, t.response_time, t.error, t.error_msg,
	t.file_name, t.response_file_name, t.reference,
	CAST(t.json_data AS TEXT) AS json_data, CAST(t.xml_data AS TEXT) AS xml_data,
	e.message AS error_description,
	ft.name AS form_name, ft.title AS form_title, ft.short_title AS form_short_title,
	qs.name AS state_name, qs.color AS state_color,
	m.status AS message_status, m.reason AS message_reason,
	m.amount, m.currency, m.payer, m.receiver`

// transactionSource — журнал транзакций со всеми LEFT JOIN справочников.
const transactionSource = `swift_transactions t
	LEFT JOIN swift_errors e ON e.code = t.error
	LEFT JOIN swift_form_types ft ON ft.alias || ft.body_version = t.type
	LEFT JOIN swift_messages m ON m.query_id = t.id
	LEFT JOIN swift_query_states qs ON qs.id = t.state`

// transactionOrder — новые записи первыми; id разрешает равенство времени.
func transactionOrder(d Dialect) string {
	return "ORDER BY " + d.TimeExpr("t.init_time") + " DESC, t.id DESC"
}

// initTimeSince — условие init_time >= since в нотации диалекта.
func initTimeSince(since time.Time, args *queryArgs) string {
	d := args.dialect
	return d.TimeExpr("t.init_time") + " >= " + d.TimeExpr(args.add(since.UTC()))
}

// stateList — список состояний для IN (...).
func stateList(states []int) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}

// searchColumns — столбцы, по которым работает свободный поиск.
var searchColumns = []string{
	"t.msg_id",
	"t.file_name",
	"t.reference",
	"CAST(t.id AS TEXT)",
	"m.payer",
	"m.receiver",
}

// queryArgs накапливает параметры запроса и выдаёт их обозначения в нотации диалекта.
type queryArgs struct {
	dialect Dialect
	values  []any
}

func newQueryArgs(d Dialect) *queryArgs {
	return &queryArgs{dialect: d}
}

// add регистрирует параметр и возвращает его обозначение.
func (a *queryArgs) add(v any) string {
	a.values = append(a.values, v)
	return a.dialect.Placeholder(len(a.values))
}

// buildTransactionWhere строит WHERE-условие по фильтру.
// Каждое присутствующее поле фильтра даёт одно AND-условие.
//
//nolint:cyclop // сложность обусловлена количеством фильтров
func buildTransactionWhere(f model.TransactionFilter, args *queryArgs) string {
	var conditions []string
	d := args.dialect

	// Диапазон дат: [начало dateFrom; начало dateTo + сутки)
	if f.DateFrom != nil {
		conditions = append(conditions, initTimeSince(*f.DateFrom, args))
	}
	if f.DateTo != nil {
		conditions = append(conditions, d.TimeExpr("t.init_time")+" < "+
			d.TimeExpr(args.add(f.DateTo.UTC().Add(24*time.Hour))))
	}

	// Статус: код состояния транзакции или статус ISO 20022 сообщения
	if f.Status != nil {
		if f.Status.Numeric {
			conditions = append(conditions, fmt.Sprintf("(t.state = %s OR m.status = %s)",
				args.add(f.Status.Code), args.add(f.Status.Raw)))
		} else {
			conditions = append(conditions, fmt.Sprintf("(CAST(t.state AS TEXT) = %s OR m.status = %s)",
				args.add(f.Status.Raw), args.add(f.Status.Raw)))
		}
	}

	if f.Type != nil {
		conditions = append(conditions, d.ContainsFold("t.type", args.add(containsPattern(*f.Type))))
	}

	if f.Search != nil {
		pattern := containsPattern(*f.Search)
		parts := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			parts = append(parts, d.ContainsFold(col, args.add(pattern)))
		}
		conditions = append(conditions, "("+strings.Join(parts, " OR ")+")")
	}

	if f.ErrorsOnly {
		conditions = append(conditions, "t.error IS NOT NULL AND t.error <> 0")
	}

	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

// buildListQuery строит запрос страницы журнала.
func buildListQuery(f model.TransactionFilter, page model.PageRequest, d Dialect) (string, []any) {
	args := newQueryArgs(d)
	where := buildTransactionWhere(f, args)
	query := fmt.Sprintf(`SELECT %s FROM %s %s %s LIMIT %s OFFSET %s`,
		transactionColumns, transactionSource, where, transactionOrder(d),
		args.add(page.Limit), args.add(page.Offset()))
	return query, args.values
}

// buildCountQuery строит запрос общего количества с теми же фильтрами.
func buildCountQuery(f model.TransactionFilter, d Dialect) (string, []any) {
	args := newQueryArgs(d)
	where := buildTransactionWhere(f, args)
	query := fmt.Sprintf(`SELECT COUNT(*) AS total FROM (SELECT t.id FROM %s %s) filtered`,
		transactionSource, where)
	return query, args.values
}

// buildGetQuery строит запрос одной транзакции по id.
func buildGetQuery(id int64, d Dialect) (string, []any) {
	args := newQueryArgs(d)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE t.id = %s`,
		transactionColumns, transactionSource, args.add(id))
	return query, args.values
}
