package repository

import (
	"context"
	"fmt"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

const (
	errorsQuery = `SELECT code, message FROM swift_errors ORDER BY code`

	messageStatusesQuery = `SELECT DISTINCT status FROM swift_messages
	WHERE status IS NOT NULL ORDER BY status`

	formTypesQuery = `SELECT id, name, alias, state, head_version, body_version, title, short_title
	FROM swift_form_types %s ORDER BY id`

	// formTypesReducedQuery — без столбца state (ранние версии схемы).
	formTypesReducedQuery = `SELECT id, name, alias, head_version, body_version, title, short_title
	FROM swift_form_types ORDER BY id`

	queryStatesQuery = `SELECT id, name, active, direction, color, message_state
	FROM swift_query_states ORDER BY id`

	// queryStatesReducedQuery — без столбцов color и message_state.
	queryStatesReducedQuery = `SELECT id, name, active, direction
	FROM swift_query_states ORDER BY id`
)

// ReferenceRepository — чтение справочников.
// Методы *Reduced обращаются только к обязательным столбцам и
// используются, когда полный запрос вернул ErrSchemaMismatch.
type ReferenceRepository interface {
	Errors(ctx context.Context) ([]model.ErrorRef, error)
	MessageStatuses(ctx context.Context) ([]string, error)
	FormTypes(ctx context.Context, activeOnly bool) ([]model.FormType, error)
	FormTypesReduced(ctx context.Context) ([]model.FormType, error)
	QueryStates(ctx context.Context) ([]model.QueryState, error)
	QueryStatesReduced(ctx context.Context) ([]model.QueryState, error)
}

type referenceRepo struct {
	gw Gateway
}

// NewReferenceRepository создаёт репозиторий справочников.
func NewReferenceRepository(gw Gateway) ReferenceRepository {
	return &referenceRepo{gw: gw}
}

func (r *referenceRepo) Errors(ctx context.Context) ([]model.ErrorRef, error) {
	rs, err := r.gw.Execute(ctx, errorsQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения справочника ошибок: %w", err)
	}

	result := make([]model.ErrorRef, 0, rs.Len())
	for i := range rs.Rows {
		code, err := asInt64(rs.Value(i, "code"))
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения кода ошибки: %w", err)
		}
		result = append(result, model.ErrorRef{
			Code:    int(code),
			Message: asString(rs.Value(i, "message")),
		})
	}
	return result, nil
}

func (r *referenceRepo) MessageStatuses(ctx context.Context) ([]string, error) {
	rs, err := r.gw.Execute(ctx, messageStatusesQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения статусов сообщений: %w", err)
	}

	result := make([]string, 0, rs.Len())
	for i := range rs.Rows {
		result = append(result, asString(rs.Value(i, "status")))
	}
	return result, nil
}

// FormTypes возвращает типы форм; activeOnly оставляет только state = 1.
func (r *referenceRepo) FormTypes(ctx context.Context, activeOnly bool) ([]model.FormType, error) {
	args := newQueryArgs(r.gw.Dialect())
	where := ""
	if activeOnly {
		where = "WHERE state = " + args.add(model.FormTypeActive)
	}

	rs, err := r.gw.Execute(ctx, fmt.Sprintf(formTypesQuery, where), args.values...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения типов форм: %w", err)
	}
	return formTypesFrom(rs, true)
}

// FormTypesReduced возвращает типы форм без state; все считаются активными.
func (r *referenceRepo) FormTypesReduced(ctx context.Context) ([]model.FormType, error) {
	rs, err := r.gw.Execute(ctx, formTypesReducedQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения типов форм: %w", err)
	}
	return formTypesFrom(rs, false)
}

func formTypesFrom(rs *ResultSet, withState bool) ([]model.FormType, error) {
	result := make([]model.FormType, 0, rs.Len())
	for i := range rs.Rows {
		id, err := asInt64(rs.Value(i, "id"))
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения id типа формы: %w", err)
		}
		state := int64(model.FormTypeActive)
		if withState {
			if state, err = asInt64(rs.Value(i, "state")); err != nil {
				return nil, fmt.Errorf("ошибка чтения state типа формы: %w", err)
			}
		}
		result = append(result, model.FormType{
			ID:          int(id),
			Name:        asString(rs.Value(i, "name")),
			Alias:       asString(rs.Value(i, "alias")),
			State:       int(state),
			HeadVersion: asString(rs.Value(i, "head_version")),
			BodyVersion: asString(rs.Value(i, "body_version")),
			Title:       asString(rs.Value(i, "title")),
			ShortTitle:  asString(rs.Value(i, "short_title")),
		})
	}
	return result, nil
}

func (r *referenceRepo) QueryStates(ctx context.Context) ([]model.QueryState, error) {
	rs, err := r.gw.Execute(ctx, queryStatesQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения состояний: %w", err)
	}
	return queryStatesFrom(rs)
}

// QueryStatesReduced возвращает состояния без цвета и статуса сообщения;
// цвет заполняется значением по умолчанию.
func (r *referenceRepo) QueryStatesReduced(ctx context.Context) ([]model.QueryState, error) {
	rs, err := r.gw.Execute(ctx, queryStatesReducedQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения состояний: %w", err)
	}
	states, err := queryStatesFrom(rs)
	if err != nil {
		return nil, err
	}
	for i := range states {
		states[i].Color = model.ColorDefault
	}
	return states, nil
}

func queryStatesFrom(rs *ResultSet) ([]model.QueryState, error) {
	result := make([]model.QueryState, 0, rs.Len())
	for i := range rs.Rows {
		var nums [3]int64
		for j, col := range []string{"id", "active", "direction"} {
			v, err := asInt64(rs.Value(i, col))
			if err != nil {
				return nil, fmt.Errorf("ошибка чтения %s состояния: %w", col, err)
			}
			nums[j] = v
		}
		result = append(result, model.QueryState{
			ID:           int(nums[0]),
			Name:         asString(rs.Value(i, "name")),
			Active:       int(nums[1]),
			Direction:    int(nums[2]),
			Color:        asString(rs.Value(i, "color")),
			MessageState: asString(rs.Value(i, "message_state")),
		})
	}
	return result, nil
}
