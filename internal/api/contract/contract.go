// Пакет contract — HTTP-контракт SWIFT Monitor: встроенная OpenAPI-спецификация
// и таблица маршрутов chi, связывающая операции с ServerInterface.
package contract

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var spec []byte

// Spec возвращает исходный текст спецификации.
func Spec() []byte {
	return spec
}

// Load разбирает и валидирует встроенную спецификацию.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора openapi.yaml: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi.yaml не прошёл валидацию: %w", err)
	}
	return doc, nil
}

// ServerInterface — операции API.
type ServerInterface interface {
	// (GET /transactions)
	ListTransactions(w http.ResponseWriter, r *http.Request)
	// (GET /transactions/stats)
	GetTransactionStats(w http.ResponseWriter, r *http.Request)
	// (GET /transactions/form-types)
	ListActiveFormTypes(w http.ResponseWriter, r *http.Request)
	// (GET /transactions/errors) и (GET /errors)
	ListErrors(w http.ResponseWriter, r *http.Request)
	// (GET /transactions/message-states)
	ListMessageStates(w http.ResponseWriter, r *http.Request)
	// (GET /transactions/query-states)
	ListQueryStates(w http.ResponseWriter, r *http.Request)
	// (GET /transactions/{id})
	GetTransaction(w http.ResponseWriter, r *http.Request, id int64)
	// (GET /errors/form-types)
	ListFormTypes(w http.ResponseWriter, r *http.Request)
	// (GET /export/transactions)
	ExportTransactions(w http.ResponseWriter, r *http.Request)
	// (GET /export/preview)
	PreviewExport(w http.ResponseWriter, r *http.Request)

	// (GET /health)
	Health(w http.ResponseWriter, r *http.Request)
	// (GET /health/live)
	HealthLive(w http.ResponseWriter, r *http.Request)
	// (GET /health/ready)
	HealthReady(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	GetMetrics(w http.ResponseWriter, r *http.Request)
	// (GET /openapi.yaml)
	GetOpenAPI(w http.ResponseWriter, r *http.Request)
}

// ChiServerOptions — параметры монтирования маршрутов.
type ChiServerOptions struct {
	// BaseURL — префикс бизнес-маршрутов; health, metrics и openapi.yaml остаются в корне
	BaseURL    string
	BaseRouter chi.Router
	// InvalidIDHandler вызывается, если {id} не является целым числом
	InvalidIDHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions монтирует все операции ServerInterface на chi-роутер.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	invalidID := options.InvalidIDHandler
	if invalidID == nil {
		invalidID = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusNotFound)
		}
	}
	base := options.BaseURL

	r.Get("/health", si.Health)
	r.Get("/health/live", si.HealthLive)
	r.Get("/health/ready", si.HealthReady)
	r.Get("/metrics", si.GetMetrics)
	r.Get("/openapi.yaml", si.GetOpenAPI)

	r.Get(base+"/transactions", si.ListTransactions)
	r.Get(base+"/transactions/stats", si.GetTransactionStats)
	r.Get(base+"/transactions/form-types", si.ListActiveFormTypes)
	r.Get(base+"/transactions/errors", si.ListErrors)
	r.Get(base+"/transactions/message-states", si.ListMessageStates)
	r.Get(base+"/transactions/query-states", si.ListQueryStates)
	r.Get(base+"/transactions/{id}", func(w http.ResponseWriter, req *http.Request) {
		var id int64
		err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(req, "id"), &id,
			runtime.BindStyledParameterOptions{
				ParamLocation: runtime.ParamLocationPath,
				Explode:       false,
				Required:      true,
			})
		if err != nil {
			invalidID(w, req, fmt.Errorf("некорректный формат параметра id: %w", err))
			return
		}
		si.GetTransaction(w, req, id)
	})
	r.Get(base+"/errors", si.ListErrors)
	r.Get(base+"/errors/form-types", si.ListFormTypes)
	r.Get(base+"/export/transactions", si.ExportTransactions)
	r.Get(base+"/export/preview", si.PreviewExport)

	return r
}
