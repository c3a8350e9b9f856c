package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/crudly/httputils"
	"github.com/viant/crudly/logging"
	"github.com/viant/crudly/metric"
	"github.com/viant/crudly/pagination"
	"github.com/viant/crudly/store"
	"github.com/viant/crudly/template"
	"github.com/viant/crudly/validator"
	"golang.org/x/sync/errgroup"
)

// Handler binds request to an entity action
type Handler struct {
	entity        string
	action        Action
	store         store.Entity
	template      *template.Template
	callback      Callback
	validator     *validator.Validator
	logger        logging.Logger
	counter       *metric.ActionCounter
	pathVariables PathVariables
}

// New creates an action handler, template and validation rules are compiled upfront
func New(entity string, action Action, target store.Entity, config *Options, opts ...Option) (*Handler, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Options{}
	}
	aTemplate, err := template.New(config.Template)
	if err != nil {
		return nil, httputils.NewError(http.StatusInternalServerError, "invalid "+entity+" "+string(action)+" template: "+err.Error(), httputils.WithError(err))
	}
	aValidator, err := validator.New(config.Rules)
	if err != nil {
		return nil, httputils.NewError(http.StatusInternalServerError, "invalid "+entity+" "+string(action)+" rules: "+err.Error(), httputils.WithError(err))
	}
	o := newOptions(opts)
	return &Handler{
		entity:        entity,
		action:        action,
		store:         target,
		template:      aTemplate,
		callback:      config.Callback,
		validator:     aValidator,
		logger:        o.logger,
		counter:       o.metrics.Counter(entity, string(action)),
		pathVariables: o.pathVariables,
	}, nil
}

func (h *Handler) Entity() string {
	return h.entity
}

func (h *Handler) Action() Action {
	return h.action
}

// ServeHTTP handles request with default error sink
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Handle(w, r, DefaultErrorSink)
}

// Handle handles request, any failure is forwarded to supplied error sink before anything is written
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request, fail ErrorSink) {
	if fail == nil {
		fail = DefaultErrorSink
	}
	done := h.counter.Begin(time.Now())
	event, err := h.handle(w, r)
	if err != nil {
		statusCode, message := httputils.BuildErrorResponse(err)
		if statusCode >= http.StatusInternalServerError {
			h.logger.Errorc(r.Context(), "action failed", "entity", h.entity, "action", h.action, "status", statusCode, "error", message)
		} else {
			h.logger.Debugc(r.Context(), "action rejected", "entity", h.entity, "action", h.action, "status", statusCode, "error", message)
		}
		fail(w, r, err)
	}
	done(event)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) (metric.Event, error) {
	ctx := r.Context()
	args, page, callback, err := h.resolve(r)
	if err != nil {
		return metric.Error, err
	}
	if callback != nil {
		h.logger.Debugc(ctx, "action overridden by callback", "entity", h.entity, "action", h.action)
		if err = callback(w, r, args); err != nil {
			return metric.Error, err
		}
		return metric.Override, nil
	}
	return h.execute(ctx, w, args, page)
}

// resolve builds request value map, validates it and resolves argument template
func (h *Handler) resolve(r *http.Request) (store.Args, *pagination.Context, Callback, error) {
	request, err := httputils.RequestOf(r, h.pathVariables(r))
	if err != nil {
		return nil, nil, nil, err
	}
	if h.validator != nil {
		if err = h.validator.Validate(request.PathVariables, firstValues(request), request.Body); err != nil {
			return nil, nil, nil, err
		}
	}
	var page *pagination.Context
	var overrides map[string]interface{}
	if h.action == FindMany {
		page = pagination.FromQuery(request.QueryParams)
		overrides = page.Overrides()
	}
	resolved, err := h.template.Resolve(request.Values(), overrides)
	if err != nil {
		return nil, nil, nil, err
	}
	args := store.Args(resolved)
	callback := h.callback
	if candidate, ok := args[CallbackKey]; ok {
		delete(args, CallbackKey)
		if callback == nil {
			callback = asCallback(candidate)
		}
	}
	if h.logger.IsDebugEnabled() {
		h.logger.Debugs(r.Context(), "resolved arguments", slog.String("entity", h.entity), slog.String("action", string(h.action)), slog.Any("args", map[string]interface{}(args)))
	}
	return args, page, callback, nil
}

func (h *Handler) execute(ctx context.Context, w http.ResponseWriter, args store.Args, page *pagination.Context) (metric.Event, error) {
	if h.action.IsUnique() && !args.HasWhere() {
		return metric.Error, httputils.NewError(http.StatusBadRequest, h.entity+" "+string(h.action)+" requires a where condition", httputils.WithError(store.ErrMissingWhere))
	}
	switch h.action {
	case FindUnique:
		row, err := h.store.FindUnique(ctx, args)
		return h.writeRow(w, row, err)
	case FindFirst:
		row, err := h.store.FindFirst(ctx, args)
		return h.writeRow(w, row, err)
	case FindMany:
		return h.findMany(ctx, w, args, page)
	case Create:
		row, err := h.store.Create(ctx, args)
		if err != nil {
			return metric.Error, err
		}
		return metric.Success, httputils.WriteJSON(w, http.StatusOK, &RowResponse{Row: row})
	case CreateMany:
		result, err := h.store.CreateMany(ctx, args)
		return h.writeRows(w, result, err)
	case Update:
		return h.update(ctx, w, args)
	case UpdateMany:
		result, err := h.store.UpdateMany(ctx, args)
		return h.writeRows(w, result, err)
	case Delete:
		row, err := h.store.Delete(ctx, args)
		return h.writeRow(w, row, err)
	case DeleteMany:
		result, err := h.store.DeleteMany(ctx, args)
		return h.writeRows(w, result, err)
	}
	return metric.Error, httputils.NewError(http.StatusInternalServerError, "unsupported action: "+string(h.action))
}

// findMany runs count and fetch concurrently, count uses where clause only
func (h *Handler) findMany(ctx context.Context, w http.ResponseWriter, args store.Args, page *pagination.Context) (metric.Event, error) {
	if page == nil {
		page = pagination.New(0, 0)
	}
	countArgs := args.WhereOnly()
	var count int
	var rows []store.Row
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		count, err = h.store.Count(groupCtx, countArgs)
		return err
	})
	group.Go(func() (err error) {
		rows, err = h.store.FindMany(groupCtx, args)
		return err
	})
	if err := group.Wait(); err != nil {
		return metric.Error, err
	}
	if rows == nil {
		rows = []store.Row{}
	}
	return metric.Success, httputils.WriteJSON(w, http.StatusOK, page.Result(count, rows))
}

// update checks that a matching row exists before updating, the check and the update are not atomic
func (h *Handler) update(ctx context.Context, w http.ResponseWriter, args store.Args) (metric.Event, error) {
	existing, err := h.store.FindFirst(ctx, args.WhereOnly())
	if err != nil {
		return metric.Error, err
	}
	if existing == nil {
		return metric.NotFound, httputils.NewNotFound(h.entity)
	}
	if _, err = h.store.Update(ctx, args); err != nil {
		return metric.Error, err
	}
	httputils.WriteNoContent(w)
	return metric.Success, nil
}

func (h *Handler) writeRow(w http.ResponseWriter, row store.Row, err error) (metric.Event, error) {
	if err != nil {
		return metric.Error, err
	}
	if row == nil {
		return metric.NotFound, httputils.NewNotFound(h.entity)
	}
	return metric.Success, httputils.WriteJSON(w, http.StatusOK, &RowResponse{Row: row})
}

func (h *Handler) writeRows(w http.ResponseWriter, result store.Row, err error) (metric.Event, error) {
	if err != nil {
		return metric.Error, err
	}
	return metric.Success, httputils.WriteJSON(w, http.StatusOK, &RowsResponse{Rows: result})
}

func firstValues(request *httputils.Request) map[string]string {
	var result = make(map[string]string, len(request.QueryParams))
	for k := range request.QueryParams {
		result[k] = request.QueryParam(k)
	}
	return result
}

func asCallback(candidate interface{}) Callback {
	switch actual := candidate.(type) {
	case Callback:
		return actual
	case func(w http.ResponseWriter, r *http.Request, args store.Args) error:
		return actual
	}
	return nil
}
