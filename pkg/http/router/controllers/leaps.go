package controllers

import (
	"errors"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	helper "github.com/lintang-b-s/navigatorx-leaps/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/http/usecases"
	"go.uber.org/zap"
)

type leapsAPI struct {
	leapsService LeapsService
	log          *zap.Logger
	validator    *validator.Validate
	trans        ut.Translator
}

func New(leapsService LeapsService, log *zap.Logger) *leapsAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &leapsAPI{
		leapsService: leapsService,
		log:          log,
		validator:    validate,
		trans:        trans,
	}
}

func (api *leapsAPI) Routes(group *helper.RouteGroup) {
	group.POST("/leaps/process", api.processPath)
	group.POST("/leaps/batch", api.processBatch)
}

// processPath
//
//	@Summary		remove detours from a route
//	@Description	replaces slow stretches of a route with faster paths of at most a few segments. the route is
//	@Description	either a segment path or a joint route, fake joints at the ends are dropped
//	@Tags			leaps
//	@Accept			json
//	@Produce		json
//	@Param			body	body		processPathRequest	true	"segment route"
//	@Success		200		{object}	processPathResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/leaps/process [post]
func (api *leapsAPI) processPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request processPathRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if (len(request.Path) == 0) == (len(request.Joints) == 0) {
		api.BadRequestResponse(w, r, errors.New("validation error: exactly one of path and joints must be given"))
		return
	}

	var (
		res usecases.RouteResult
		err error
	)
	if len(request.Joints) > 0 {
		joints, jErr := toJointSegments(request.Joints)
		if jErr != nil {
			api.BadRequestResponse(w, r, jErr)
			return
		}
		res, err = api.leapsService.ProcessJoints(r.Context(), joints)
	} else {
		res, err = api.leapsService.ProcessPath(r.Context(), toSegments(request.Path))
	}
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewProcessPathResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// processBatch
//
//	@Summary		remove detours from many routes
//	@Tags			leaps
//	@Accept			json
//	@Produce		json
//	@Param			body	body		batchRequest	true	"segment routes"
//	@Success		200		{array}		batchItemResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/leaps/batch [post]
func (api *leapsAPI) processBatch(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request batchRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	paths := make([][]datastructure.Segment, len(request.Paths))
	for i, path := range request.Paths {
		paths[i] = toSegments(path)
	}

	results, err := api.leapsService.ProcessBatch(r.Context(), paths)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBatchResponse(results)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
