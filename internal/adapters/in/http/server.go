// Package http exposes lot commands and queries over a JSON API built on echo.
//
// Callers authenticate with Basic auth checked against the configured
// Credentials; the user name then selects the role (broker, concierge,
// convoy, chronograph, caravan, administrator). A wrong password is answered
// with 401. Brokers prove lot ownership with the token returned on creation,
// sent as the X-Access-Token header or the acc_token query parameter.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"lots/internal/core/application/usecases/commands"
	"lots/internal/core/application/usecases/queries"
	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/core/ports"
	"lots/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	AccessTokenHeader = "X-Access-Token"
	accessTokenParam  = "acc_token"
)

type (
	CreateLotHandler interface {
		Handle(ctx context.Context, cmd commands.CreateLotCommand) (commands.CreateLotResult, error)
	}
	ChangeLotStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeLotStatusCommand) (*lot.Lot, error)
	}
	ChangeAuctionStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeAuctionStatusCommand) (*lot.Lot, error)
	}
	UpdateAuctionHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateAuctionCommand) (*lot.Lot, error)
	}
	AddLotDocumentHandler interface {
		Handle(ctx context.Context, cmd commands.AddLotDocumentCommand) (*lot.Lot, error)
	}
	AddLotContractHandler interface {
		Handle(ctx context.Context, cmd commands.AddLotContractCommand) (*lot.Lot, error)
	}
	PatchLotContractHandler interface {
		Handle(ctx context.Context, cmd commands.PatchLotContractCommand) (*lot.Lot, error)
	}
	AddRelatedProcessHandler interface {
		Handle(ctx context.Context, cmd commands.AddRelatedProcessCommand) (*lot.Lot, error)
	}
	PatchRelatedProcessHandler interface {
		Handle(ctx context.Context, cmd commands.PatchRelatedProcessCommand) (*lot.Lot, error)
	}
	DeleteRelatedProcessHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteRelatedProcessCommand) (*lot.Lot, error)
	}
	GetLotHandler interface {
		Handle(ctx context.Context, query queries.GetLotQuery) (queries.GetLotQueryResponse, error)
	}
	GetLotsByStatusHandler interface {
		Handle(ctx context.Context, query queries.GetLotsByStatusQuery) ([]queries.GetLotsByStatusQueryResponse, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateLot            CreateLotHandler
	ChangeLotStatus      ChangeLotStatusHandler
	ChangeAuctionStatus  ChangeAuctionStatusHandler
	UpdateAuction        UpdateAuctionHandler
	AddLotDocument       AddLotDocumentHandler
	AddLotContract       AddLotContractHandler
	PatchLotContract     PatchLotContractHandler
	AddRelatedProcess    AddRelatedProcessHandler
	PatchRelatedProcess  PatchRelatedProcessHandler
	DeleteRelatedProcess DeleteRelatedProcessHandler
	GetLot               GetLotHandler
	GetLotsByStatus      GetLotsByStatusHandler
}

// Server translates HTTP requests into lot commands and queries.
type Server struct {
	handlers Handlers
	clock    ports.Clock
	logger   *zap.Logger
}

func NewServer(handlers Handlers, clock ports.Clock, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		clock:    clock,
		logger:   logger.With(zap.String("component", "http_server")),
	}
}

// RegisterHandlers mounts the lot API under /api/v1, guarded by Basic auth
// against users, and an unauthenticated health check.
func RegisterHandlers(e *echo.Echo, s *Server, users Credentials) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", NewBasicAuth(users))
	api.POST("/lots", s.CreateLot)
	api.GET("/lots", s.ListLots)
	api.GET("/lots/:id", s.GetLot)
	api.PATCH("/lots/:id", s.PatchLot)
	api.PATCH("/lots/:id/auctions/:auctionId", s.PatchAuction)
	api.POST("/lots/:id/documents", s.AddDocument)

	api.GET("/lots/:id/contracts", s.ListContracts)
	api.POST("/lots/:id/contracts", s.AddContract)
	api.GET("/lots/:id/contracts/:contractId", s.GetContract)
	api.PATCH("/lots/:id/contracts/:contractId", s.PatchContract)

	api.GET("/lots/:id/related-processes", s.ListRelatedProcesses)
	api.POST("/lots/:id/related-processes", s.AddRelatedProcess)
	api.GET("/lots/:id/related-processes/:processId", s.GetRelatedProcess)
	api.PATCH("/lots/:id/related-processes/:processId", s.PatchRelatedProcess)
	api.DELETE("/lots/:id/related-processes/:processId", s.DeleteRelatedProcess)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateLot handles POST /api/v1/lots.
func (s *Server) CreateLot(c echo.Context) error {
	var req createLotRequest
	if err := s.bind(c, &req); err != nil {
		return s.invalidRequest(c, err)
	}

	now := s.clock.Now()
	rpReq := req.RelatedProcesses[0]
	rp, rpErr := lot.NewRelatedProcess(kernel.NewUUID(), rpReq.RelatedProcessID, rpReq.Identifier)
	decisions, dErr := decisionsToDomain(req.Decisions)
	documents, docErr := documentsToDomain(req.Documents, now)
	var terms lot.AuctionTerms
	var tErr error
	if len(req.Auctions) == 1 {
		terms, tErr = req.Auctions[0].toDomain()
	}
	if err := errors.Join(rpErr, dErr, docErr, tErr); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateLotCommand(commands.CreateLotParams{
		Identity:       identity(c),
		Title:          req.Title,
		Description:    req.Description,
		RelatedProcess: rp,
		Decisions:      decisions,
		Documents:      documents,
		AuctionTerms:   terms,
	})
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.CreateLot.Handle(c.Request().Context(), cmd)
	if err = s.tolerateUnpublished(err, result.Lot); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdLotResponse{
		Data:   lotView(result.Lot),
		Access: accessResponse{Token: result.OwnerToken},
	})
}

// GetLot handles GET /api/v1/lots/:id.
func (s *Server) GetLot(c echo.Context) error {
	view, err := s.readLot(c)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: view})
}

// readLot loads the public view of the lot named by the :id path parameter.
func (s *Server) readLot(c echo.Context) (queries.GetLotQueryResponse, error) {
	lotID, err := pathUUID(c, "id")
	if err != nil {
		return queries.GetLotQueryResponse{}, err
	}
	query, err := queries.NewGetLotQuery(lotID)
	if err != nil {
		return queries.GetLotQueryResponse{}, err
	}
	return s.handlers.GetLot.Handle(c.Request().Context(), query)
}

// ListLots handles GET /api/v1/lots?status=pending&status=active.salable&limit=50.
func (s *Server) ListLots(c echo.Context) error {
	names := c.QueryParams()["status"]
	statuses := make([]lot.Status, 0, len(names))
	var err error
	for _, name := range names {
		status, sErr := lot.ParseStatus(name)
		err = errors.Join(err, sErr)
		statuses = append(statuses, status)
	}
	limit := queries.DefaultLotsPageSize
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, pErr := strconv.Atoi(raw)
		if pErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("limit", pErr))
		}
		limit = parsed
	}
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetLotsByStatusQuery(statuses, limit)
	if err != nil {
		return s.fail(c, err)
	}
	lots, err := s.handlers.GetLotsByStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: lots})
}

// PatchLot handles PATCH /api/v1/lots/:id: status switches and content edits.
func (s *Server) PatchLot(c echo.Context) error {
	lotID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req lotPatchRequest
	if err = s.bind(c, &req); err != nil {
		return s.invalidRequest(c, err)
	}
	patch, err := req.toDomain(s.clock.Now())
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeLotStatusCommand(lotID, identity(c), patch)
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.handlers.ChangeLotStatus.Handle(c.Request().Context(), cmd)
	if err = s.tolerateUnpublished(err, updated); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: lotView(updated)})
}

// PatchAuction handles PATCH /api/v1/lots/:id/auctions/:auctionId. A body
// with "status" switches the auction status; any other body edits its terms.
func (s *Server) PatchAuction(c echo.Context) error {
	lotID, idErr := pathUUID(c, "id")
	auctionID, aErr := pathUUID(c, "auctionId")
	if err := errors.Join(idErr, aErr); err != nil {
		return s.fail(c, err)
	}
	var req auctionPatchRequest
	if err := s.bind(c, &req); err != nil {
		return s.invalidRequest(c, err)
	}

	ctx := c.Request().Context()
	var updated *lot.Lot
	var err error

	if req.Status != nil {
		if !req.isEmpty() {
			return s.fail(c, errMixedAuctionPatch)
		}
		status, sErr := lot.ParseAuctionStatus(*req.Status)
		if sErr != nil {
			return s.fail(c, sErr)
		}
		cmd, cErr := commands.NewChangeAuctionStatusCommand(lotID, auctionID, status, identity(c))
		if cErr != nil {
			return s.fail(c, cErr)
		}
		updated, err = s.handlers.ChangeAuctionStatus.Handle(ctx, cmd)
	} else {
		terms, tErr := req.toDomain()
		if tErr != nil {
			return s.fail(c, tErr)
		}
		cmd, cErr := commands.NewUpdateAuctionCommand(lotID, auctionID, terms, identity(c))
		if cErr != nil {
			return s.fail(c, cErr)
		}
		updated, err = s.handlers.UpdateAuction.Handle(ctx, cmd)
	}

	if err = s.tolerateUnpublished(err, updated); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: lotView(updated)})
}

// AddDocument handles POST /api/v1/lots/:id/documents and returns the
// stored document.
func (s *Server) AddDocument(c echo.Context) error {
	lotID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req documentRequest
	if err = s.bind(c, &req); err != nil {
		return s.invalidRequest(c, err)
	}
	doc, err := req.toDomain(s.clock.Now())
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAddLotDocumentCommand(lotID, doc, identity(c))
	if err != nil {
		return s.fail(c, err)
	}
	if _, err = s.handlers.AddLotDocument.Handle(c.Request().Context(), cmd); err != nil {
		if !errors.Is(err, commands.ErrEventsNotPublished) {
			return s.fail(c, err)
		}
		s.logger.Warn("lot events were not published", zap.String("lot_id", lotID.String()), zap.Error(err))
	}
	return c.JSON(http.StatusCreated, dataResponse{Data: documentView(doc)})
}

// bind decodes and validates the request body.
func (s *Server) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func (s *Server) invalidRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, validationErrorResponse(err))
}

// tolerateUnpublished treats a committed change whose events were lost as a
// success.
func (s *Server) tolerateUnpublished(err error, committed *lot.Lot) error {
	if err == nil || committed == nil || !errors.Is(err, commands.ErrEventsNotPublished) {
		return err
	}
	s.logger.Warn("lot events were not published",
		zap.String("lot_id", committed.ID().String()),
		zap.Error(err),
	)
	return nil
}

func (s *Server) fail(c echo.Context, err error) error {
	status, response := newErrorResponse(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.JSON(status, response)
}

// identity reads the caller from a request that already passed NewBasicAuth.
func identity(c echo.Context) lot.Identity {
	user, _, _ := c.Request().BasicAuth()
	token := c.Request().Header.Get(AccessTokenHeader)
	if token == "" {
		token = c.QueryParam(accessTokenParam)
	}
	return lot.Identity{User: user, Token: token}
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause(name, c.Param(name), err)
	}
	return id, nil
}
