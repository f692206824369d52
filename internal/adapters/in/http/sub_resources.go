package http

import (
	"errors"
	"net/http"

	"lots/internal/core/application/usecases/commands"
	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListContracts handles GET /api/v1/lots/:id/contracts.
func (s *Server) ListContracts(c echo.Context) error {
	view, err := s.readLot(c)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: view.Contracts})
}

// GetContract handles GET /api/v1/lots/:id/contracts/:contractId.
func (s *Server) GetContract(c echo.Context) error {
	contractID, err := pathUUID(c, "contractId")
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.readLot(c)
	if err != nil {
		return s.fail(c, err)
	}
	for _, contract := range view.Contracts {
		if contract.ID == contractID.String() {
			return c.JSON(http.StatusOK, dataResponse{Data: contract})
		}
	}
	return s.fail(c, errs.NewObjectNotFoundError("contract", contractID))
}

// AddContract handles POST /api/v1/lots/:id/contracts and returns the stored
// contract.
func (s *Server) AddContract(c echo.Context) error {
	lotID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req contractRequest
	if err = s.bind(c, &req); err != nil {
		return s.invalidRequest(c, err)
	}
	contract, err := lot.NewContract(kernel.NewUUID(), req.ContractID, req.RelatedProcessID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAddLotContractCommand(lotID, contract, identity(c))
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.handlers.AddLotContract.Handle(c.Request().Context(), cmd)
	if err = s.tolerateUnpublished(err, updated); err != nil {
		return s.fail(c, err)
	}
	return s.respondContract(c, http.StatusCreated, updated, contract.ID())
}

// PatchContract handles PATCH /api/v1/lots/:id/contracts/:contractId.
func (s *Server) PatchContract(c echo.Context) error {
	lotID, idErr := pathUUID(c, "id")
	contractID, cErr := pathUUID(c, "contractId")
	if err := errors.Join(idErr, cErr); err != nil {
		return s.fail(c, err)
	}
	var req contractPatchRequest
	if err := s.bind(c, &req); err != nil {
		return s.invalidRequest(c, err)
	}
	patch, err := req.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewPatchLotContractCommand(lotID, contractID, patch, identity(c))
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.handlers.PatchLotContract.Handle(c.Request().Context(), cmd)
	if err = s.tolerateUnpublished(err, updated); err != nil {
		return s.fail(c, err)
	}
	return s.respondContract(c, http.StatusOK, updated, contractID)
}

// ListRelatedProcesses handles GET /api/v1/lots/:id/related-processes.
func (s *Server) ListRelatedProcesses(c echo.Context) error {
	view, err := s.readLot(c)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: view.RelatedProcesses})
}

// GetRelatedProcess handles GET /api/v1/lots/:id/related-processes/:processId.
func (s *Server) GetRelatedProcess(c echo.Context) error {
	processID, err := pathUUID(c, "processId")
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.readLot(c)
	if err != nil {
		return s.fail(c, err)
	}
	for _, rp := range view.RelatedProcesses {
		if rp.ID == processID.String() {
			return c.JSON(http.StatusOK, dataResponse{Data: rp})
		}
	}
	return s.fail(c, errs.NewObjectNotFoundError("related process", processID))
}

// AddRelatedProcess handles POST /api/v1/lots/:id/related-processes.
func (s *Server) AddRelatedProcess(c echo.Context) error {
	lotID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req relatedProcessRequest
	if err = s.bind(c, &req); err != nil {
		return s.invalidRequest(c, err)
	}
	rp, err := lot.NewRelatedProcess(kernel.NewUUID(), req.RelatedProcessID, req.Identifier)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAddRelatedProcessCommand(lotID, rp, identity(c))
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.handlers.AddRelatedProcess.Handle(c.Request().Context(), cmd)
	if err = s.tolerateUnpublished(err, updated); err != nil {
		return s.fail(c, err)
	}
	return s.respondRelatedProcess(c, http.StatusCreated, updated, rp.ID())
}

// PatchRelatedProcess handles PATCH /api/v1/lots/:id/related-processes/:processId.
func (s *Server) PatchRelatedProcess(c echo.Context) error {
	lotID, idErr := pathUUID(c, "id")
	processID, pErr := pathUUID(c, "processId")
	if err := errors.Join(idErr, pErr); err != nil {
		return s.fail(c, err)
	}
	var req relatedProcessPatchRequest
	if err := s.bind(c, &req); err != nil {
		return s.invalidRequest(c, err)
	}

	cmd, err := commands.NewPatchRelatedProcessCommand(lotID, processID, req.RelatedProcessID, req.Identifier, identity(c))
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.handlers.PatchRelatedProcess.Handle(c.Request().Context(), cmd)
	if err = s.tolerateUnpublished(err, updated); err != nil {
		return s.fail(c, err)
	}
	return s.respondRelatedProcess(c, http.StatusOK, updated, processID)
}

// DeleteRelatedProcess handles DELETE /api/v1/lots/:id/related-processes/:processId
// and answers 204.
func (s *Server) DeleteRelatedProcess(c echo.Context) error {
	lotID, idErr := pathUUID(c, "id")
	processID, pErr := pathUUID(c, "processId")
	if err := errors.Join(idErr, pErr); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteRelatedProcessCommand(lotID, processID, identity(c))
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.handlers.DeleteRelatedProcess.Handle(c.Request().Context(), cmd)
	if err = s.tolerateUnpublished(err, updated); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) respondContract(c echo.Context, status int, updated *lot.Lot, contractID kernel.UUID) error {
	contract, err := updated.Contract(contractID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(status, dataResponse{Data: contractView(contract)})
}

func (s *Server) respondRelatedProcess(c echo.Context, status int, updated *lot.Lot, processID kernel.UUID) error {
	rp, err := updated.RelatedProcess(processID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(status, dataResponse{Data: relatedProcessView(rp)})
}
